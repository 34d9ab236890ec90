package rx

import "context"

// Publisher is a provider of a potentially unbounded number of sequenced elements,
// publishing them according to the demand received from its Subscriber(s).
type Publisher[T any] interface {
	// SubscribeWith subscribes a Subscriber. Each call starts a new independent sequence.
	SubscribeWith(ctx context.Context, s Subscriber[T])
}

// Subscription represents a one-to-one lifecycle of a Subscriber subscribing to a Publisher.
type Subscription interface {
	// Request asks for n more elements.
	Request(n int)
	// Cancel stops the emission and releases resources.
	Cancel()
}

// Subscriber will receive call to OnSubscribe(Subscription) once after passing an instance of Subscriber to Publisher#SubscribeWith
type Subscriber[T any] interface {
	// OnSubscribe invoked after Publisher subscribed.
	// No data will start flowing until Subscription#Request is invoked.
	OnSubscribe(ctx context.Context, s Subscription)
	// OnNext represents data notification sent by the Publisher in response to requests to Subscription#Request.
	OnNext(v T)
	// OnError represents failed terminal state.
	OnError(err error)
	// OnComplete represents successful terminal state.
	OnComplete()
}
