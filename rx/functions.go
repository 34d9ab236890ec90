package rx

import "context"

type (
	// FnOnComplete is invoked when a sequence completes successfully.
	FnOnComplete func()
	// FnOnNext is invoked for each element. A returned error cancels upstream and terminates the sequence with it.
	FnOnNext[T any] func(v T) error
	// FnOnSubscribe is invoked once a Subscription is available.
	FnOnSubscribe func(ctx context.Context, s Subscription)
	// FnOnError is invoked when a sequence terminates with an error.
	FnOnError func(e error)
	// FnOnCancel is invoked when a Subscription is cancelled.
	FnOnCancel func()
	// FnFinally is invoked once after any terminal signal, including cancellation.
	FnFinally func(s SignalType)
	// FnPredicate tests an element.
	FnPredicate[T any] func(v T) bool
	// FnOnRequest is invoked whenever demand is requested.
	FnOnRequest func(n int)
	// FnTransform converts an element.
	FnTransform[T, U any] func(v T) (U, error)
	// FnCombine combines a pair of elements.
	FnCombine[A, B, V any] func(a A, b B) (V, error)
)
