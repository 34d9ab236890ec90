package rx

import (
	"context"

	"go.uber.org/atomic"
)

type subscriberOptions struct {
	fnOnSubscribe FnOnSubscribe
	fnOnComplete  FnOnComplete
	fnOnError     FnOnError
}

// SubscriberOption is option of subscriber.
// You can call OnComplete, OnError or OnSubscribe.
type SubscriberOption func(*subscriberOptions)

// OnComplete returns s SubscriberOption handling Complete event.
func OnComplete(onComplete FnOnComplete) SubscriberOption {
	return func(o *subscriberOptions) {
		o.fnOnComplete = onComplete
	}
}

// OnError returns s SubscriberOption handling Error event.
func OnError(onError FnOnError) SubscriberOption {
	return func(o *subscriberOptions) {
		o.fnOnError = onError
	}
}

// OnSubscribe returns s SubscriberOption handling Subscribe event.
// Without it the subscriber requests RequestInfinite.
func OnSubscribe(onSubscribe FnOnSubscribe) SubscriberOption {
	return func(o *subscriberOptions) {
		o.fnOnSubscribe = onSubscribe
	}
}

type subscriber[T any] struct {
	fnOnSubscribe FnOnSubscribe
	fnOnNext      FnOnNext[T]
	fnOnComplete  FnOnComplete
	fnOnError     FnOnError
	su            Subscription
	done          atomic.Int32
}

// NewSubscriber create a new Subscriber with custom options.
// onNext may be nil, elements are then consumed and dropped.
func NewSubscriber[T any](onNext FnOnNext[T], opts ...SubscriberOption) Subscriber[T] {
	o := &subscriberOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return &subscriber[T]{
		fnOnSubscribe: o.fnOnSubscribe,
		fnOnNext:      onNext,
		fnOnComplete:  o.fnOnComplete,
		fnOnError:     o.fnOnError,
	}
}

func (s *subscriber[T]) OnSubscribe(ctx context.Context, su Subscription) {
	s.su = su
	if s.fnOnSubscribe != nil {
		s.fnOnSubscribe(ctx, su)
	} else {
		su.Request(RequestInfinite)
	}
}

func (s *subscriber[T]) OnNext(v T) {
	if s.fnOnNext == nil || s.done.Load() == 1 {
		return
	}
	if err := s.fnOnNext(v); err != nil {
		s.su.Cancel()
		s.OnError(err)
	}
}

func (s *subscriber[T]) OnError(err error) {
	if !s.done.CompareAndSwap(0, 1) {
		return
	}
	if s.fnOnError != nil {
		s.fnOnError(err)
	}
}

func (s *subscriber[T]) OnComplete() {
	if !s.done.CompareAndSwap(0, 1) {
		return
	}
	if s.fnOnComplete != nil {
		s.fnOnComplete()
	}
}
