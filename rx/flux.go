package rx

import (
	"context"
	"time"
)

// Sink represent a wrapper API around an actual downstream Subscriber for emitting values, a completion or an error.
type Sink[T any] interface {
	// Next emits next single value.
	Next(v T) error
	// Complete complete current subscription.
	Complete()
	// Error emits a error and complete current subscription.
	Error(e error)
}

// Flux represents represents a reactive sequence of 0..N items.
//
// Operators which change the element type (Map, ConcatMap, Zip) are package functions.
type Flux[T any] interface {
	Publisher[T]
	// Filter evaluate each source value against the given Predicate.
	// If the predicate test succeeds, the value is emitted.
	// If the predicate test fails, the value is ignored and a request of 1 is made upstream.
	Filter(FnPredicate[T]) Flux[T]
	// Take take only the first N values from this Flux, if available.
	Take(n int) Flux[T]
	// DoOnNext add behavior triggered when the Flux emits an item.
	DoOnNext(FnOnNext[T]) Flux[T]
	// DoOnComplete add behavior triggered when the Flux completes successfully.
	DoOnComplete(FnOnComplete) Flux[T]
	// DoOnError add behavior triggered when the Flux completes with an error.
	DoOnError(FnOnError) Flux[T]
	// DoOnCancel add behavior triggered when the Flux is cancelled.
	DoOnCancel(FnOnCancel) Flux[T]
	// DoOnRequest add behavior triggered after this Flux receives any request.
	DoOnRequest(FnOnRequest) Flux[T]
	// DoOnSubscribe add behavior triggered when the Flux is done being subscribed.
	DoOnSubscribe(FnOnSubscribe) Flux[T]
	// DoFinally add behavior triggered after the Flux terminates for any reason, including cancellation.
	DoFinally(FnFinally) Flux[T]
	// Log observes all signals and traces them with the logger package.
	Log(category ...string) Flux[T]
	// DelayElements delays each element by the given duration. Order is preserved.
	DelayElements(delay time.Duration) Flux[T]
	// PublishOn emits OnNext, OnComplete and OnError on the given Scheduler.
	PublishOn(Scheduler) Flux[T]
	// SubscribeOn run subscribe, onSubscribe and request on a specified scheduler.
	SubscribeOn(Scheduler) Flux[T]
	// ConcatWith emits all elements of this Flux, then all elements of other.
	ConcatWith(other Publisher[T]) Flux[T]
	// Repeat re-subscribes n more times after the first completion.
	Repeat(n int) Flux[T]
	// Subscribe subscribe elements from a publisher, handing each one to onNext.
	// Using `OnSubscribe`, `OnComplete` and `OnError` as handler wrapper.
	Subscribe(ctx context.Context, onNext FnOnNext[T], options ...SubscriberOption)
	// BlockFirst subscribe to this Flux and block until the upstream signals its first value or completes.
	// ok is false if the Flux completes empty.
	BlockFirst(ctx context.Context) (first T, ok bool, err error)
	// BlockLast subscribe to this Flux and block until the upstream signals its last value or completes.
	// ok is false if the Flux completes empty.
	BlockLast(ctx context.Context) (last T, ok bool, err error)
	// BlockSlice subscribe to this Flux and collects all elements in order.
	BlockSlice(ctx context.Context) ([]T, error)
	// ToChan subscribe to this Flux and puts items into a chan.
	// It also puts errors into another chan.
	ToChan(ctx context.Context, cap int) (c <-chan T, e <-chan error)
}

type wrapper[T any] struct {
	Publisher[T]
}

// Wrap converts a Publisher to Flux.
func Wrap[T any](source Publisher[T]) Flux[T] {
	if f, ok := source.(Flux[T]); ok {
		return f
	}
	return wrapper[T]{source}
}

func (p wrapper[T]) Filter(fn FnPredicate[T]) Flux[T] {
	return wrap[T](newFluxFilter(p.Publisher, fn))
}

func (p wrapper[T]) Take(n int) Flux[T] {
	return wrap[T](newFluxTake(p.Publisher, n))
}

func (p wrapper[T]) DoOnNext(fn FnOnNext[T]) Flux[T] {
	return wrap[T](newFluxPeek(p.Publisher, peekOnNext(fn)))
}

func (p wrapper[T]) DoOnComplete(fn FnOnComplete) Flux[T] {
	return wrap[T](newFluxPeek(p.Publisher, peekOnComplete[T](fn)))
}

func (p wrapper[T]) DoOnError(fn FnOnError) Flux[T] {
	return wrap[T](newFluxPeek(p.Publisher, peekOnError[T](fn)))
}

func (p wrapper[T]) DoOnCancel(fn FnOnCancel) Flux[T] {
	return wrap[T](newFluxPeek(p.Publisher, peekOnCancel[T](fn)))
}

func (p wrapper[T]) DoOnRequest(fn FnOnRequest) Flux[T] {
	return wrap[T](newFluxPeek(p.Publisher, peekOnRequest[T](fn)))
}

func (p wrapper[T]) DoOnSubscribe(fn FnOnSubscribe) Flux[T] {
	return wrap[T](newFluxPeek(p.Publisher, peekOnSubscribe[T](fn)))
}

func (p wrapper[T]) DoFinally(fn FnFinally) Flux[T] {
	return wrap[T](newFluxPeek(p.Publisher, peekFinally[T](fn)))
}

func (p wrapper[T]) Log(category ...string) Flux[T] {
	return wrap[T](newFluxLog(p.Publisher, category...))
}

func (p wrapper[T]) DelayElements(delay time.Duration) Flux[T] {
	return delayElements[T](p, delay, ElasticScheduler())
}

func (p wrapper[T]) PublishOn(sc Scheduler) Flux[T] {
	return wrap[T](newFluxPublishOn(p.Publisher, sc))
}

func (p wrapper[T]) SubscribeOn(sc Scheduler) Flux[T] {
	return wrap[T](newFluxSubscribeOn(p.Publisher, sc))
}

func (p wrapper[T]) ConcatWith(other Publisher[T]) Flux[T] {
	return Concat[T](p.Publisher, other)
}

func (p wrapper[T]) Repeat(n int) Flux[T] {
	if n < 0 {
		panic("rx: repeat times must not be negative")
	}
	sources := make([]Publisher[T], n+1)
	for i := range sources {
		sources[i] = p.Publisher
	}
	return Concat(sources...)
}

func (p wrapper[T]) Subscribe(ctx context.Context, onNext FnOnNext[T], options ...SubscriberOption) {
	p.SubscribeWith(ctx, NewSubscriber[T](onNext, options...))
}

func wrap[T any](source Publisher[T]) Flux[T] {
	return wrapper[T]{source}
}
