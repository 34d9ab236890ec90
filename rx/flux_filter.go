package rx

import "context"

type fluxFilter[T any] struct {
	source    Publisher[T]
	predicate FnPredicate[T]
}

func newFluxFilter[T any](source Publisher[T], predicate FnPredicate[T]) *fluxFilter[T] {
	return &fluxFilter[T]{
		source:    source,
		predicate: predicate,
	}
}

func (p *fluxFilter[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	p.source.SubscribeWith(ctx, &filterSubscriber[T]{
		actual:    s,
		predicate: p.predicate,
	})
}

type filterSubscriber[T any] struct {
	actual    Subscriber[T]
	predicate FnPredicate[T]
	upstream  Subscription
}

func (p *filterSubscriber[T]) OnSubscribe(ctx context.Context, su Subscription) {
	p.upstream = su
	p.actual.OnSubscribe(ctx, su)
}

func (p *filterSubscriber[T]) OnNext(v T) {
	if p.predicate(v) {
		p.actual.OnNext(v)
		return
	}
	p.upstream.Request(1)
}

func (p *filterSubscriber[T]) OnError(err error) {
	p.actual.OnError(err)
}

func (p *filterSubscriber[T]) OnComplete() {
	p.actual.OnComplete()
}
