package rx

import (
	"context"

	"go.uber.org/atomic"
)

type fluxTake[T any] struct {
	source Publisher[T]
	n      int64
}

func newFluxTake[T any](source Publisher[T], n int) *fluxTake[T] {
	if n < 0 {
		n = 0
	}
	return &fluxTake[T]{
		source: source,
		n:      int64(n),
	}
}

func (p *fluxTake[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	ts := &takeSubscriber[T]{
		actual: s,
	}
	ts.remaining.Store(p.n)
	p.source.SubscribeWith(ctx, ts)
}

type takeSubscriber[T any] struct {
	actual    Subscriber[T]
	remaining atomic.Int64
	upstream  Subscription
	done      atomic.Int32
}

func (p *takeSubscriber[T]) OnSubscribe(ctx context.Context, su Subscription) {
	p.upstream = su
	if p.remaining.Load() == 0 {
		su.Cancel()
		p.actual.OnSubscribe(ctx, noopSubscription{})
		p.OnComplete()
		return
	}
	p.actual.OnSubscribe(ctx, su)
}

func (p *takeSubscriber[T]) OnNext(v T) {
	if p.done.Load() != 0 {
		return
	}
	left := p.remaining.Add(-1)
	if left < 0 {
		return
	}
	p.actual.OnNext(v)
	if left == 0 {
		p.upstream.Cancel()
		p.OnComplete()
	}
}

func (p *takeSubscriber[T]) OnError(err error) {
	if p.done.CompareAndSwap(0, 1) {
		p.actual.OnError(err)
	}
}

func (p *takeSubscriber[T]) OnComplete() {
	if p.done.CompareAndSwap(0, 1) {
		p.actual.OnComplete()
	}
}
