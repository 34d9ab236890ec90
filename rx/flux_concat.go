package rx

import (
	"context"

	"go.uber.org/atomic"
)

type fluxConcat[T any] struct {
	sources []Publisher[T]
}

// Concat emits all elements of every source in order.
// The next source is subscribed only after the previous one completes.
func Concat[T any](sources ...Publisher[T]) Flux[T] {
	for _, it := range sources {
		if it == nil {
			panic("rx: concat source must not be nil")
		}
	}
	return wrap[T](&fluxConcat[T]{
		sources: sources,
	})
}

func (p *fluxConcat[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	c := &concatSubscriber[T]{
		ctx:     ctx,
		actual:  s,
		sources: p.sources,
	}
	s.OnSubscribe(ctx, c)
	c.OnComplete()
}

type concatSubscriber[T any] struct {
	arbiter
	ctx     context.Context
	actual  Subscriber[T]
	sources []Publisher[T]
	index   int
	wip     atomic.Int32
}

func (p *concatSubscriber[T]) OnSubscribe(_ context.Context, su Subscription) {
	p.Set(su)
}

func (p *concatSubscriber[T]) OnNext(v T) {
	p.Produced(1)
	p.actual.OnNext(v)
}

func (p *concatSubscriber[T]) OnError(err error) {
	p.actual.OnError(err)
}

// OnComplete subscribes the next source. Synchronous sources complete inside
// SubscribeWith, so the loop trampolines instead of recursing.
func (p *concatSubscriber[T]) OnComplete() {
	if p.wip.Add(1) != 1 {
		return
	}
	for {
		if p.IsCancelled() {
			return
		}
		if p.index == len(p.sources) {
			p.actual.OnComplete()
			return
		}
		next := p.sources[p.index]
		p.index++
		next.SubscribeWith(p.ctx, p)
		if p.wip.Add(-1) == 0 {
			return
		}
	}
}
