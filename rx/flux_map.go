package rx

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

type fluxMap[T, U any] struct {
	source    Publisher[T]
	transform FnTransform[T, U]
}

// Map transform the items emitted by source by applying a synchronous function to each item.
func Map[T, U any](source Publisher[T], transform func(T) (U, error)) Flux[U] {
	return wrap[U](&fluxMap[T, U]{
		source:    source,
		transform: transform,
	})
}

func (p *fluxMap[T, U]) SubscribeWith(ctx context.Context, s Subscriber[U]) {
	p.source.SubscribeWith(ctx, &mapSubscriber[T, U]{
		actual:    s,
		transform: p.transform,
	})
}

type mapSubscriber[T, U any] struct {
	actual    Subscriber[U]
	transform FnTransform[T, U]
	upstream  Subscription
	done      atomic.Int32
}

func (p *mapSubscriber[T, U]) OnSubscribe(ctx context.Context, su Subscription) {
	p.upstream = su
	p.actual.OnSubscribe(ctx, su)
}

func (p *mapSubscriber[T, U]) OnNext(v T) {
	if p.done.Load() != 0 {
		return
	}
	u, err := p.transform(v)
	if err != nil {
		p.upstream.Cancel()
		p.OnError(err)
		return
	}
	p.actual.OnNext(u)
}

func (p *mapSubscriber[T, U]) OnError(err error) {
	if p.done.CompareAndSwap(0, 1) {
		p.actual.OnError(err)
	}
}

func (p *mapSubscriber[T, U]) OnComplete() {
	if p.done.CompareAndSwap(0, 1) {
		p.actual.OnComplete()
	}
}

type fluxConcatMap[T, U any] struct {
	source Publisher[T]
	mapper FnTransform[T, Publisher[U]]
}

// ConcatMap transforms each element into a Publisher and emits the inner elements in order,
// subscribing to one inner Publisher at a time.
func ConcatMap[T, U any](source Publisher[T], mapper func(T) (Publisher[U], error)) Flux[U] {
	return wrap[U](&fluxConcatMap[T, U]{
		source: source,
		mapper: mapper,
	})
}

func (p *fluxConcatMap[T, U]) SubscribeWith(ctx context.Context, s Subscriber[U]) {
	p.source.SubscribeWith(ctx, &concatMapSubscriber[T, U]{
		ctx:    ctx,
		actual: s,
		mapper: p.mapper,
	})
}

type concatMapSubscriber[T, U any] struct {
	ctx      context.Context
	actual   Subscriber[U]
	mapper   FnTransform[T, Publisher[U]]
	upstream Subscription
	inner    arbiter

	mu        sync.Mutex
	pending   []T
	active    bool
	outerDone bool
	done      bool
	wip       atomic.Int32
}

func (p *concatMapSubscriber[T, U]) OnSubscribe(ctx context.Context, su Subscription) {
	p.upstream = su
	p.actual.OnSubscribe(ctx, p)
	su.Request(1)
}

func (p *concatMapSubscriber[T, U]) OnNext(v T) {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.pending = append(p.pending, v)
	p.mu.Unlock()
	p.drain()
}

func (p *concatMapSubscriber[T, U]) OnError(err error) {
	p.inner.Cancel()
	p.fail(err)
}

func (p *concatMapSubscriber[T, U]) OnComplete() {
	p.mu.Lock()
	p.outerDone = true
	p.mu.Unlock()
	p.drain()
}

func (p *concatMapSubscriber[T, U]) Request(n int) {
	p.inner.Request(n)
}

func (p *concatMapSubscriber[T, U]) Cancel() {
	p.mu.Lock()
	p.done = true
	p.pending = nil
	p.mu.Unlock()
	p.upstream.Cancel()
	p.inner.Cancel()
}

func (p *concatMapSubscriber[T, U]) fail(err error) {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done = true
	p.pending = nil
	p.mu.Unlock()
	p.actual.OnError(err)
}

func (p *concatMapSubscriber[T, U]) innerComplete() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()
	p.upstream.Request(1)
	p.drain()
}

func (p *concatMapSubscriber[T, U]) drain() {
	if p.wip.Add(1) != 1 {
		return
	}
	for {
		p.mu.Lock()
		if p.done {
			p.mu.Unlock()
			return
		}
		if !p.active {
			if len(p.pending) > 0 {
				v := p.pending[0]
				p.pending = p.pending[1:]
				p.active = true
				p.mu.Unlock()
				next, err := p.mapper(v)
				if err != nil {
					p.upstream.Cancel()
					p.fail(err)
					return
				}
				next.SubscribeWith(p.ctx, &concatMapInner[T, U]{parent: p})
			} else if p.outerDone {
				p.done = true
				p.mu.Unlock()
				p.actual.OnComplete()
				return
			} else {
				p.mu.Unlock()
			}
		} else {
			p.mu.Unlock()
		}
		if p.wip.Add(-1) == 0 {
			return
		}
	}
}

type concatMapInner[T, U any] struct {
	parent *concatMapSubscriber[T, U]
}

func (p *concatMapInner[T, U]) OnSubscribe(_ context.Context, su Subscription) {
	p.parent.inner.Set(su)
}

func (p *concatMapInner[T, U]) OnNext(v U) {
	p.parent.inner.Produced(1)
	p.parent.actual.OnNext(v)
}

func (p *concatMapInner[T, U]) OnError(err error) {
	p.parent.upstream.Cancel()
	p.parent.fail(err)
}

func (p *concatMapInner[T, U]) OnComplete() {
	p.parent.innerComplete()
}
