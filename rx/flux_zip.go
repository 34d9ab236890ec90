package rx

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

type fluxZip[A, B, V any] struct {
	left     Publisher[A]
	right    Publisher[B]
	combiner FnCombine[A, B, V]
}

// Zip pairs the elements of left and right by index and combines each pair.
// It completes as soon as either source is exhausted, so the result has the length of the shorter source.
func Zip[A, B, V any](left Publisher[A], right Publisher[B], combiner func(a A, b B) (V, error)) Flux[V] {
	if left == nil || right == nil {
		panic("rx: zip sources must not be nil")
	}
	return wrap[V](&fluxZip[A, B, V]{
		left:     left,
		right:    right,
		combiner: combiner,
	})
}

func (p *fluxZip[A, B, V]) SubscribeWith(ctx context.Context, s Subscriber[V]) {
	c := &zipCoordinator[A, B, V]{
		actual:   s,
		combiner: p.combiner,
	}
	s.OnSubscribe(ctx, c)
	p.left.SubscribeWith(ctx, &zipLeft[A, B, V]{c})
	p.right.SubscribeWith(ctx, &zipRight[A, B, V]{c})
}

// zipCoordinator buffers both sides and emits pairs while downstream demand allows.
type zipCoordinator[A, B, V any] struct {
	actual   Subscriber[V]
	combiner FnCombine[A, B, V]

	mu        sync.Mutex
	left      []A
	right     []B
	leftDone  bool
	rightDone bool
	leftSub   Subscription
	rightSub  Subscription
	requested int64
	done      bool
	wip       atomic.Int32
}

func (p *zipCoordinator[A, B, V]) Request(n int) {
	if n < 1 {
		return
	}
	p.mu.Lock()
	p.requested += int64(n)
	if p.requested >= RequestInfinite || p.requested < 0 {
		p.requested = RequestInfinite
	}
	p.mu.Unlock()
	p.drain()
}

func (p *zipCoordinator[A, B, V]) Cancel() {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done = true
	p.left, p.right = nil, nil
	p.mu.Unlock()
	p.cancelSources()
}

func (p *zipCoordinator[A, B, V]) cancelSources() {
	p.mu.Lock()
	l, r := p.leftSub, p.rightSub
	p.mu.Unlock()
	if l != nil {
		l.Cancel()
	}
	if r != nil {
		r.Cancel()
	}
}

func (p *zipCoordinator[A, B, V]) fail(err error) {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done = true
	p.left, p.right = nil, nil
	p.mu.Unlock()
	p.cancelSources()
	p.actual.OnError(err)
}

func (p *zipCoordinator[A, B, V]) subscribed(su Subscription, isLeft bool) {
	p.mu.Lock()
	if isLeft {
		p.leftSub = su
	} else {
		p.rightSub = su
	}
	done := p.done
	p.mu.Unlock()
	if done {
		su.Cancel()
		return
	}
	su.Request(RequestInfinite)
}

func (p *zipCoordinator[A, B, V]) drain() {
	if p.wip.Add(1) != 1 {
		return
	}
	for {
		p.mu.Lock()
		if p.done {
			p.mu.Unlock()
			return
		}
		if p.requested > 0 && len(p.left) > 0 && len(p.right) > 0 {
			a, b := p.left[0], p.right[0]
			p.left, p.right = p.left[1:], p.right[1:]
			if p.requested != RequestInfinite {
				p.requested--
			}
			p.mu.Unlock()
			v, err := p.combiner(a, b)
			if err != nil {
				p.fail(err)
				return
			}
			p.actual.OnNext(v)
			continue
		}
		if (p.leftDone && len(p.left) == 0) || (p.rightDone && len(p.right) == 0) {
			p.done = true
			p.left, p.right = nil, nil
			p.mu.Unlock()
			p.cancelSources()
			p.actual.OnComplete()
			return
		}
		p.mu.Unlock()
		if p.wip.Add(-1) == 0 {
			return
		}
	}
}

type zipLeft[A, B, V any] struct {
	c *zipCoordinator[A, B, V]
}

func (p *zipLeft[A, B, V]) OnSubscribe(_ context.Context, su Subscription) {
	p.c.subscribed(su, true)
}

func (p *zipLeft[A, B, V]) OnNext(v A) {
	p.c.mu.Lock()
	if p.c.done {
		p.c.mu.Unlock()
		return
	}
	p.c.left = append(p.c.left, v)
	p.c.mu.Unlock()
	p.c.drain()
}

func (p *zipLeft[A, B, V]) OnError(err error) {
	p.c.fail(err)
}

func (p *zipLeft[A, B, V]) OnComplete() {
	p.c.mu.Lock()
	p.c.leftDone = true
	p.c.mu.Unlock()
	p.c.drain()
}

type zipRight[A, B, V any] struct {
	c *zipCoordinator[A, B, V]
}

func (p *zipRight[A, B, V]) OnSubscribe(_ context.Context, su Subscription) {
	p.c.subscribed(su, false)
}

func (p *zipRight[A, B, V]) OnNext(v B) {
	p.c.mu.Lock()
	if p.c.done {
		p.c.mu.Unlock()
		return
	}
	p.c.right = append(p.c.right, v)
	p.c.mu.Unlock()
	p.c.drain()
}

func (p *zipRight[A, B, V]) OnError(err error) {
	p.c.fail(err)
}

func (p *zipRight[A, B, V]) OnComplete() {
	p.c.mu.Lock()
	p.c.rightDone = true
	p.c.mu.Unlock()
	p.c.drain()
}
