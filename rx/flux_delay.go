package rx

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

type monoDelay[T any] struct {
	value T
	delay time.Duration
	sc    Scheduler
}

// Delay creates a Flux which emits v after the given delay on the elastic scheduler, then completes.
func Delay[T any](delay time.Duration, v T) Flux[T] {
	return wrap[T](&monoDelay[T]{
		value: v,
		delay: delay,
		sc:    ElasticScheduler(),
	})
}

func delayElements[T any](source Publisher[T], delay time.Duration, sc Scheduler) Flux[T] {
	return ConcatMap(source, func(v T) (Publisher[T], error) {
		return &monoDelay[T]{
			value: v,
			delay: delay,
			sc:    sc,
		}, nil
	})
}

func (p *monoDelay[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	su := &delaySubscription[T]{
		parent: p,
		ctx:    ctx,
		actual: s,
		cancel: make(chan struct{}),
	}
	s.OnSubscribe(ctx, su)
}

type delaySubscription[T any] struct {
	parent    *monoDelay[T]
	ctx       context.Context
	actual    Subscriber[T]
	requested atomic.Int32
	cancelled atomic.Int32
	cancel    chan struct{}
}

func (p *delaySubscription[T]) Request(n int) {
	if n < 1 || !p.requested.CompareAndSwap(0, 1) {
		return
	}
	p.parent.sc.Do(p.ctx, p.emit)
}

func (p *delaySubscription[T]) Cancel() {
	if p.cancelled.CompareAndSwap(0, 1) {
		close(p.cancel)
	}
}

func (p *delaySubscription[T]) emit(ctx context.Context) {
	timer := time.NewTimer(p.parent.delay)
	defer timer.Stop()
	select {
	case <-p.cancel:
		return
	case <-ctx.Done():
		p.actual.OnError(ErrSubscribeCancelled)
		return
	case <-timer.C:
	}
	if p.cancelled.Load() != 0 {
		return
	}
	p.actual.OnNext(p.parent.value)
	p.actual.OnComplete()
}
