package rx

import (
	"context"

	"go.uber.org/atomic"
)

type fluxArray[T any] struct {
	size int
	get  func(i int) T
}

// Just creates a Flux that emits the provided elements and then completes.
func Just[T any](values ...T) Flux[T] {
	return FromSlice(values)
}

// FromSlice creates a Flux that emits the elements of the given slice and then completes.
// The slice is copied.
func FromSlice[T any](values []T) Flux[T] {
	items := make([]T, len(values))
	copy(items, values)
	return wrap[T](&fluxArray[T]{
		size: len(items),
		get: func(i int) T {
			return items[i]
		},
	})
}

// Range emits count ints starting at start.
func Range(start, count int) Flux[int] {
	if count < 0 {
		panic("rx: range count must not be negative")
	}
	return wrap[int](&fluxArray[int]{
		size: count,
		get: func(i int) int {
			return start + i
		},
	})
}

// Empty creates a Flux that completes without emitting any item.
func Empty[T any]() Flux[T] {
	return wrap[T](&fluxArray[T]{})
}

// Error creates a Flux that terminates with the specified error immediately after being subscribed to.
func Error[T any](err error) Flux[T] {
	return wrap[T](fluxError[T]{err: err})
}

func (p *fluxArray[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	su := &arraySubscription[T]{
		ctx:    ctx,
		actual: s,
		size:   p.size,
		get:    p.get,
	}
	s.OnSubscribe(ctx, su)
	if p.size == 0 && su.terminate() {
		s.OnComplete()
	}
}

type arraySubscription[T any] struct {
	ctx       context.Context
	actual    Subscriber[T]
	size      int
	get       func(i int) T
	index     int
	requested atomic.Int64
	state     atomic.Int32
}

const (
	arrayRunning int32 = iota
	arrayCancelled
	arrayTerminated
)

func (p *arraySubscription[T]) Request(n int) {
	if n < 1 {
		return
	}
	if addRequest(&p.requested, int64(n)) != 0 {
		return
	}
	p.drain()
}

func (p *arraySubscription[T]) Cancel() {
	p.state.CompareAndSwap(arrayRunning, arrayCancelled)
}

func (p *arraySubscription[T]) terminate() bool {
	return p.state.CompareAndSwap(arrayRunning, arrayTerminated)
}

func (p *arraySubscription[T]) drain() {
	var emitted int64
	n := p.requested.Load()
	for {
		for (n == RequestInfinite || emitted != n) && p.index < p.size {
			if p.state.Load() != arrayRunning {
				return
			}
			select {
			case <-p.ctx.Done():
				if p.terminate() {
					p.actual.OnError(ErrSubscribeCancelled)
				}
				return
			default:
			}
			v := p.get(p.index)
			p.index++
			emitted++
			p.actual.OnNext(v)
		}
		if p.index == p.size {
			if p.terminate() {
				p.actual.OnComplete()
			}
			return
		}
		n = p.requested.Load()
		if n == emitted {
			n = p.requested.Add(-emitted)
			if n == 0 {
				return
			}
			emitted = 0
		}
	}
}

type fluxError[T any] struct {
	err error
}

func (p fluxError[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	s.OnSubscribe(ctx, noopSubscription{})
	s.OnError(p.err)
}

type noopSubscription struct{}

func (noopSubscription) Request(int) {}

func (noopSubscription) Cancel() {}
