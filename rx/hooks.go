package rx

import (
	"context"

	"go.uber.org/atomic"
)

// hooks is used to handle rx lifecycle events.
type hooks[T any] struct {
	hOnSubscribe FnOnSubscribe
	hOnRequest   FnOnRequest
	hOnNext      FnOnNext[T]
	hOnComplete  FnOnComplete
	hOnError     FnOnError
	hOnCancel    FnOnCancel
	hOnFinally   FnFinally
}

type hookOption[T any] func(*hooks[T])

func peekOnNext[T any](fn FnOnNext[T]) hookOption[T] {
	return func(h *hooks[T]) {
		h.hOnNext = fn
	}
}

func peekOnComplete[T any](fn FnOnComplete) hookOption[T] {
	return func(h *hooks[T]) {
		h.hOnComplete = fn
	}
}

func peekOnError[T any](fn FnOnError) hookOption[T] {
	return func(h *hooks[T]) {
		h.hOnError = fn
	}
}

func peekOnCancel[T any](fn FnOnCancel) hookOption[T] {
	return func(h *hooks[T]) {
		h.hOnCancel = fn
	}
}

func peekOnRequest[T any](fn FnOnRequest) hookOption[T] {
	return func(h *hooks[T]) {
		h.hOnRequest = fn
	}
}

func peekOnSubscribe[T any](fn FnOnSubscribe) hookOption[T] {
	return func(h *hooks[T]) {
		h.hOnSubscribe = fn
	}
}

func peekFinally[T any](fn FnFinally) hookOption[T] {
	return func(h *hooks[T]) {
		h.hOnFinally = fn
	}
}

type fluxPeek[T any] struct {
	source Publisher[T]
	hooks  *hooks[T]
}

func newFluxPeek[T any](source Publisher[T], opts ...hookOption[T]) *fluxPeek[T] {
	h := &hooks[T]{}
	for _, it := range opts {
		it(h)
	}
	return &fluxPeek[T]{
		source: source,
		hooks:  h,
	}
}

func (p *fluxPeek[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	p.source.SubscribeWith(ctx, &peekSubscriber[T]{
		actual: s,
		hooks:  p.hooks,
	})
}

type peekSubscriber[T any] struct {
	actual   Subscriber[T]
	hooks    *hooks[T]
	upstream Subscription
	done     atomic.Int32
}

func (p *peekSubscriber[T]) OnSubscribe(ctx context.Context, su Subscription) {
	p.upstream = su
	if fn := p.hooks.hOnSubscribe; fn != nil {
		fn(ctx, su)
	}
	p.actual.OnSubscribe(ctx, p)
}

func (p *peekSubscriber[T]) OnNext(v T) {
	if p.done.Load() != 0 {
		return
	}
	if fn := p.hooks.hOnNext; fn != nil {
		if err := fn(v); err != nil {
			p.upstream.Cancel()
			p.OnError(err)
			return
		}
	}
	p.actual.OnNext(v)
}

func (p *peekSubscriber[T]) OnError(err error) {
	if !p.done.CompareAndSwap(0, 1) {
		return
	}
	if fn := p.hooks.hOnError; fn != nil {
		fn(err)
	}
	p.actual.OnError(err)
	p.finally(SignalError)
}

func (p *peekSubscriber[T]) OnComplete() {
	if !p.done.CompareAndSwap(0, 1) {
		return
	}
	if fn := p.hooks.hOnComplete; fn != nil {
		fn()
	}
	p.actual.OnComplete()
	p.finally(SignalComplete)
}

func (p *peekSubscriber[T]) Request(n int) {
	if fn := p.hooks.hOnRequest; fn != nil {
		fn(n)
	}
	p.upstream.Request(n)
}

func (p *peekSubscriber[T]) Cancel() {
	if !p.done.CompareAndSwap(0, 1) {
		p.upstream.Cancel()
		return
	}
	if fn := p.hooks.hOnCancel; fn != nil {
		fn()
	}
	p.upstream.Cancel()
	p.finally(SignalCancel)
}

func (p *peekSubscriber[T]) finally(sig SignalType) {
	if fn := p.hooks.hOnFinally; fn != nil {
		fn(sig)
	}
}
