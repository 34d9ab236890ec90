package verifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/boookk/bithumb-practice/rx"
)

type eventKind int8

const (
	eventNext eventKind = iota
	eventComplete
	eventError
)

type event[T any] struct {
	kind  eventKind
	value T
	err   error
}

func (e event[T]) String() string {
	switch e.kind {
	case eventComplete:
		return "onComplete()"
	case eventError:
		return fmt.Sprintf("onError(%v)", e.err)
	default:
		return fmt.Sprintf("onNext(%v)", e.value)
	}
}

// recorder subscribes with unbounded demand and keeps every signal for the script to consume.
type recorder[T any] struct {
	mu         sync.Mutex
	su         rx.Subscription
	events     []event[T]
	cursor     int
	notify     chan struct{}
	subscribed chan struct{}
	subOnce    sync.Once
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{
		notify:     make(chan struct{}, 1),
		subscribed: make(chan struct{}),
	}
}

func (r *recorder[T]) OnSubscribe(_ context.Context, su rx.Subscription) {
	r.mu.Lock()
	r.su = su
	r.mu.Unlock()
	r.subOnce.Do(func() {
		close(r.subscribed)
	})
	su.Request(rx.RequestInfinite)
}

func (r *recorder[T]) OnNext(v T) {
	r.append(event[T]{kind: eventNext, value: v})
}

func (r *recorder[T]) OnComplete() {
	r.append(event[T]{kind: eventComplete})
}

func (r *recorder[T]) OnError(err error) {
	r.append(event[T]{kind: eventError, err: err})
}

func (r *recorder[T]) append(e event[T]) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *recorder[T]) cancel() {
	r.mu.Lock()
	su := r.su
	r.mu.Unlock()
	if su != nil {
		su.Cancel()
	}
}

func (r *recorder[T]) awaitSubscription(ctx context.Context) error {
	select {
	case <-r.subscribed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// peek waits for the next unconsumed signal without consuming it.
func (r *recorder[T]) peek(ctx context.Context) (event[T], error) {
	for {
		r.mu.Lock()
		if r.cursor < len(r.events) {
			e := r.events[r.cursor]
			r.mu.Unlock()
			return e, nil
		}
		r.mu.Unlock()
		select {
		case <-r.notify:
		case <-ctx.Done():
			return event[T]{}, ctx.Err()
		}
	}
}

func (r *recorder[T]) next(ctx context.Context) (event[T], error) {
	e, err := r.peek(ctx)
	if err != nil {
		return e, err
	}
	r.advance()
	return e, nil
}

// advance consumes a signal already returned by peek.
func (r *recorder[T]) advance() {
	r.mu.Lock()
	r.cursor++
	r.mu.Unlock()
}
