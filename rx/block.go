package rx

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// blockSubscriber collects signals for the blocking consumers.
type blockSubscriber[T any] struct {
	mu     sync.Mutex
	su     Subscription
	values []T
	err    error
	onNext func(v T) bool
	done   chan struct{}
	once   sync.Once
}

func newBlockSubscriber[T any](onNext func(v T) bool) *blockSubscriber[T] {
	return &blockSubscriber[T]{
		onNext: onNext,
		done:   make(chan struct{}),
	}
}

func (b *blockSubscriber[T]) OnSubscribe(_ context.Context, su Subscription) {
	b.mu.Lock()
	b.su = su
	b.mu.Unlock()
	su.Request(RequestInfinite)
}

func (b *blockSubscriber[T]) OnNext(v T) {
	select {
	case <-b.done:
		return
	default:
	}
	if !b.onNext(v) {
		b.mu.Lock()
		su := b.su
		b.mu.Unlock()
		su.Cancel()
		b.finish(nil)
	}
}

func (b *blockSubscriber[T]) OnError(err error) {
	b.finish(err)
}

func (b *blockSubscriber[T]) OnComplete() {
	b.finish(nil)
}

func (b *blockSubscriber[T]) finish(err error) {
	b.once.Do(func() {
		b.mu.Lock()
		b.err = err
		b.mu.Unlock()
		close(b.done)
	})
}

func (b *blockSubscriber[T]) wait(ctx context.Context) error {
	select {
	case <-b.done:
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.err
	case <-ctx.Done():
		b.mu.Lock()
		su := b.su
		b.mu.Unlock()
		if su != nil {
			su.Cancel()
		}
		b.finish(ctx.Err())
		return errors.Wrap(ctx.Err(), "rx: block")
	}
}

func (p wrapper[T]) BlockSlice(ctx context.Context) ([]T, error) {
	var results []T
	var mu sync.Mutex
	b := newBlockSubscriber(func(v T) bool {
		mu.Lock()
		results = append(results, v)
		mu.Unlock()
		return true
	})
	p.SubscribeWith(ctx, b)
	err := b.wait(ctx)
	mu.Lock()
	defer mu.Unlock()
	return results, err
}

func (p wrapper[T]) BlockFirst(ctx context.Context) (first T, ok bool, err error) {
	var mu sync.Mutex
	b := newBlockSubscriber(func(v T) bool {
		mu.Lock()
		first, ok = v, true
		mu.Unlock()
		return false
	})
	p.SubscribeWith(ctx, b)
	err = b.wait(ctx)
	mu.Lock()
	defer mu.Unlock()
	return
}

func (p wrapper[T]) BlockLast(ctx context.Context) (last T, ok bool, err error) {
	var mu sync.Mutex
	b := newBlockSubscriber(func(v T) bool {
		mu.Lock()
		last, ok = v, true
		mu.Unlock()
		return true
	})
	p.SubscribeWith(ctx, b)
	err = b.wait(ctx)
	mu.Lock()
	defer mu.Unlock()
	return
}

func (p wrapper[T]) ToChan(ctx context.Context, cap int) (<-chan T, <-chan error) {
	if cap < 1 {
		cap = 1
	}
	ch := make(chan T, cap)
	errs := make(chan error, 1)
	sub := NewSubscriber[T](
		func(v T) error {
			select {
			case ch <- v:
				return nil
			case <-ctx.Done():
				return ErrSubscribeCancelled
			}
		},
		OnComplete(func() {
			close(ch)
			close(errs)
		}),
		OnError(func(e error) {
			errs <- e
			close(ch)
			close(errs)
		}),
	)
	ElasticScheduler().Do(ctx, func(ctx context.Context) {
		p.SubscribeWith(ctx, sub)
	})
	return ch, errs
}
