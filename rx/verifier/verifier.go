// Package verifier scripts expectations against a Flux and checks them within a bounded time.
package verifier

import (
	"context"
	"fmt"
	"time"

	"github.com/boookk/bithumb-practice/rx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// DefaultTimeout bounds a verification when no WithTimeout option is given.
const DefaultTimeout = 5 * time.Second

// ErrTimeout is returned when the expected signals do not arrive in time.
var ErrTimeout = errors.New("verifier: timeout")

// AssertionError describes the first step whose expectation was not met.
type AssertionError struct {
	Step    int
	Message string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("verifier: step %d: %s", e.Step, e.Message)
}

type options struct {
	timeout time.Duration
}

// Option configures a StepVerifier.
type Option func(*options)

// WithTimeout bounds the whole verification. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

type step[T any] struct {
	name     string
	terminal bool
	run      func(ctx context.Context, r *recorder[T]) (string, error)
}

// StepVerifier is an ordered script of expectations.
// Nothing is subscribed until Verify is called; every Verify re-subscribes the source.
type StepVerifier[T any] struct {
	source  rx.Publisher[T]
	timeout time.Duration
	steps   []step[T]
}

// Create starts a script for the given source.
func Create[T any](source rx.Publisher[T], opts ...Option) *StepVerifier[T] {
	o := &options{timeout: DefaultTimeout}
	for _, it := range opts {
		it(o)
	}
	return &StepVerifier[T]{
		source:  source,
		timeout: o.timeout,
	}
}

func (v *StepVerifier[T]) then(name string, terminal bool, fn func(ctx context.Context, r *recorder[T]) (string, error)) *StepVerifier[T] {
	v.steps = append(v.steps, step[T]{
		name:     name,
		terminal: terminal,
		run:      fn,
	})
	return v
}

// ExpectSubscription expects the source to call OnSubscribe.
func (v *StepVerifier[T]) ExpectSubscription() *StepVerifier[T] {
	return v.then("expectSubscription", false, func(ctx context.Context, r *recorder[T]) (string, error) {
		return "", r.awaitSubscription(ctx)
	})
}

// ExpectNext expects the given values, in order.
func (v *StepVerifier[T]) ExpectNext(values ...T) *StepVerifier[T] {
	for _, expected := range values {
		expected := expected
		v.then(fmt.Sprintf("expectNext(%v)", expected), false, func(ctx context.Context, r *recorder[T]) (string, error) {
			e, err := r.next(ctx)
			if err != nil {
				return "", err
			}
			if e.kind != eventNext {
				return fmt.Sprintf("expected onNext(%v), got %s", expected, e), nil
			}
			if !assert.ObjectsAreEqual(expected, e.value) {
				return fmt.Sprintf("expected onNext(%v), got onNext(%v)", expected, e.value), nil
			}
			return "", nil
		})
	}
	return v
}

// ExpectNextCount expects n more elements whatever their values.
func (v *StepVerifier[T]) ExpectNextCount(n int) *StepVerifier[T] {
	return v.then(fmt.Sprintf("expectNextCount(%d)", n), false, func(ctx context.Context, r *recorder[T]) (string, error) {
		for i := 0; i < n; i++ {
			e, err := r.next(ctx)
			if err != nil {
				return "", err
			}
			if e.kind != eventNext {
				return fmt.Sprintf("expected %d elements, got %d and %s", n, i, e), nil
			}
		}
		return "", nil
	})
}

// ExpectNextMatches expects the next element to satisfy pred.
func (v *StepVerifier[T]) ExpectNextMatches(pred rx.FnPredicate[T]) *StepVerifier[T] {
	return v.then("expectNextMatches", false, func(ctx context.Context, r *recorder[T]) (string, error) {
		e, err := r.next(ctx)
		if err != nil {
			return "", err
		}
		if e.kind != eventNext {
			return fmt.Sprintf("expected onNext, got %s", e), nil
		}
		if !pred(e.value) {
			return fmt.Sprintf("predicate failed on onNext(%v)", e.value), nil
		}
		return "", nil
	})
}

// AssertNext expects a next element and hands it to fn. A returned error fails the step.
func (v *StepVerifier[T]) AssertNext(fn func(T) error) *StepVerifier[T] {
	return v.then("assertNext", false, func(ctx context.Context, r *recorder[T]) (string, error) {
		e, err := r.next(ctx)
		if err != nil {
			return "", err
		}
		if e.kind != eventNext {
			return fmt.Sprintf("expected onNext, got %s", e), nil
		}
		if err := fn(e.value); err != nil {
			return fmt.Sprintf("assertion failed on onNext(%v): %v", e.value, err), nil
		}
		return "", nil
	})
}

// ThenConsumeWhile consumes elements as long as pred holds. It stops before the first element that fails pred
// or at a terminal signal.
func (v *StepVerifier[T]) ThenConsumeWhile(pred rx.FnPredicate[T]) *StepVerifier[T] {
	return v.then("thenConsumeWhile", false, func(ctx context.Context, r *recorder[T]) (string, error) {
		for {
			e, err := r.peek(ctx)
			if err != nil {
				return "", err
			}
			if e.kind != eventNext || !pred(e.value) {
				return "", nil
			}
			r.advance()
		}
	})
}

// ExpectComplete expects the completion signal.
func (v *StepVerifier[T]) ExpectComplete() *StepVerifier[T] {
	return v.then("expectComplete", true, func(ctx context.Context, r *recorder[T]) (string, error) {
		e, err := r.next(ctx)
		if err != nil {
			return "", err
		}
		if e.kind != eventComplete {
			return fmt.Sprintf("expected onComplete(), got %s", e), nil
		}
		return "", nil
	})
}

// ExpectError expects an error signal of any kind.
func (v *StepVerifier[T]) ExpectError() *StepVerifier[T] {
	return v.ExpectErrorMatches(func(error) bool {
		return true
	})
}

// ExpectErrorMatches expects an error signal satisfying pred.
func (v *StepVerifier[T]) ExpectErrorMatches(pred func(error) bool) *StepVerifier[T] {
	return v.then("expectError", true, func(ctx context.Context, r *recorder[T]) (string, error) {
		e, err := r.next(ctx)
		if err != nil {
			return "", err
		}
		if e.kind != eventError {
			return fmt.Sprintf("expected onError, got %s", e), nil
		}
		if !pred(e.err) {
			return fmt.Sprintf("predicate failed on onError(%v)", e.err), nil
		}
		return "", nil
	})
}

// VerifyComplete appends ExpectComplete and runs Verify.
func (v *StepVerifier[T]) VerifyComplete(ctx context.Context) error {
	return v.ExpectComplete().Verify(ctx)
}

// VerifyError appends ExpectError and runs Verify.
func (v *StepVerifier[T]) VerifyError(ctx context.Context) error {
	return v.ExpectError().Verify(ctx)
}

// Verify subscribes to the source and runs every step in order.
// It returns an *AssertionError on the first mismatch, or an error matching ErrTimeout when the signals
// do not arrive in time. The subscription is cancelled whenever Verify returns before a terminal signal.
// A script must end with exactly one terminal expectation, otherwise Verify fails without subscribing.
func (v *StepVerifier[T]) Verify(ctx context.Context) error {
	if err := v.checkScript(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	r := newRecorder[T]()
	defer r.cancel()
	rx.ElasticScheduler().Do(ctx, func(ctx context.Context) {
		v.source.SubscribeWith(ctx, r)
	})

	for i, it := range v.steps {
		msg, err := it.run(ctx, r)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return errors.Wrapf(ErrTimeout, "step %d %s after %s", i, it.name, v.timeout)
			}
			return errors.Wrapf(err, "verifier: step %d %s", i, it.name)
		}
		if msg != "" {
			return &AssertionError{Step: i, Message: fmt.Sprintf("%s: %s", it.name, msg)}
		}
		if it.terminal {
			return nil
		}
	}
	return nil
}

func (v *StepVerifier[T]) checkScript() error {
	last := len(v.steps) - 1
	if last < 0 || !v.steps[last].terminal {
		return &AssertionError{Step: last + 1, Message: "script has no terminal expectation"}
	}
	for i, it := range v.steps[:last] {
		if it.terminal {
			return &AssertionError{Step: i + 1, Message: fmt.Sprintf("%s: unreachable after %s", v.steps[i+1].name, it.name)}
		}
	}
	return nil
}
