package verifier_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/boookk/bithumb-practice/rx"
	"github.com/boookk/bithumb-practice/rx/verifier"
	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestVerifier_ExpectNext(t *testing.T) {
	err := verifier.Create(rx.Just("foo", "bar")).
		ExpectSubscription().
		ExpectNext("foo", "bar").
		VerifyComplete(context.Background())
	assert.NoError(t, err)
}

func TestVerifier_Mismatch(t *testing.T) {
	err := verifier.Create(rx.Just("foo", "bar")).
		ExpectNext("bar", "foo").
		VerifyComplete(context.Background())
	var ae *verifier.AssertionError
	assert.True(t, errors.As(err, &ae), "should be an assertion error")
	assert.Equal(t, 0, ae.Step)
	assert.Contains(t, ae.Message, "onNext(foo)")
}

func TestVerifier_TooFew(t *testing.T) {
	err := verifier.Create(rx.Just(1, 2)).
		ExpectNext(1, 2, 3).
		VerifyComplete(context.Background())
	var ae *verifier.AssertionError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, 2, ae.Step)
	assert.Contains(t, ae.Message, "onComplete()")
}

func TestVerifier_TooMany(t *testing.T) {
	err := verifier.Create(rx.Just(1, 2, 3)).
		ExpectNext(1, 2).
		VerifyComplete(context.Background())
	var ae *verifier.AssertionError
	assert.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Message, "onNext(3)")
}

func TestVerifier_NextCount(t *testing.T) {
	err := verifier.Create(rx.Range(0, 50)).
		ExpectNextCount(50).
		ThenConsumeWhile(func(n int) bool {
			return n%2 == 0
		}).
		VerifyComplete(context.Background())
	assert.NoError(t, err)

	err = verifier.Create(rx.Range(0, 10)).
		ExpectNextCount(11).
		VerifyComplete(context.Background())
	assert.Error(t, err)
}

func TestVerifier_ThenConsumeWhile(t *testing.T) {
	err := verifier.Create(rx.Just(2, 4, 6, 7, 8)).
		ThenConsumeWhile(func(n int) bool {
			return n%2 == 0
		}).
		ExpectNext(7, 8).
		VerifyComplete(context.Background())
	assert.NoError(t, err)
}

func TestVerifier_Matches(t *testing.T) {
	err := verifier.Create(rx.Just("john", "jack")).
		ExpectNextMatches(func(s string) bool {
			return strings.HasPrefix(s, "jo")
		}).
		AssertNext(func(s string) error {
			if s != "jack" {
				return fmt.Errorf("unexpected name %s", s)
			}
			return nil
		}).
		VerifyComplete(context.Background())
	assert.NoError(t, err)

	err = verifier.Create(rx.Just("john")).
		AssertNext(func(s string) error {
			return errors.New("nope")
		}).
		VerifyComplete(context.Background())
	var ae *verifier.AssertionError
	assert.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Error(), "nope")
}

func TestVerifier_Error(t *testing.T) {
	fakeErr := errors.New("fake error")
	source := rx.Concat[int](rx.Just(1), rx.Error[int](fakeErr))
	assert.NoError(t, verifier.Create(source).ExpectNext(1).VerifyError(context.Background()))
	assert.NoError(t, verifier.Create(source).
		ExpectNext(1).
		ExpectErrorMatches(func(err error) bool {
			return err == fakeErr
		}).
		Verify(context.Background()))
	assert.Error(t, verifier.Create(source).ExpectNext(1).VerifyComplete(context.Background()))
	assert.Error(t, verifier.Create(rx.Just(1)).ExpectNext(1).VerifyError(context.Background()))
}

func TestVerifier_Timeout(t *testing.T) {
	terminated := make(chan struct{})
	source := rx.Just(1, 2).
		DelayElements(time.Second).
		DoFinally(func(rx.SignalType) {
			close(terminated)
		})
	start := time.Now()
	err := verifier.Create(source, verifier.WithTimeout(30*time.Millisecond)).
		ExpectNext(1, 2).
		VerifyComplete(context.Background())
	assert.True(t, errors.Is(err, verifier.ErrTimeout), "should time out")
	assert.True(t, time.Since(start) < time.Second)
	select {
	case <-terminated:
	case <-time.After(time.Second):
		assert.Fail(t, "subscription should be terminated")
	}
}

func TestVerifier_Delayed(t *testing.T) {
	err := verifier.Create(rx.Just("a", "b").DelayElements(5*time.Millisecond)).
		ExpectSubscription().
		ExpectNext("a", "b").
		VerifyComplete(context.Background())
	assert.NoError(t, err)
}

func TestVerifier_Resubscribe(t *testing.T) {
	v := verifier.Create(rx.Just(1)).ExpectNext(1).ExpectComplete()
	assert.NoError(t, v.Verify(context.Background()))
	assert.NoError(t, v.Verify(context.Background()))
}

func TestVerifier_NoTerminal(t *testing.T) {
	subscribed := atomic.NewBool(false)
	source := rx.Create(func(ctx context.Context, sink rx.Sink[int]) {
		_ = sink.Next(1)
		_ = sink.Next(2)
		sink.Error(assert.AnError)
	}).DoOnSubscribe(func(context.Context, rx.Subscription) {
		subscribed.Store(true)
	})

	err := verifier.Create(source).ExpectNext(1).Verify(context.Background())
	var ae *verifier.AssertionError
	assert.True(t, errors.As(err, &ae), "should be an assertion error")
	assert.Equal(t, 1, ae.Step)
	assert.Contains(t, ae.Message, "no terminal expectation")
	assert.False(t, subscribed.Load(), "should not subscribe an incomplete script")

	err = verifier.Create(rx.Just(1)).Verify(context.Background())
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, 0, ae.Step)

	err = verifier.Create(rx.Just(1)).
		ExpectNext(1).
		ExpectComplete().
		ExpectNext(2).
		ExpectComplete().
		Verify(context.Background())
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, 2, ae.Step)
	assert.Contains(t, ae.Message, "unreachable")

	assert.Error(t, verifier.Create(source).ExpectNext(1, 2).VerifyComplete(context.Background()))
	assert.NoError(t, verifier.Create(source).ExpectNext(1, 2).VerifyError(context.Background()))
}
