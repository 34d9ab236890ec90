package rx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/boookk/bithumb-practice/logger"
	"go.uber.org/atomic"
)

var logSeq atomic.Int64

func newFluxLog[T any](source Publisher[T], category ...string) *fluxPeek[T] {
	var name string
	if len(category) > 0 && category[0] != "" {
		name = category[0]
	} else {
		name = fmt.Sprintf("rx.Flux.%d", logSeq.Add(1))
	}
	return newFluxPeek(source, func(h *hooks[T]) {
		h.hOnSubscribe = func(ctx context.Context, s Subscription) {
			logger.Infof("%s | onSubscribe(%T)", name, s)
		}
		h.hOnRequest = func(n int) {
			logger.Infof("%s | request(%s)", name, formatRequest(n))
		}
		h.hOnNext = func(v T) error {
			logger.Infof("%s | onNext(%v)", name, v)
			return nil
		}
		h.hOnComplete = func() {
			logger.Infof("%s | onComplete()", name)
		}
		h.hOnError = func(e error) {
			logger.Errorf("%s | onError(%v)", name, e)
		}
		h.hOnCancel = func() {
			logger.Infof("%s | cancel()", name)
		}
	})
}

func formatRequest(n int) string {
	if n >= RequestInfinite {
		return "unbounded"
	}
	return strconv.Itoa(n)
}
