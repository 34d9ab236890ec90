package rx

import (
	"errors"
	"math"
)

// RequestInfinite means requesting an unbounded number of elements.
const RequestInfinite = math.MaxInt32

// ErrSubscribeCancelled is emitted when the context of a subscription is done before the sequence terminates.
var ErrSubscribeCancelled = errors.New("rx: subscribe cancelled")
