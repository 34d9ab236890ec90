package rx

import (
	"context"
	"io"

	"github.com/panjf2000/ants"
)

var (
	sharedImmediate Scheduler = immediate{}
	sharedElastic             = NewElasticScheduler(ants.DEFAULT_ANTS_POOL_SIZE)
	sharedSingle              = NewSingleScheduler()
)

// Do is a unit of work handed to a Scheduler.
type Do = func(ctx context.Context)

// Scheduler decides where and when a unit of work runs.
// Scheduling never changes the relative order of the signals of one subscription.
type Scheduler interface {
	io.Closer
	// Do submits fn for execution.
	Do(ctx context.Context, fn Do)
}

// ImmediateScheduler runs every task inline on the calling goroutine.
func ImmediateScheduler() Scheduler {
	return sharedImmediate
}

// ElasticScheduler returns the shared pool scheduler.
// Tasks run concurrently on pooled goroutines, so two tasks submitted back to back may run in any order.
// Operators use it for timers and for subscribing off the caller's goroutine.
func ElasticScheduler() Scheduler {
	return sharedElastic
}

// SingleScheduler returns the shared single-worker scheduler.
// Unlike ElasticScheduler, tasks run one at a time in submission order on one goroutine,
// and AwaitIdle reports when the queue has drained.
func SingleScheduler() *Worker {
	return sharedSingle
}

// NewElasticScheduler creates a pool scheduler running at most size tasks at once.
// It panics if the pool cannot be created.
func NewElasticScheduler(size int) Scheduler {
	pool, err := ants.NewPool(size)
	if err != nil {
		panic(err)
	}
	return pooled{pool}
}

type immediate struct{}

func (immediate) Close() error {
	return nil
}

func (immediate) Do(ctx context.Context, fn Do) {
	fn(ctx)
}

type pooled struct {
	pool *ants.Pool
}

func (p pooled) Close() error {
	return p.pool.Release()
}

// Do panics when the pool rejects the task, which only happens after Close.
func (p pooled) Do(ctx context.Context, fn Do) {
	if err := p.pool.Submit(func() {
		fn(ctx)
	}); err != nil {
		panic(err)
	}
}
