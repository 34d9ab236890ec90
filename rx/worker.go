package rx

import (
	"context"
	"sync"

	"github.com/boookk/bithumb-practice/logger"
	"github.com/pkg/errors"
)

var errWorkerClosed = errors.New("rx: worker has been closed")

// Worker is a Scheduler running every task in submission order on one dedicated goroutine.
// Submitting never blocks, so a task may schedule further tasks on its own Worker.
type Worker struct {
	mu      sync.Mutex
	cond    *sync.Cond
	jobs    []func()
	running bool
	closed  bool
	idle    chan struct{}
	stopped chan struct{}
}

// NewSingleScheduler returns a new Worker.
func NewSingleScheduler() *Worker {
	w := &Worker{
		idle:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	close(w.idle)
	go w.loop()
	return w
}

// Do register function to do. It panics if the Worker has been closed.
func (w *Worker) Do(ctx context.Context, fn Do) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		panic(errWorkerClosed)
	}
	if len(w.jobs) == 0 && !w.running {
		w.idle = make(chan struct{})
	}
	w.jobs = append(w.jobs, func() {
		fn(ctx)
	})
	w.mu.Unlock()
	w.cond.Signal()
}

// AwaitIdle blocks until no task is queued or running.
func (w *Worker) AwaitIdle(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "rx: await worker idle")
	}
}

// Close stops the Worker after the queued tasks have run.
func (w *Worker) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	w.cond.Signal()
	<-w.stopped
	return nil
}

func (w *Worker) loop() {
	defer close(w.stopped)
	for {
		w.mu.Lock()
		for len(w.jobs) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.jobs) == 0 {
			w.mu.Unlock()
			return
		}
		job := w.jobs[0]
		w.jobs[0] = nil
		w.jobs = w.jobs[1:]
		w.running = true
		w.mu.Unlock()

		w.run(job)

		w.mu.Lock()
		w.running = false
		if len(w.jobs) == 0 {
			close(w.idle)
		}
		w.mu.Unlock()
	}
}

func (w *Worker) run(job func()) {
	defer func() {
		if err := tryRecoverError(recover()); err != nil {
			logger.Errorf("worker task panic: %+v\n", err)
		}
	}()
	job()
}
