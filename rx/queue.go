package rx

import (
	"context"
	"errors"
	"sync"
)

const defaultQueueSize = 16

var errQueueClosed = errors.New("rx: queue has been closed")

// queue buffers elements pushed by a producer and releases them to a poller according to request tickets.
type queue[T any] struct {
	mu         sync.Mutex
	tickets    int64
	wake       chan struct{}
	closed     chan struct{}
	data       chan T
	onRequestN func(n int)
	closeOnce  sync.Once
}

func newQueue[T any](size int, tickets int64) *queue[T] {
	return &queue[T]{
		tickets: tickets,
		wake:    make(chan struct{}, 1),
		closed:  make(chan struct{}),
		data:    make(chan T, size),
	}
}

func (q *queue[T]) HandleRequest(fn func(n int)) {
	q.onRequestN = fn
}

func (q *queue[T]) Request(n int64) {
	if n < 1 {
		return
	}
	q.mu.Lock()
	q.tickets += n
	if q.tickets >= RequestInfinite || q.tickets < 0 {
		q.tickets = RequestInfinite
	}
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
	if q.onRequestN != nil {
		q.onRequestN(int(n))
	}
}

// Push blocks while the buffer is full. It fails once the queue has been closed.
func (q *queue[T]) Push(v T) (err error) {
	defer func() {
		if recover() != nil {
			err = errQueueClosed
		}
	}()
	q.data <- v
	return
}

func (q *queue[T]) Close() error {
	q.closeOnce.Do(func() {
		close(q.closed)
		close(q.data)
	})
	return nil
}

// Poll waits for a ticket and then for the next element. ok is false once the queue is drained and closed.
func (q *queue[T]) Poll(ctx context.Context) (v T, ok bool) {
	for !q.takeTicket() {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		case <-q.closed:
			if len(q.data) == 0 {
				return
			}
			// remaining elements still need demand
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
			}
		}
	}
	select {
	case <-ctx.Done():
		return
	case v, ok = <-q.data:
		return
	}
}

func (q *queue[T]) takeTicket() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.tickets < 1 {
		return false
	}
	if q.tickets != RequestInfinite {
		q.tickets--
	}
	return true
}
