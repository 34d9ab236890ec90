package rx

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// addRequest adds n to the demand counter, saturating at RequestInfinite, and returns the previous value.
func addRequest(requested *atomic.Int64, n int64) int64 {
	for {
		cur := requested.Load()
		if cur == RequestInfinite {
			return cur
		}
		next := cur + n
		if next >= RequestInfinite || next < 0 {
			next = RequestInfinite
		}
		if requested.CompareAndSwap(cur, next) {
			return cur
		}
	}
}

func tryRecoverError(re interface{}) error {
	if re == nil {
		return nil
	}
	switch e := re.(type) {
	case error:
		return errors.WithStack(e)
	case string:
		return errors.New(e)
	default:
		return errors.Errorf("%v", e)
	}
}

// arbiter switches the upstream Subscription of serial operators while keeping track of the outstanding demand.
type arbiter struct {
	mu        sync.Mutex
	current   Subscription
	requested int64
	cancelled bool
}

func (p *arbiter) Request(n int) {
	if n < 1 {
		return
	}
	p.mu.Lock()
	if p.cancelled {
		p.mu.Unlock()
		return
	}
	p.requested += int64(n)
	if p.requested >= RequestInfinite || p.requested < 0 {
		p.requested = RequestInfinite
	}
	cur := p.current
	p.mu.Unlock()
	if cur != nil {
		cur.Request(n)
	}
}

func (p *arbiter) Set(s Subscription) {
	p.mu.Lock()
	if p.cancelled {
		p.mu.Unlock()
		s.Cancel()
		return
	}
	p.current = s
	r := p.requested
	p.mu.Unlock()
	if r > 0 {
		s.Request(int(r))
	}
}

func (p *arbiter) Produced(n int64) {
	p.mu.Lock()
	if p.requested != RequestInfinite {
		p.requested -= n
		if p.requested < 0 {
			p.requested = 0
		}
	}
	p.mu.Unlock()
}

func (p *arbiter) Cancel() {
	p.mu.Lock()
	if p.cancelled {
		p.mu.Unlock()
		return
	}
	p.cancelled = true
	cur := p.current
	p.current = nil
	p.mu.Unlock()
	if cur != nil {
		cur.Cancel()
	}
}

func (p *arbiter) IsCancelled() (ok bool) {
	p.mu.Lock()
	ok = p.cancelled
	p.mu.Unlock()
	return
}
