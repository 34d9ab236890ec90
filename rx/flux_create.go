package rx

import (
	"context"
	"errors"
	"sync"

	"github.com/boookk/bithumb-practice/logger"
)

var errWrongSignal = errors.New("rx: sequence has been terminated")

type fluxCreate[T any] struct {
	gen          func(ctx context.Context, sink Sink[T])
	pubScheduler Scheduler
	subScheduler Scheduler
}

// Create creates a Flux whose elements are produced by gen.
// gen runs on the elastic scheduler and may block; elements are buffered until requested.
func Create[T any](gen func(ctx context.Context, sink Sink[T])) Flux[T] {
	return wrap[T](&fluxCreate[T]{
		gen:          gen,
		pubScheduler: ElasticScheduler(),
		subScheduler: ElasticScheduler(),
	})
}

func (p *fluxCreate[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	ctx, cancel := context.WithCancel(ctx)
	proc := &createProcessor[T]{
		q:      newQueue[T](defaultQueueSize, 0),
		actual: s,
		cancel: cancel,
	}
	proc.q.HandleRequest(func(n int) {
		if logger.IsDebugEnabled() {
			logger.Debugf("rx: create request(%s)", formatRequest(n))
		}
	})
	s.OnSubscribe(ctx, proc)
	p.pubScheduler.Do(ctx, func(ctx context.Context) {
		defer func() {
			if err := tryRecoverError(recover()); err != nil {
				proc.Error(err)
			}
		}()
		p.gen(ctx, proc)
	})
	p.subScheduler.Do(ctx, proc.drain)
}

type createProcessor[T any] struct {
	lock   sync.Mutex
	q      *queue[T]
	e      error
	sig    SignalType
	actual Subscriber[T]
	cancel context.CancelFunc
}

func (p *createProcessor[T]) Request(n int) {
	p.q.Request(int64(n))
}

func (p *createProcessor[T]) Cancel() {
	p.lock.Lock()
	if p.sig == signalDefault {
		p.sig = SignalCancel
		_ = p.q.Close()
	}
	p.lock.Unlock()
	p.cancel()
}

func (p *createProcessor[T]) Next(v T) error {
	p.lock.Lock()
	sig := p.sig
	p.lock.Unlock()
	if sig != signalDefault {
		return errWrongSignal
	}
	if err := p.q.Push(v); err != nil {
		return errWrongSignal
	}
	return nil
}

func (p *createProcessor[T]) Error(e error) {
	p.lock.Lock()
	if p.sig == signalDefault {
		p.e = e
		p.sig = SignalError
		_ = p.q.Close()
	}
	p.lock.Unlock()
}

func (p *createProcessor[T]) Complete() {
	p.lock.Lock()
	if p.sig == signalDefault {
		p.sig = SignalComplete
		_ = p.q.Close()
	}
	p.lock.Unlock()
}

func (p *createProcessor[T]) drain(ctx context.Context) {
	defer p.cancel()
	for {
		v, ok := p.q.Poll(ctx)
		if !ok {
			break
		}
		p.actual.OnNext(v)
	}
	p.lock.Lock()
	sig, e := p.sig, p.e
	if sig == signalDefault {
		sig = SignalCancel
		p.sig = sig
		e = ErrSubscribeCancelled
	}
	p.lock.Unlock()
	switch sig {
	case SignalComplete:
		p.actual.OnComplete()
	case SignalError:
		p.actual.OnError(e)
	case SignalCancel:
		if e != nil {
			p.actual.OnError(e)
		}
	}
}
