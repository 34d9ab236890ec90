package rx

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

type fluxSubscribeOn[T any] struct {
	source Publisher[T]
	sc     Scheduler
}

func newFluxSubscribeOn[T any](source Publisher[T], sc Scheduler) *fluxSubscribeOn[T] {
	return &fluxSubscribeOn[T]{
		source: source,
		sc:     sc,
	}
}

func (p *fluxSubscribeOn[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	p.sc.Do(ctx, func(ctx context.Context) {
		p.source.SubscribeWith(ctx, s)
	})
}

type fluxPublishOn[T any] struct {
	source Publisher[T]
	sc     Scheduler
}

func newFluxPublishOn[T any](source Publisher[T], sc Scheduler) *fluxPublishOn[T] {
	return &fluxPublishOn[T]{
		source: source,
		sc:     sc,
	}
}

func (p *fluxPublishOn[T]) SubscribeWith(ctx context.Context, s Subscriber[T]) {
	p.source.SubscribeWith(ctx, &publishOnSubscriber[T]{
		ctx:    ctx,
		actual: s,
		sc:     p.sc,
	})
}

type publishOnSignal[T any] struct {
	sig   SignalType
	value T
	err   error
}

// publishOnSubscriber queues every signal and replays them in order on the scheduler.
// At most one drain task is scheduled at any time.
type publishOnSubscriber[T any] struct {
	ctx       context.Context
	actual    Subscriber[T]
	sc        Scheduler
	upstream  Subscription
	mu        sync.Mutex
	signals   []publishOnSignal[T]
	wip       atomic.Int32
	cancelled atomic.Int32
}

func (p *publishOnSubscriber[T]) OnSubscribe(ctx context.Context, su Subscription) {
	p.upstream = su
	p.actual.OnSubscribe(ctx, p)
}

func (p *publishOnSubscriber[T]) OnNext(v T) {
	p.offer(publishOnSignal[T]{sig: signalDefault, value: v})
}

func (p *publishOnSubscriber[T]) OnError(err error) {
	p.offer(publishOnSignal[T]{sig: SignalError, err: err})
}

func (p *publishOnSubscriber[T]) OnComplete() {
	p.offer(publishOnSignal[T]{sig: SignalComplete})
}

func (p *publishOnSubscriber[T]) Request(n int) {
	p.upstream.Request(n)
}

func (p *publishOnSubscriber[T]) Cancel() {
	if p.cancelled.CompareAndSwap(0, 1) {
		p.upstream.Cancel()
	}
}

func (p *publishOnSubscriber[T]) offer(s publishOnSignal[T]) {
	p.mu.Lock()
	p.signals = append(p.signals, s)
	p.mu.Unlock()
	if p.wip.Add(1) == 1 {
		p.sc.Do(p.ctx, p.drain)
	}
}

func (p *publishOnSubscriber[T]) drain(_ context.Context) {
	missed := int32(1)
	for {
		p.mu.Lock()
		batch := p.signals
		p.signals = nil
		p.mu.Unlock()
		for _, it := range batch {
			if p.cancelled.Load() != 0 {
				break
			}
			switch it.sig {
			case SignalComplete:
				p.actual.OnComplete()
			case SignalError:
				p.actual.OnError(it.err)
			default:
				p.actual.OnNext(it.value)
			}
		}
		missed = p.wip.Add(-missed)
		if missed == 0 {
			return
		}
	}
}
