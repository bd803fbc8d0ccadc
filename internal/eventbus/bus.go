// Package eventbus provides a typed multicast channel with no buffering for
// late subscribers. Every subscriber gets its own mailbox, so Post never waits
// on a slow listener and events from one producer keep their order.
package eventbus

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Bus delivers each posted event to every subscriber registered at post time.
// Events posted while nobody is subscribed are lost.
type Bus[T any] struct {
	name string
	opts options

	mu     sync.RWMutex
	subs   map[uint64]*Subscription[T]
	nextID uint64

	closed    *atomic.Bool
	posted    *atomic.Uint64
	delivered *atomic.Uint64
	dropped   *atomic.Uint64
}

// Stats is a snapshot of a bus's counters.
type Stats struct {
	Posted    uint64
	Delivered uint64
	Dropped   uint64
}

type options struct {
	log        *zap.Logger
	maxPending int
}

// Option configures a Bus.
type Option func(*options)

// WithLogger sets the logger used for dropped events and listener panics.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMaxPending bounds each subscriber's mailbox. When a mailbox is full the
// oldest undelivered event is dropped.
func WithMaxPending(n int) Option {
	return func(o *options) { o.maxPending = n }
}

// New creates a bus. The name only appears in logs.
func New[T any](name string, opts ...Option) *Bus[T] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Bus[T]{
		name:      name,
		opts:      o,
		subs:      make(map[uint64]*Subscription[T]),
		closed:    atomic.NewBool(false),
		posted:    atomic.NewUint64(0),
		delivered: atomic.NewUint64(0),
		dropped:   atomic.NewUint64(0),
	}
}

// Post queues event for every current subscriber and returns immediately.
// It is a no-op when there are no subscribers or the bus is closed.
func (b *Bus[T]) Post(event T) {
	if b.closed.Load() {
		return
	}
	b.posted.Inc()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.subs) == 0 {
		b.opts.log.Debug("no subscribers, event dropped", zap.String("bus", b.name))
		return
	}
	for _, s := range b.subs {
		if !s.queue.Push(event) {
			b.dropped.Inc()
			b.opts.log.Warn("subscriber mailbox full, oldest event dropped",
				zap.String("bus", b.name), zap.Uint64("subscriber", s.id))
		}
	}
}

// Subscribe registers a listener. Every event posted after Subscribe returns
// is delivered on the subscription's channel until ctx is done or the
// subscription is closed.
func (b *Bus[T]) Subscribe(ctx context.Context) *Subscription[T] {
	sctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		bus:    b,
		queue:  NewQueue[T](b.opts.maxPending),
		events: make(chan T),
		ctx:    sctx,
		cancel: cancel,
	}

	b.mu.Lock()
	if b.closed.Load() {
		b.mu.Unlock()
		cancel()
		close(s.events)
		return s
	}
	b.nextID++
	s.id = b.nextID
	b.subs[s.id] = s
	b.mu.Unlock()

	go s.pump()
	return s
}

// Subscribers returns the number of live subscriptions.
func (b *Bus[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Stats returns the bus counters.
func (b *Bus[T]) Stats() Stats {
	return Stats{
		Posted:    b.posted.Load(),
		Delivered: b.delivered.Load(),
		Dropped:   b.dropped.Load(),
	}
}

// Close ends every subscription. Later posts are ignored and later
// subscriptions are returned already closed.
func (b *Bus[T]) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	b.mu.Lock()
	subs := make([]*Subscription[T], 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.Close()
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

// Subscription is one listener registration on a Bus.
type Subscription[T any] struct {
	id     uint64
	bus    *Bus[T]
	queue  *Queue[T]
	events chan T
	ctx    context.Context
	cancel context.CancelFunc
}

// Events returns the delivery channel. It is closed when the subscription ends.
func (s *Subscription[T]) Events() <-chan T {
	return s.events
}

// Done is closed when the subscription has been cancelled.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Close unsubscribes. Events still queued for this subscriber are discarded.
func (s *Subscription[T]) Close() {
	s.cancel()
}

// Handle calls fn for each delivered event until the subscription ends.
// A panic in fn is logged and does not stop delivery.
func (s *Subscription[T]) Handle(fn func(T)) {
	for ev := range s.events {
		s.deliver(fn, ev)
	}
}

func (s *Subscription[T]) deliver(fn func(T), ev T) {
	defer func() {
		if r := recover(); r != nil {
			s.bus.opts.log.Error("listener panicked",
				zap.String("bus", s.bus.name), zap.Uint64("subscriber", s.id), zap.Any("panic", r))
		}
	}()
	fn(ev)
}

func (s *Subscription[T]) pump() {
	defer close(s.events)
	defer s.bus.remove(s.id)
	for {
		ev, ok := s.queue.Pop(s.ctx)
		if !ok || s.ctx.Err() != nil {
			return
		}
		select {
		case s.events <- ev:
			s.bus.delivered.Inc()
		case <-s.ctx.Done():
			return
		}
	}
}
