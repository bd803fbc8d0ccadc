// Package mvi implements the per-screen state container.
//
// A Container owns one State value. Screens call Dispatch with intents; a
// single worker goroutine feeds them, in dispatch order, to the screen's
// Handler, which commits new states through Scope.Reduce. Intents that also
// implement navigation.Intent or notify.Notification are forwarded verbatim
// to the matching bus.
//
// State must be treated as immutable: reducers return a new value and never
// modify slices or maps reachable from the old one.
package mvi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/eventbus"
	"github.com/healthkathon/jkb/internal/navigation"
	"github.com/healthkathon/jkb/internal/notify"
)

// Handler processes one intent. It may block on collaborators using the
// scope's context, and it may call Reduce any number of times. A returned
// error other than a context cancellation is reduced through the container's
// error reducer.
type Handler[S, E any] func(ctx context.Context, s *Scope[S, E], intent any) error

// ErrorReducer folds a failed intent into state. Every container has one, so a
// collaborator failure always ends in a commit.
type ErrorReducer[S any] func(S, error) S

// Buses are the shared buses a container forwards cross-cutting intents to.
// Either may be nil.
type Buses struct {
	Navigation    *eventbus.Bus[navigation.Intent]
	Notifications *eventbus.Bus[notify.Notification]
}

// Container is the authoritative state holder for one screen.
type Container[S, E any] struct {
	name    string
	handler Handler[S, E]
	onError ErrorReducer[S]
	buses   Buses
	opts    options[S, E]

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    S
	watchers map[chan S]struct{}
	version  uint64

	mailbox  *eventbus.Queue[any]
	effects  *eventbus.Bus[E]
	closed   *atomic.Bool
	retiring *atomic.Bool
	started  *atomic.Bool

	initOnce  sync.Once
	closeOnce sync.Once
	done      chan struct{}
}

// New creates a container holding initial. Nothing is processed until
// Initialize is called. onError is required; New panics when it is nil.
func New[S, E any](name string, initial S, handler Handler[S, E], onError ErrorReducer[S], buses Buses, opts ...Option[S, E]) *Container[S, E] {
	if onError == nil {
		panic(fmt.Sprintf("mvi: container %q has no error reducer", name))
	}
	o := options[S, E]{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.With(zap.String("container", name))

	ctx, cancel := context.WithCancel(context.Background())
	return &Container[S, E]{
		name:     name,
		handler:  handler,
		onError:  onError,
		buses:    buses,
		opts:     o,
		ctx:      ctx,
		cancel:   cancel,
		state:    initial,
		watchers: make(map[chan S]struct{}),
		mailbox:  eventbus.NewQueue[any](0),
		effects:  eventbus.New[E](name+".effects", eventbus.WithLogger(o.log)),
		closed:   atomic.NewBool(false),
		retiring: atomic.NewBool(false),
		started:  atomic.NewBool(false),
		done:     make(chan struct{}),
	}
}

// Name returns the container's name.
func (c *Container[S, E]) Name() string {
	return c.name
}

// Initialize starts the worker and runs the on-create action before any
// queued intent. Only the first call has an effect.
func (c *Container[S, E]) Initialize() {
	c.initOnce.Do(func() {
		c.started.Store(true)
		go c.run()
	})
}

// State returns the latest committed state.
func (c *Container[S, E]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Version returns the number of committed reductions.
func (c *Container[S, E]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Dispatch records intent. It never blocks and never fails; after Close it
// does nothing.
func (c *Container[S, E]) Dispatch(intent any) {
	if intent == nil || c.closed.Load() || c.retiring.Load() {
		return
	}
	c.mailbox.Push(intent)
	c.forward(intent)
}

func (c *Container[S, E]) forward(intent any) {
	switch ev := intent.(type) {
	case notify.Notification:
		if c.buses.Notifications != nil {
			c.buses.Notifications.Post(ev)
		}
	case navigation.Intent:
		if c.buses.Navigation != nil {
			c.buses.Navigation.Post(ev)
		}
	}
}

// Watch streams states: the current one first, then the latest after each
// commit. Intermediate states are skipped when the reader falls behind. The
// channel closes when ctx is done or the container is closed.
func (c *Container[S, E]) Watch(ctx context.Context) <-chan S {
	ch := make(chan S, 1)

	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		close(ch)
		return ch
	}
	ch <- c.state
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.ctx.Done():
		}
		c.mu.Lock()
		if _, ok := c.watchers[ch]; ok {
			delete(c.watchers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}()
	return ch
}

// SideEffects subscribes to one-shot side effects.
func (c *Container[S, E]) SideEffects(ctx context.Context) *eventbus.Subscription[E] {
	return c.effects.Subscribe(ctx)
}

// Close cancels in-flight work. No reduction is committed once Close returns.
func (c *Container[S, E]) Close() {
	c.closeOnce.Do(func() {
		c.cancel()

		c.mu.Lock()
		c.closed.Store(true)
		for ch := range c.watchers {
			delete(c.watchers, ch)
			close(ch)
		}
		c.mu.Unlock()

		c.effects.Close()
		// A container that was never started has no worker to close done.
		c.initOnce.Do(func() { close(c.done) })
		c.opts.log.Debug("container closed")
	})
}

// retireMarker ends the worker loop after the intents queued before it.
type retireMarker struct{}

// Retire stops accepting intents, lets the worker finish those already
// queued and then closes the container. Navigation and notification intents
// sent by those handlers are still forwarded. Use Close to stop immediately.
func (c *Container[S, E]) Retire() {
	if c.closed.Load() || !c.retiring.CompareAndSwap(false, true) {
		return
	}
	if !c.started.Load() {
		c.Close()
		return
	}
	c.mailbox.Push(retireMarker{})
	c.opts.log.Debug("container retiring")
}

// Done is closed once the worker has stopped.
func (c *Container[S, E]) Done() <-chan struct{} {
	return c.done
}

func (c *Container[S, E]) run() {
	defer close(c.done)

	scope := &Scope[S, E]{c: c}
	if c.opts.onCreate != nil {
		c.execute("on-create", func() error {
			return c.opts.onCreate(c.ctx, scope)
		})
	}

	for {
		intent, ok := c.mailbox.Pop(c.ctx)
		if !ok || c.ctx.Err() != nil {
			return
		}
		if _, ok := intent.(retireMarker); ok {
			c.Close()
			return
		}
		if c.handler == nil {
			continue
		}
		c.execute(fmt.Sprintf("%T", intent), func() error {
			return c.handler(c.ctx, scope, intent)
		})
	}
}

func (c *Container[S, E]) execute(what string, fn func() error) {
	err := c.call(fn)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) || c.ctx.Err() != nil {
		c.opts.log.Debug("intent cancelled", zap.String("intent", what))
		return
	}
	c.opts.log.Warn("intent failed", zap.String("intent", what), zap.Error(err))
	c.commit(func(s S) S { return c.onError(s, err) })
}

func (c *Container[S, E]) call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return fn()
}

func (c *Container[S, E]) commit(reduce func(S) S) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() || c.ctx.Err() != nil {
		return false
	}
	c.state = reduce(c.state)
	c.version++
	for ch := range c.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- c.state
	}
	if c.opts.onCommit != nil {
		c.opts.onCommit(c.state)
	}
	return true
}

// ErrHandlerPanic wraps a panic recovered from a handler.
var ErrHandlerPanic = errors.New("mvi: handler panicked")
