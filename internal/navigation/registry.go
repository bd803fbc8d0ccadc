package navigation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/eventbus"
)

// ErrAlreadyAttached is returned when a Registry is attached to a bus twice.
var ErrAlreadyAttached = errors.New("navigation: registry already attached")

// Handler pairs a pure predicate with the navigation it performs.
// CanHandle must not have side effects.
type Handler struct {
	Name      string
	CanHandle func(Intent) bool
	Apply     func(Navigator, Intent)
}

// On builds a handler for every intent of concrete type T.
func On[T Intent](name string, apply func(Navigator, T)) Handler {
	return Handler{
		Name: name,
		CanHandle: func(ev Intent) bool {
			_, ok := ev.(T)
			return ok
		},
		Apply: func(nav Navigator, ev Intent) {
			apply(nav, ev.(T))
		},
	}
}

// Match builds a handler from an arbitrary predicate.
func Match(name string, pred func(Intent) bool, apply func(Navigator, Intent)) Handler {
	return Handler{Name: name, CanHandle: pred, Apply: apply}
}

// Registry routes each navigation intent to the first handler that accepts
// it, in registration order.
type Registry struct {
	handlers []Handler
	log      *zap.Logger
	attached *atomic.Bool
}

// NewRegistry fixes the handler order for the registry's lifetime.
func NewRegistry(log *zap.Logger, handlers ...Handler) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	hs := make([]Handler, len(handlers))
	copy(hs, handlers)
	return &Registry{handlers: hs, log: log, attached: atomic.NewBool(false)}
}

// Route applies the first matching handler and reports its name. An intent no
// handler accepts is dropped.
func (r *Registry) Route(nav Navigator, ev Intent) (string, bool) {
	for _, h := range r.handlers {
		if h.CanHandle == nil || !h.CanHandle(ev) {
			continue
		}
		if h.Apply != nil {
			h.Apply(nav, ev)
		}
		r.log.Debug("navigation routed", zap.String("handler", h.Name), zap.String("intent", intentName(ev)))
		return h.Name, true
	}
	r.log.Debug("navigation intent unhandled", zap.String("intent", intentName(ev)))
	return "", false
}

// Attach subscribes the registry to bus and routes every delivered intent
// against nav until ctx is done. The subscription is live when Attach returns.
func (r *Registry) Attach(ctx context.Context, bus *eventbus.Bus[Intent], nav Navigator) error {
	if !r.attached.CompareAndSwap(false, true) {
		return ErrAlreadyAttached
	}
	sub := bus.Subscribe(ctx)
	go sub.Handle(func(ev Intent) {
		r.Route(nav, ev)
	})
	return nil
}

func intentName(ev Intent) string {
	return fmt.Sprintf("%T", ev)
}
