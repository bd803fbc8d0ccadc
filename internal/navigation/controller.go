package navigation

import (
	"sync"

	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/eventbus"
)

// Change describes one back stack transition.
type Change struct {
	From   Destination
	To     Destination
	Stack  []Destination
	Popped []Destination
}

type backStack struct {
	items []Destination
}

func (s *backStack) Push(d Destination) {
	if d == "" {
		return
	}
	s.items = append(s.items, d)
}

func (s *backStack) Pop() (Destination, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, true
}

func (s backStack) Top() Destination {
	if len(s.items) == 0 {
		return ""
	}
	return s.items[len(s.items)-1]
}

func (s backStack) Len() int {
	return len(s.items)
}

// popUpTo removes everything above the last occurrence of d, and d itself when
// inclusive. It returns the removed entries, top first.
func (s *backStack) popUpTo(d Destination, inclusive bool) []Destination {
	idx := -1
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] == d {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	cut := idx + 1
	if inclusive {
		cut = idx
	}
	var removed []Destination
	for i := len(s.items) - 1; i >= cut; i-- {
		removed = append(removed, s.items[i])
	}
	s.items = s.items[:cut]
	return removed
}

func (s backStack) snapshot() []Destination {
	out := make([]Destination, len(s.items))
	copy(out, s.items)
	return out
}

// Controller is the application's back stack. Every transition is posted to
// the change bus so screens can follow it.
type Controller struct {
	mu      sync.Mutex
	stack   backStack
	changes *eventbus.Bus[Change]
	log     *zap.Logger
}

// NewController starts a back stack at start. changes may be nil.
func NewController(start Destination, changes *eventbus.Bus[Change], log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{changes: changes, log: log}
	c.stack.Push(start)
	return c
}

// Navigate pushes dest after applying opts.
func (c *Controller) Navigate(dest Destination, opts ...Option) {
	var o navOptions
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	from := c.stack.Top()
	var popped []Destination
	if o.popUpTo != "" {
		popped = c.stack.popUpTo(o.popUpTo, o.inclusive)
	}
	if !(o.singleTop && c.stack.Top() == dest) {
		c.stack.Push(dest)
	}
	change := Change{From: from, To: c.stack.Top(), Stack: c.stack.snapshot(), Popped: popped}
	c.mu.Unlock()

	c.log.Debug("navigate", zap.String("from", string(from)), zap.String("to", string(dest)))
	c.publish(change)
}

// Back pops the top entry. The root entry is never popped.
func (c *Controller) Back() bool {
	c.mu.Lock()
	if c.stack.Len() <= 1 {
		c.mu.Unlock()
		return false
	}
	from, _ := c.stack.Pop()
	change := Change{From: from, To: c.stack.Top(), Stack: c.stack.snapshot(), Popped: []Destination{from}}
	c.mu.Unlock()

	c.log.Debug("back", zap.String("from", string(from)), zap.String("to", string(change.To)))
	c.publish(change)
	return true
}

// Current returns the destination on top of the stack.
func (c *Controller) Current() Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.Top()
}

// Stack returns a copy of the back stack, root first.
func (c *Controller) Stack() []Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.snapshot()
}

func (c *Controller) publish(change Change) {
	if c.changes != nil {
		c.changes.Post(change)
	}
}
