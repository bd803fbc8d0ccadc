package mvi

import "context"

// Scope is what a Handler sees of its container.
type Scope[S, E any] struct {
	c *Container[S, E]
}

// Context is cancelled when the container is closed.
func (s *Scope[S, E]) Context() context.Context {
	return s.c.ctx
}

// State returns the latest committed state.
func (s *Scope[S, E]) State() S {
	return s.c.State()
}

// Reduce commits reduce(current). Commits on one container never interleave.
// It returns false, committing nothing, once the container is closed.
func (s *Scope[S, E]) Reduce(reduce func(S) S) bool {
	return s.c.commit(reduce)
}

// Send dispatches a follow-up intent. It is queued behind the intent being
// handled. While the container is retiring nothing more is queued, but
// cross-cutting intents still reach their bus.
func (s *Scope[S, E]) Send(intent any) {
	if intent == nil || s.c.closed.Load() {
		return
	}
	if s.c.retiring.Load() {
		s.c.forward(intent)
		return
	}
	s.c.Dispatch(intent)
}

// PostSideEffect emits a one-shot side effect to current subscribers.
func (s *Scope[S, E]) PostSideEffect(effect E) {
	if s.c.ctx.Err() != nil {
		return
	}
	s.c.effects.Post(effect)
}
