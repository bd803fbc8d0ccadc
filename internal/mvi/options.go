package mvi

import (
	"context"

	"go.uber.org/zap"
)

type options[S, E any] struct {
	log      *zap.Logger
	onCreate func(ctx context.Context, s *Scope[S, E]) error
	onCommit func(S)
}

// Option configures a Container.
type Option[S, E any] func(*options[S, E])

// WithLogger sets the container's logger.
func WithLogger[S, E any](log *zap.Logger) Option[S, E] {
	return func(o *options[S, E]) {
		if log != nil {
			o.log = log
		}
	}
}

// WithOnCreate sets the action Initialize runs once before any intent.
func WithOnCreate[S, E any](fn func(ctx context.Context, s *Scope[S, E]) error) Option[S, E] {
	return func(o *options[S, E]) { o.onCreate = fn }
}

// WithCommitObserver is called with every committed state while the commit
// lock is held. It must not call back into the container.
func WithCommitObserver[S, E any](fn func(S)) Option[S, E] {
	return func(o *options[S, E]) { o.onCommit = fn }
}
