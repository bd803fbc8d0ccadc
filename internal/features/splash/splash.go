// Package splash is the start-up screen: it shows the backend version, then
// moves on to onboarding or, once onboarding is done, to the menu.
package splash

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/service"
	"github.com/healthkathon/jkb/internal/settings"
)

type State struct {
	IsLoading bool
	Title     string
	Version   string
	Error     string
}

// Intent is implemented by every splash intent.
type Intent interface{ splashIntent() }

type Init struct{}

// NavigateToOnboarding leaves the splash for the first onboarding page.
type NavigateToOnboarding struct{}

// NavigateToMenu skips onboarding for users who already finished it.
type NavigateToMenu struct{}

func (Init) splashIntent()                 {}
func (NavigateToOnboarding) splashIntent() {}
func (NavigateToMenu) splashIntent()       {}

func (NavigateToOnboarding) NavigationIntent() {}
func (NavigateToMenu) NavigationIntent()       {}

// Flags is the part of the settings store the splash reads.
type Flags interface {
	GetBool(ctx context.Context, key string, def bool) (bool, error)
}

type Deps struct {
	Core    service.CoreAPI
	Flags   Flags
	Catalog *i18n.Catalog
	// Hold is how long the version stays on screen.
	Hold time.Duration
	Log  *zap.Logger
}

type Container = mvi.Container[State, struct{}]

func New(d Deps, buses mvi.Buses) *Container {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	h := &handler{Deps: d}
	return mvi.New[State, struct{}]("splash", State{}, h.handle, h.failed, buses,
		mvi.WithLogger[State, struct{}](d.Log),
		mvi.WithOnCreate(func(_ context.Context, s *mvi.Scope[State, struct{}]) error {
			s.Send(Init{})
			return nil
		}),
	)
}

type handler struct {
	Deps
}

func (h *handler) failed(st State, err error) State {
	st.IsLoading = false
	st.Error = h.Catalog.Err("generic_error", err)
	return st
}

func (h *handler) handle(ctx context.Context, s *mvi.Scope[State, struct{}], intent any) error {
	if _, ok := intent.(Init); ok {
		return h.init(ctx, s)
	}
	return nil
}

func (h *handler) init(ctx context.Context, s *mvi.Scope[State, struct{}]) error {
	s.Reduce(func(st State) State {
		st.IsLoading = true
		return st
	})

	title := h.Catalog.T("app_title")
	v, err := h.Core.ServiceVersion(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		h.Log.Warn("service version unavailable", zap.Error(err))
		s.Reduce(func(st State) State {
			return State{Title: title, Version: h.Catalog.T("splash_version_error")}
		})
	} else {
		if m := service.Deref(v.Message); m != "" {
			title = m
		}
		s.Reduce(func(st State) State {
			return State{Title: title, Version: service.Deref(v.Version)}
		})
		if err := hold(ctx, h.Hold); err != nil {
			return err
		}
	}

	done := false
	if h.Flags != nil {
		done, err = h.Flags.GetBool(ctx, settings.KeyOnboardingCompleted, false)
		if err != nil {
			h.Log.Warn("read onboarding flag", zap.Error(err))
		}
	}
	if done {
		s.Send(NavigateToMenu{})
	} else {
		s.Send(NavigateToOnboarding{})
	}
	return nil
}

func hold(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
