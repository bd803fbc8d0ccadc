// Package onboarding is the first-run walkthrough.
package onboarding

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/settings"
)

type Page struct {
	Title       string
	Description string
	Image       string
}

type State struct {
	CurrentPage int
	Pages       []Page
	// Error is set when the finished flag could not be stored.
	Error string
}

// IsLast reports whether the current page is the final one.
func (s State) IsLast() bool {
	return s.CurrentPage >= len(s.Pages)-1
}

type Intent interface{ onboardingIntent() }

type (
	NextPage     struct{}
	PreviousPage struct{}
	GoToPage     struct{ Page int }
	// Skip leaves onboarding early.
	Skip struct{}
	// Complete leaves onboarding after the last page.
	Complete struct{}
)

func (NextPage) onboardingIntent()     {}
func (PreviousPage) onboardingIntent() {}
func (GoToPage) onboardingIntent()     {}
func (Skip) onboardingIntent()         {}
func (Complete) onboardingIntent()     {}

func (Skip) NavigationIntent()     {}
func (Complete) NavigationIntent() {}

// Flags is the part of the settings store onboarding writes.
type Flags interface {
	PutBool(ctx context.Context, key string, value bool) error
}

type Deps struct {
	Flags   Flags
	Catalog *i18n.Catalog
	Log     *zap.Logger
}

type Container = mvi.Container[State, struct{}]

// Pages returns the walkthrough in the catalog's language.
func Pages(c *i18n.Catalog) []Page {
	return []Page{
		{Title: c.T("onboarding_welcome_title"), Description: c.T("onboarding_welcome_description"), Image: "onboarding_1"},
		{Title: c.T("onboarding_chatbot_title"), Description: c.T("onboarding_chatbot_description"), Image: "onboarding_2"},
		{Title: c.T("onboarding_monitoring_title"), Description: c.T("onboarding_monitoring_description"), Image: "onboarding_3"},
	}
}

func New(d Deps, buses mvi.Buses) *Container {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	h := &handler{Deps: d}
	return mvi.New[State, struct{}]("onboarding", State{Pages: Pages(d.Catalog)}, h.handle, h.failed, buses,
		mvi.WithLogger[State, struct{}](d.Log),
	)
}

type handler struct {
	Deps
}

func (h *handler) failed(st State, err error) State {
	st.Error = h.Catalog.Err("onboarding_save_failed", err)
	return st
}

func (h *handler) handle(ctx context.Context, s *mvi.Scope[State, struct{}], intent any) error {
	switch ev := intent.(type) {
	case NextPage:
		if s.State().IsLast() {
			s.Send(Complete{})
			return nil
		}
		s.Reduce(func(st State) State {
			st.CurrentPage++
			return st
		})
	case PreviousPage:
		s.Reduce(func(st State) State {
			if st.CurrentPage > 0 {
				st.CurrentPage--
			}
			return st
		})
	case GoToPage:
		s.Reduce(func(st State) State {
			st.CurrentPage = clamp(ev.Page, 0, len(st.Pages)-1)
			return st
		})
	case Skip, Complete:
		if h.Flags == nil {
			return nil
		}
		if err := h.Flags.PutBool(ctx, settings.KeyOnboardingCompleted, true); err != nil {
			return fmt.Errorf("persist onboarding flag: %w", err)
		}
		s.Reduce(func(st State) State {
			st.Error = ""
			return st
		})
		h.Log.Debug("onboarding finished", zap.String("via", fmt.Sprintf("%T", ev)))
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
