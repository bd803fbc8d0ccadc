// Package app wires the buses, the back stack, the navigation routes and the
// screen containers together.
package app

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/eventbus"
	"github.com/healthkathon/jkb/internal/features/chatbot"
	"github.com/healthkathon/jkb/internal/features/frauddetection"
	"github.com/healthkathon/jkb/internal/features/menu"
	"github.com/healthkathon/jkb/internal/features/onboarding"
	"github.com/healthkathon/jkb/internal/features/splash"
	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/navigation"
	"github.com/healthkathon/jkb/internal/notify"
	"github.com/healthkathon/jkb/internal/service"
	"github.com/healthkathon/jkb/internal/settings"
)

// Screen is the untyped view of a screen container. Callers that render
// state type-assert to the feature's *Container.
type Screen interface {
	Name() string
	Initialize()
	Dispatch(intent any)
	Version() uint64
	Retire()
	Close()
	Done() <-chan struct{}
}

// retireGrace bounds how long a popped screen may keep working on intents
// it accepted before it left the stack.
const retireGrace = time.Second

type Deps struct {
	API      service.Collaborators
	Settings *settings.Store
	Catalog  *i18n.Catalog
	// SplashHold is how long the splash shows the version.
	SplashHold time.Duration
	Log        *zap.Logger
}

// App owns every process-wide component.
type App struct {
	Navigation    *eventbus.Bus[navigation.Intent]
	Notifications *eventbus.Bus[notify.Notification]
	Changes       *eventbus.Bus[navigation.Change]
	Nav           *navigation.Controller
	Registry      *navigation.Registry

	deps Deps
	log  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	screens map[navigation.Destination]Screen
	closed  bool
	// workers tracks the change handler and retiring screens.
	workers sync.WaitGroup
}

func New(d Deps) *App {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	log := d.Log
	changes := eventbus.New[navigation.Change]("navigation.changes", eventbus.WithLogger(log))
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		Navigation:    eventbus.New[navigation.Intent]("navigation", eventbus.WithLogger(log)),
		Notifications: eventbus.New[notify.Notification]("notifications", eventbus.WithLogger(log)),
		Changes:       changes,
		Nav:           navigation.NewController(Splash, changes, log.Named("nav")),
		Registry:      navigation.NewRegistry(log.Named("routes"), Routes()...),
		deps:          d,
		log:           log,
		ctx:           ctx,
		cancel:        cancel,
		screens:       make(map[navigation.Destination]Screen),
	}
}

// Start attaches the routes and opens the splash screen.
func (a *App) Start() error {
	// Subscribe before anything can navigate so no change is missed.
	changes := a.Changes.Subscribe(a.ctx)
	if err := a.Registry.Attach(a.ctx, a.Navigation, a.Nav); err != nil {
		return fmt.Errorf("attach routes: %w", err)
	}
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		changes.Handle(a.onChange)
	}()

	if _, err := a.Screen(a.Nav.Current()); err != nil {
		return err
	}
	a.log.Info("app started", zap.String("screen", string(a.Nav.Current())))
	return nil
}

// Screen returns dest's container, creating and initializing it on first use.
func (a *App) Screen(dest navigation.Destination) (Screen, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, fmt.Errorf("app closed")
	}
	if s, ok := a.screens[dest]; ok {
		return s, nil
	}
	s, err := a.build(dest)
	if err != nil {
		return nil, err
	}
	a.screens[dest] = s
	s.Initialize()
	a.log.Debug("screen opened", zap.String("screen", string(dest)))
	return s, nil
}

// Current returns the top destination and its container.
func (a *App) Current() (navigation.Destination, Screen, error) {
	dest := a.Nav.Current()
	s, err := a.Screen(dest)
	return dest, s, err
}

// Open reports whether dest currently has a live container.
func (a *App) Open(dest navigation.Destination) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.screens[dest]
	return ok
}

// Close stops every container and bus.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	screens := a.screens
	a.screens = map[navigation.Destination]Screen{}
	a.mu.Unlock()

	a.cancel()
	for _, s := range screens {
		s.Close()
	}
	for _, s := range screens {
		<-s.Done()
	}
	a.workers.Wait()
	a.Navigation.Close()
	a.Notifications.Close()
	a.Changes.Close()
	a.log.Info("app closed")
}

func (a *App) onChange(ch navigation.Change) {
	for _, dest := range ch.Popped {
		if RetentionOf(dest) != ScreenScoped || slices.Contains(ch.Stack, dest) {
			continue
		}
		a.mu.Lock()
		s, ok := a.screens[dest]
		delete(a.screens, dest)
		a.mu.Unlock()
		if ok {
			a.retire(dest, s)
		}
	}
	if ch.To != "" {
		if _, err := a.Screen(ch.To); err != nil {
			a.log.Warn("open screen", zap.String("screen", string(ch.To)), zap.Error(err))
		}
	}
}

// retire lets s finish its queued intents, such as persisting a flag on the
// intent that navigated away, then closes it.
func (a *App) retire(dest navigation.Destination, s Screen) {
	s.Retire()
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		t := time.NewTimer(retireGrace)
		defer t.Stop()
		select {
		case <-s.Done():
		case <-t.C:
			s.Close()
		case <-a.ctx.Done():
			s.Close()
		}
		<-s.Done()
		a.log.Debug("screen closed", zap.String("screen", string(dest)))
	}()
}

func (a *App) buses() mvi.Buses {
	return mvi.Buses{Navigation: a.Navigation, Notifications: a.Notifications}
}

func (a *App) build(dest navigation.Destination) (Screen, error) {
	d := a.deps
	log := a.log.Named(string(dest))
	switch dest {
	case Splash:
		deps := splash.Deps{Core: d.API.Core, Catalog: d.Catalog, Hold: d.SplashHold, Log: log}
		if d.Settings != nil {
			deps.Flags = d.Settings
		}
		return splash.New(deps, a.buses()), nil
	case Onboarding:
		deps := onboarding.Deps{Catalog: d.Catalog, Log: log}
		if d.Settings != nil {
			deps.Flags = d.Settings
		}
		return onboarding.New(deps, a.buses()), nil
	case Menu:
		deps := menu.Deps{Catalog: d.Catalog, Log: log}
		if d.Settings != nil {
			deps.Names = d.Settings
		}
		return menu.New(deps, a.buses()), nil
	case FraudDetection:
		return frauddetection.New(frauddetection.Deps{API: d.API.Fraud, Catalog: d.Catalog, Log: log}, a.buses()), nil
	case Chatbot:
		return chatbot.New(chatbot.Deps{API: d.API.Chatbot, Catalog: d.Catalog, Log: log}, a.buses()), nil
	}
	return nil, fmt.Errorf("unknown destination %q", dest)
}
