package splash

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/healthkathon/jkb/internal/eventbus"
	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/navigation"
	"github.com/healthkathon/jkb/internal/service"
)

type fakeCore struct {
	v   service.VersionData
	err error
}

func (f fakeCore) ServiceVersion(context.Context) (service.VersionData, error) { return f.v, f.err }

type fakeFlags map[string]bool

func (f fakeFlags) GetBool(_ context.Context, key string, def bool) (bool, error) {
	if v, ok := f[key]; ok {
		return v, nil
	}
	return def, nil
}

func start(t *testing.T, d Deps) (*Container, <-chan navigation.Intent) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	nav := eventbus.New[navigation.Intent]("navigation")
	sub := nav.Subscribe(ctx)

	d.Log = zaptest.NewLogger(t)
	c := New(d, mvi.Buses{Navigation: nav})
	t.Cleanup(func() {
		c.Close()
		<-c.Done()
	})
	c.Initialize()
	return c, sub.Events()
}

func next(t *testing.T, ch <-chan navigation.Intent) navigation.Intent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no navigation intent")
		return nil
	}
}

func TestInitShowsVersionThenOnboarding(t *testing.T) {
	t.Parallel()

	c, nav := start(t, Deps{
		Core:    fakeCore{v: service.VersionData{Message: service.Str("JKB API"), Version: service.Str("2.0.1")}},
		Flags:   fakeFlags{},
		Catalog: i18n.MustNew("en"),
	})

	require.Equal(t, NavigateToOnboarding{}, next(t, nav))
	require.Equal(t, State{Title: "JKB API", Version: "2.0.1"}, c.State())
}

func TestInitFailureShowsLocalizedError(t *testing.T) {
	t.Parallel()

	c, nav := start(t, Deps{
		Core:    fakeCore{err: errors.New("connection refused")},
		Catalog: i18n.MustNew("id"),
		Hold:    time.Hour,
	})

	require.Equal(t, NavigateToOnboarding{}, next(t, nav))
	require.Equal(t, State{Title: "BPJS JKB", Version: "Gagal memuat versi"}, c.State())
}

func TestCompletedOnboardingGoesToMenu(t *testing.T) {
	t.Parallel()

	_, nav := start(t, Deps{
		Core:    fakeCore{v: service.VersionData{Version: service.Str("1.0.0")}},
		Flags:   fakeFlags{"onboarding.completed": true},
		Catalog: i18n.MustNew("en"),
	})

	require.Equal(t, NavigateToMenu{}, next(t, nav))
}

func TestCloseDuringHoldNavigatesNowhere(t *testing.T) {
	t.Parallel()

	c, nav := start(t, Deps{
		Core:    fakeCore{v: service.VersionData{Version: service.Str("1.0.0")}},
		Catalog: i18n.MustNew("en"),
		Hold:    time.Hour,
	})

	require.Eventually(t, func() bool { return c.State().Version == "1.0.0" }, 2*time.Second, 5*time.Millisecond)
	c.Close()
	<-c.Done()

	select {
	case ev := <-nav:
		t.Fatalf("unexpected navigation %T", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
