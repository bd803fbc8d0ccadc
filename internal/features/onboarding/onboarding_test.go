package onboarding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/healthkathon/jkb/internal/eventbus"
	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/mvi"
	"github.com/healthkathon/jkb/internal/navigation"
)

type fakeFlags struct {
	mu   sync.Mutex
	puts map[string]bool
	err  error
}

func (f *fakeFlags) PutBool(_ context.Context, key string, v bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.puts == nil {
		f.puts = map[string]bool{}
	}
	f.puts[key] = v
	return nil
}

func (f *fakeFlags) get(key string) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.puts[key]
	return v, ok
}

type fixture struct {
	c     *Container
	flags *fakeFlags
	nav   <-chan navigation.Intent
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bus := eventbus.New[navigation.Intent]("navigation")
	sub := bus.Subscribe(ctx)
	flags := &fakeFlags{}
	c := New(Deps{Flags: flags, Catalog: i18n.MustNew("id"), Log: zaptest.NewLogger(t)}, mvi.Buses{Navigation: bus})
	t.Cleanup(func() {
		c.Close()
		<-c.Done()
	})
	c.Initialize()
	return fixture{c: c, flags: flags, nav: sub.Events()}
}

func (f fixture) settle(t *testing.T, commits uint64) {
	t.Helper()
	require.Eventually(t, func() bool { return f.c.Version() >= commits }, 2*time.Second, time.Millisecond)
}

func TestPagesAreLocalized(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	st := f.c.State()
	require.Len(t, st.Pages, 3)
	require.Equal(t, "Selamat Datang di BPJS JKB", st.Pages[0].Title)
	require.Zero(t, st.CurrentPage)
}

func TestPagingIsBounded(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.c.Dispatch(PreviousPage{})
	f.c.Dispatch(NextPage{})
	f.c.Dispatch(NextPage{})
	f.c.Dispatch(GoToPage{Page: 99})
	f.c.Dispatch(GoToPage{Page: -4})
	f.c.Dispatch(GoToPage{Page: 1})
	f.settle(t, 6)

	require.Equal(t, 1, f.c.State().CurrentPage)
}

func TestNextOnLastPageCompletes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.c.Dispatch(GoToPage{Page: 2})
	f.c.Dispatch(NextPage{})

	select {
	case ev := <-f.nav:
		require.Equal(t, Complete{}, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("complete was not forwarded")
	}
	require.Eventually(t, func() bool {
		v, ok := f.flags.get("onboarding.completed")
		return ok && v
	}, 2*time.Second, time.Millisecond)
	require.Equal(t, 2, f.c.State().CurrentPage)
}

func TestSkipForwardsAndPersists(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.c.Dispatch(Skip{})

	select {
	case ev := <-f.nav:
		require.Equal(t, Skip{}, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("skip was not forwarded")
	}
	require.Eventually(t, func() bool {
		_, ok := f.flags.get("onboarding.completed")
		return ok
	}, 2*time.Second, time.Millisecond)
}

func TestPersistFailureStillNavigates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.flags.err = errors.New("disk full")
	f.c.Dispatch(Complete{})

	select {
	case ev := <-f.nav:
		require.Equal(t, Complete{}, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("complete was not forwarded")
	}
	f.settle(t, 1)
	require.Contains(t, f.c.State().Error, "disk full")
	_, stored := f.flags.get("onboarding.completed")
	require.False(t, stored)
}

func TestSkipFailureCommitsError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.flags.err = errors.New("disk full")
	f.c.Dispatch(Skip{})
	f.settle(t, 1)

	st := f.c.State()
	require.Equal(t, "Gagal menyimpan progres onboarding: persist onboarding flag: disk full", st.Error)
	require.Zero(t, st.CurrentPage)
}
