package navigation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/healthkathon/jkb/internal/eventbus"
)

type kind string

type kindIntent struct{ k kind }

func (kindIntent) NavigationIntent() {}

type otherIntent struct{}

func (otherIntent) NavigationIntent() {}

func matches(kinds ...kind) func(Intent) bool {
	return func(ev Intent) bool {
		ki, ok := ev.(kindIntent)
		if !ok {
			return false
		}
		for _, k := range kinds {
			if ki.k == k {
				return true
			}
		}
		return false
	}
}

type recordingNav struct {
	calls []Destination
}

func (n *recordingNav) Navigate(dest Destination, _ ...Option) { n.calls = append(n.calls, dest) }
func (n *recordingNav) Back() bool                             { return false }
func (n *recordingNav) Current() Destination                   { return "" }

func TestRouteFirstMatchWins(t *testing.T) {
	t.Parallel()

	var invoked []string
	h1 := Match("H1", matches("B", "C"), func(Navigator, Intent) { invoked = append(invoked, "H1") })
	h2 := Match("H2", matches("A", "C"), func(Navigator, Intent) { invoked = append(invoked, "H2") })
	r := NewRegistry(zaptest.NewLogger(t), h1, h2)

	name, ok := r.Route(&recordingNav{}, kindIntent{k: "C"})
	require.True(t, ok)
	require.Equal(t, "H1", name)
	require.Equal(t, []string{"H1"}, invoked)

	invoked = nil
	name, ok = r.Route(&recordingNav{}, kindIntent{k: "A"})
	require.True(t, ok)
	require.Equal(t, "H2", name)
	require.Equal(t, []string{"H2"}, invoked)
}

func TestRouteUnmatchedIsSilent(t *testing.T) {
	t.Parallel()

	invoked := 0
	r := NewRegistry(nil,
		Match("H1", matches("B"), func(Navigator, Intent) { invoked++ }),
		Match("H2", matches("A"), func(Navigator, Intent) { invoked++ }),
	)

	name, ok := r.Route(&recordingNav{}, kindIntent{k: "Z"})
	require.False(t, ok)
	require.Empty(t, name)
	require.Zero(t, invoked)
}

func TestRouteIsDeterministic(t *testing.T) {
	t.Parallel()

	r := NewRegistry(nil,
		Match("H1", matches("B", "C"), func(Navigator, Intent) {}),
		Match("H2", matches("A", "C"), func(Navigator, Intent) {}),
		Match("H3", matches("C"), func(Navigator, Intent) {}),
	)
	for i := 0; i < 100; i++ {
		name, _ := r.Route(&recordingNav{}, kindIntent{k: "C"})
		require.Equal(t, "H1", name)
	}
}

func TestOnMatchesByType(t *testing.T) {
	t.Parallel()

	nav := &recordingNav{}
	r := NewRegistry(nil,
		On("other", func(n Navigator, _ otherIntent) { n.Navigate("other") }),
		On("kind", func(n Navigator, ev kindIntent) { n.Navigate(Destination(ev.k)) }),
	)

	_, ok := r.Route(nav, kindIntent{k: "menu"})
	require.True(t, ok)
	_, ok = r.Route(nav, otherIntent{})
	require.True(t, ok)
	require.Equal(t, []Destination{"menu", "other"}, nav.calls)
}

func TestAttachRoutesEachDeliveredEventOnce(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bus := eventbus.New[Intent]("navigation")
	routed := make(chan Destination, 4)
	r := NewRegistry(zaptest.NewLogger(t),
		On("kind", func(_ Navigator, ev kindIntent) { routed <- Destination(ev.k) }),
	)

	require.NoError(t, r.Attach(ctx, bus, &recordingNav{}))
	require.ErrorIs(t, r.Attach(ctx, bus, &recordingNav{}), ErrAlreadyAttached)
	require.Equal(t, 1, bus.Subscribers())

	bus.Post(kindIntent{k: "a"})
	bus.Post(otherIntent{})
	bus.Post(kindIntent{k: "b"})

	for _, want := range []Destination{"a", "b"} {
		select {
		case got := <-routed:
			require.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatal("intent not routed")
		}
	}
	select {
	case extra := <-routed:
		t.Fatalf("unexpected extra route %q", extra)
	case <-time.After(50 * time.Millisecond):
	}
}
