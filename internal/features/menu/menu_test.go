package menu

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
)

type fakeNames struct {
	name string
	err  error
}

func (f fakeNames) GetString(_ context.Context, _ string, def string) (string, error) {
	if f.err != nil {
		return def, f.err
	}
	if f.name == "" {
		return def, nil
	}
	return f.name, nil
}

func newMenu(t *testing.T, names Names, nav *eventbus.Bus[navigation.Intent]) *Container {
	t.Helper()
	c := New(Deps{Names: names, Catalog: i18n.MustNew("en"), Log: zaptest.NewLogger(t)}, mvi.Buses{Navigation: nav})
	t.Cleanup(func() {
		c.Close()
		<-c.Done()
	})
	c.Initialize()
	return c
}

func TestUserNameFromSettings(t *testing.T) {
	t.Parallel()

	c := newMenu(t, fakeNames{name: "Sari"}, nil)
	require.Eventually(t, func() bool { return c.State().UserName == "Sari" }, 2*time.Second, time.Millisecond)

	items := c.State().Items
	require.Len(t, items, 2)
	require.Equal(t, FeatureFraudDetection, items[0].ID)
	require.Equal(t, "AI Chatbot", items[1].Title)
}

func TestUserNameDefaults(t *testing.T) {
	t.Parallel()

	c := newMenu(t, nil, nil)
	require.Equal(t, DefaultUserName, c.State().UserName)
	require.Empty(t, c.State().Error)
}

func TestUserNameFailureCommitsError(t *testing.T) {
	t.Parallel()

	c := newMenu(t, fakeNames{err: errors.New("locked")}, nil)
	require.Eventually(t, func() bool { return c.Version() >= 1 }, 2*time.Second, time.Millisecond)

	st := c.State()
	require.Equal(t, "Could not read the user name: read user name: locked", st.Error)
	require.Equal(t, DefaultUserName, st.UserName)
}

func TestNavigationIntentsAreForwarded(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	nav := eventbus.New[navigation.Intent]("navigation")
	sub := nav.Subscribe(ctx)

	c := newMenu(t, fakeNames{}, nav)
	item := c.State().Items[1]
	c.Dispatch(NavigateToFeature{Item: item})
	c.Dispatch(NavigateToProfile{})

	var got []navigation.Intent
	for len(got) < 2 {
		select {
		case ev := <-sub.Events():
			got = append(got, ev)
		case <-time.After(2 * time.Second):
			t.Fatal("navigation intents not forwarded")
		}
	}
	require.Equal(t, []navigation.Intent{NavigateToFeature{Item: item}, NavigateToProfile{}}, got)
}
