package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/healthkathon/jkb/internal/app"
	"github.com/healthkathon/jkb/internal/features/chatbot"
	"github.com/healthkathon/jkb/internal/features/frauddetection"
	"github.com/healthkathon/jkb/internal/features/onboarding"
	"github.com/healthkathon/jkb/internal/i18n"
	"github.com/healthkathon/jkb/internal/navigation"
	"github.com/healthkathon/jkb/internal/service"
)

func newModel(t *testing.T) (*Model, *app.App) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	catalog := i18n.MustNew("id")
	log := zaptest.NewLogger(t)
	a := app.New(app.Deps{
		API: service.Collaborators{
			Core:    service.MockCore{},
			Fraud:   service.MockFraudDetection{},
			Chatbot: service.MockChatbot{},
		},
		Catalog: catalog,
		Log:     log,
	})
	m := New(ctx, a, catalog, log)
	require.NoError(t, a.Start())
	t.Cleanup(func() {
		cancel()
		a.Close()
	})
	m.Init()
	return m, a
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

// reach waits for the back stack to show dest and lets the model follow it.
func reach(t *testing.T, m *Model, a *app.App, dest navigation.Destination) {
	t.Helper()
	require.Eventually(t, func() bool { return a.Nav.Current() == dest }, 3*time.Second, 5*time.Millisecond,
		"stack %v", a.Nav.Stack())
	m.Update(pollMsg(time.Now()))
	require.Equal(t, dest, m.dest)
}

func TestOnboardingKeys(t *testing.T) {
	t.Parallel()
	m, a := newModel(t)
	reach(t, m, a, app.Onboarding)

	c := m.screen.(*onboarding.Container)
	press(m, "right")
	require.Eventually(t, func() bool { return c.State().CurrentPage == 1 }, time.Second, 5*time.Millisecond)
	require.Contains(t, m.View(), "Chatbot AI Cerdas")

	press(m, "3")
	require.Eventually(t, func() bool { return c.State().IsLast() }, time.Second, 5*time.Millisecond)

	press(m, "s")
	reach(t, m, a, app.Menu)
	require.Contains(t, m.View(), "Halo, Admin")
}

func TestMenuToChatbotAndBack(t *testing.T) {
	t.Parallel()
	m, a := newModel(t)
	reach(t, m, a, app.Onboarding)
	press(m, "s")
	reach(t, m, a, app.Menu)

	press(m, "down", "enter")
	reach(t, m, a, app.Chatbot)

	press(m, "h", "a", "l", "o", "enter")
	c := m.screen.(*chatbot.Container)
	require.Eventually(t, func() bool {
		st := c.State()
		return len(st.Messages) == 2 && !st.IsTyping
	}, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, "halo", c.State().Messages[0].Content)
	require.Empty(t, m.input.Value())

	press(m, "esc")
	reach(t, m, a, app.Menu)
	require.Equal(t, []navigation.Destination{app.Menu}, a.Nav.Stack())
}

func TestFraudClaimCheckAndFeedback(t *testing.T) {
	t.Parallel()
	m, a := newModel(t)
	reach(t, m, a, app.Onboarding)
	press(m, "s")
	reach(t, m, a, app.Menu)
	press(m, "enter")
	reach(t, m, a, app.FraudDetection)

	c := m.screen.(*frauddetection.Container)
	require.Eventually(t, func() bool {
		st := c.State()
		return !st.IsLoadingData && len(st.FilteredClaims) == 10
	}, 2*time.Second, 5*time.Millisecond)

	press(m, "0", "0", "4")
	require.Eventually(t, func() bool { return len(c.State().FilteredClaims) == 1 }, time.Second, 5*time.Millisecond)
	press(m, "enter")
	require.Eventually(t, func() bool {
		st := c.State()
		return st.Result != "" && !st.IsLoading
	}, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, "CLM004", c.State().CurrentClaimID)

	press(m, "ctrl+y")
	select {
	case n := <-m.notices.Events():
		m.Update(noticeMsg{n: n})
	case <-time.After(2 * time.Second):
		t.Fatal("no feedback notice")
	}
	require.True(t, c.State().FeedbackGiven)
	require.Contains(t, m.View(), "Terima kasih atas masukan Anda")

	// The first esc closes the notice, the second leaves the screen.
	press(m, "esc")
	require.NotContains(t, m.View(), "Terima kasih atas masukan Anda")
	require.Equal(t, app.FraudDetection, a.Nav.Current())
	press(m, "esc")
	reach(t, m, a, app.Menu)
}

func TestFraudTabsCycle(t *testing.T) {
	t.Parallel()
	m, a := newModel(t)
	reach(t, m, a, app.Onboarding)
	press(m, "s")
	reach(t, m, a, app.Menu)
	press(m, "enter")
	reach(t, m, a, app.FraudDetection)

	c := m.screen.(*frauddetection.Container)
	press(m, "tab")
	require.Eventually(t, func() bool { return c.State().CurrentTab == frauddetection.TabNewClaim }, time.Second, 5*time.Millisecond)
	press(m, "tab")
	require.Eventually(t, func() bool { return c.State().CurrentTab == frauddetection.TabActor }, time.Second, 5*time.Millisecond)
	require.True(t, strings.Contains(m.View(), "DOCTOR"))
}

func TestCycle(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, cycle(0, 1, 3))
	require.Equal(t, 0, cycle(2, 1, 3))
	require.Equal(t, 2, cycle(0, -1, 3))
	require.Equal(t, 0, cycle(5, 1, 0))
}
