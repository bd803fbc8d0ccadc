// Package tui renders the screen containers in the terminal and turns key
// presses into intents.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/healthkathon/jkb/internal/app"
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
)

const pollInterval = 100 * time.Millisecond

// Model is the bubbletea model for the whole app. It always shows the
// destination on top of the back stack.
type Model struct {
	ctx     context.Context
	app     *app.App
	catalog *i18n.Catalog
	log     *zap.Logger
	keys    *KeyRegistry
	now     func() time.Time

	changes *eventbus.Subscription[navigation.Change]
	notices *eventbus.Subscription[notify.Notification]
	host    *notify.Host

	dest      navigation.Destination
	screen    app.Screen
	redraw    chan struct{}
	stopWatch context.CancelFunc

	input  textinput.Model
	spin   spinner.Model
	cursor int
	form   form
	width  int
	status string
}

// form holds the selections of the fraud detection forms.
type form struct {
	field     int
	hospital  int
	doctor    int
	diagnosis int
	actorType int
	actor     int
}

type (
	changeMsg navigation.Change
	noticeMsg struct{ n notify.Notification }
	redrawMsg struct{}
	pollMsg   time.Time
)

// New subscribes to a's buses. Call it before a.Start so the first
// navigation is not missed.
func New(ctx context.Context, a *app.App, catalog *i18n.Catalog, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}
	in := textinput.New()
	in.CharLimit = 500
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = accentStyle

	return &Model{
		ctx:     ctx,
		app:     a,
		catalog: catalog,
		log:     log,
		keys:    NewKeyRegistry(DefaultKeyBindings()),
		now:     time.Now,
		changes: a.Changes.Subscribe(ctx),
		notices: a.Notifications.Subscribe(ctx),
		host:    notify.NewHost(),
		redraw:  make(chan struct{}, 1),
		input:   in,
		spin:    sp,
	}
}

func (m *Model) Init() tea.Cmd {
	m.follow(m.app.Nav.Current())
	return tea.Batch(m.spin.Tick, m.waitChange(), m.waitNotice(), m.waitRedraw(), poll())
}

func (m *Model) waitRedraw() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.redraw:
			return redrawMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) waitChange() tea.Cmd {
	return func() tea.Msg {
		ch, ok := <-m.changes.Events()
		if !ok {
			return nil
		}
		return changeMsg(ch)
	}
}

func (m *Model) waitNotice() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-m.notices.Events()
		if !ok {
			return nil
		}
		return noticeMsg{n: n}
	}
}

func poll() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-6)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case changeMsg:
		m.follow(msg.To)
		return m, m.waitChange()
	case noticeMsg:
		m.host.Show(msg.n, m.now())
		return m, m.waitNotice()
	case redrawMsg:
		// Returning re-renders the committed state.
		return m, m.waitRedraw()
	case pollMsg:
		// The stack can move without a change reaching us, e.g. after a
		// subscriber overflow. Polling also expires notices.
		if cur := m.app.Nav.Current(); cur != m.dest {
			m.follow(cur)
		}
		m.host.Current(m.now())
		return m, poll()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// follow switches the model to dest and resets the per-screen input.
func (m *Model) follow(dest navigation.Destination) {
	if dest == m.dest && m.screen != nil {
		return
	}
	screen, err := m.app.Screen(dest)
	if err != nil {
		m.log.Warn("open screen", zap.String("screen", string(dest)), zap.Error(err))
		m.status = err.Error()
		return
	}
	m.dest, m.screen = dest, screen
	m.watch(screen)
	m.cursor, m.form, m.status = 0, form{}, ""
	m.input.Reset()
	m.input.Blur()
	switch dest {
	case app.Chatbot:
		m.input.Placeholder = "Ketik pertanyaan..."
		m.input.Focus()
	case app.FraudDetection:
		m.input.Placeholder = "CLM001"
		m.input.Focus()
	}
	m.log.Debug("showing screen", zap.String("screen", string(dest)))
}

func (m *Model) dispatch(intent any) {
	if m.screen != nil {
		m.screen.Dispatch(intent)
	}
}

// watch signals a redraw after every commit of screen until the model moves on.
func (m *Model) watch(screen app.Screen) {
	if m.stopWatch != nil {
		m.stopWatch()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.stopWatch = cancel
	switch c := screen.(type) {
	case *splash.Container:
		go watchState(ctx, c, m.redraw)
	case *onboarding.Container:
		go watchState(ctx, c, m.redraw)
	case *menu.Container:
		go watchState(ctx, c, m.redraw)
	case *frauddetection.Container:
		go watchState(ctx, c, m.redraw)
	case *chatbot.Container:
		go watchState(ctx, c, m.redraw)
	}
}

func watchState[S, E any](ctx context.Context, c *mvi.Container[S, E], out chan<- struct{}) {
	for range c.Watch(ctx) {
		select {
		case out <- struct{}{}:
		default:
		}
	}
}
