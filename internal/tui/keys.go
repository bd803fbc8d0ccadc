package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/healthkathon/jkb/internal/app"
	"github.com/healthkathon/jkb/internal/features/chatbot"
	"github.com/healthkathon/jkb/internal/features/frauddetection"
	"github.com/healthkathon/jkb/internal/features/menu"
	"github.com/healthkathon/jkb/internal/features/onboarding"
	"github.com/healthkathon/jkb/internal/service"
)

var actorTypes = []service.ActorType{service.ActorDoctor, service.ActorHospital}

// New-claim form fields, top to bottom.
const (
	fieldHospital = iota
	fieldDoctor
	fieldDiagnosis
	fieldCost
	newClaimFields
)

// Actor form fields.
const (
	fieldActorType = iota
	fieldActor
	actorFields
)

func (m *Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(k, scopeOf(m.dest))
	switch action {
	case actQuit:
		return m, tea.Quit
	case actBack:
		now := m.now()
		if n, ok := m.host.Current(now); ok && n.WithDismissAction() {
			m.host.Dismiss(now)
			return m, nil
		}
		// The change arrives on the bus and moves the model.
		m.app.Nav.Back()
		return m, nil
	}

	switch m.dest {
	case app.Onboarding:
		m.onboardingKey(k, action)
	case app.Menu:
		m.menuKey(action)
	case app.FraudDetection:
		return m.fraudKey(k, action)
	case app.Chatbot:
		return m.chatKey(k, action)
	}
	return m, nil
}

func (m *Model) onboardingKey(k tea.KeyMsg, action string) {
	switch action {
	case actNext:
		m.dispatch(onboarding.NextPage{})
	case actPrev:
		m.dispatch(onboarding.PreviousPage{})
	case actSkip:
		m.dispatch(onboarding.Skip{})
	default:
		if n, err := strconv.Atoi(k.String()); err == nil && n > 0 {
			m.dispatch(onboarding.GoToPage{Page: n - 1})
		}
	}
}

func (m *Model) menuKey(action string) {
	c, ok := m.screen.(*menu.Container)
	if !ok {
		return
	}
	items := c.State().Items
	switch action {
	case actUp:
		m.cursor = cycle(m.cursor, -1, len(items))
	case actDown:
		m.cursor = cycle(m.cursor, 1, len(items))
	case actOpen:
		if m.cursor < len(items) {
			m.dispatch(menu.NavigateToFeature{Item: items[m.cursor]})
		}
	case actProfile:
		m.dispatch(menu.NavigateToProfile{})
	}
}

func (m *Model) chatKey(k tea.KeyMsg, action string) (tea.Model, tea.Cmd) {
	switch action {
	case actSend:
		m.dispatch(chatbot.SendMessage{Text: m.input.Value()})
		m.input.Reset()
		return m, nil
	case actClear:
		m.dispatch(chatbot.ClearChat{})
		return m, nil
	}
	return m.typeInto(k)
}

func (m *Model) fraudKey(k tea.KeyMsg, action string) (tea.Model, tea.Cmd) {
	c, ok := m.screen.(*frauddetection.Container)
	if !ok {
		return m, nil
	}
	st := c.State()
	switch action {
	case actNextTab, actPrevTab:
		delta := 1
		if action == actPrevTab {
			delta = -1
		}
		m.switchTab(frauddetection.Tabs[cycle(int(st.CurrentTab), delta, len(frauddetection.Tabs))])
		return m, nil
	case actLike, actDislike:
		if st.Result != "" && !st.FeedbackGiven && !st.IsLoading {
			m.dispatch(frauddetection.SubmitFeedback{IsLike: action == actLike})
		}
		return m, nil
	}

	switch st.CurrentTab {
	case frauddetection.TabClaimID:
		return m.claimIDKey(k, action, st)
	case frauddetection.TabNewClaim:
		return m.newClaimKey(k, action, st)
	default:
		m.actorKey(action, st)
		return m, nil
	}
}

func (m *Model) switchTab(tab frauddetection.Tab) {
	m.dispatch(frauddetection.NavigateToTab{Tab: tab})
	m.cursor, m.form = 0, form{}
	m.input.Reset()
	switch tab {
	case frauddetection.TabClaimID:
		m.input.Placeholder = "CLM001"
		m.input.Focus()
	default:
		m.input.Placeholder = "Rp"
		m.input.Blur()
	}
}

func (m *Model) claimIDKey(k tea.KeyMsg, action string, st frauddetection.State) (tea.Model, tea.Cmd) {
	switch action {
	case actUp:
		m.cursor = cycle(m.cursor, -1, len(st.FilteredClaims))
		return m, nil
	case actDown:
		m.cursor = cycle(m.cursor, 1, len(st.FilteredClaims))
		return m, nil
	case actSubmit:
		if st.IsLoading {
			return m, nil
		}
		if m.cursor < len(st.FilteredClaims) {
			m.dispatch(frauddetection.SelectClaim{ClaimID: st.FilteredClaims[m.cursor].ClaimID})
			m.dispatch(frauddetection.SubmitSelectedClaim{})
		} else if v := m.input.Value(); v != "" {
			m.dispatch(frauddetection.SubmitClaimID{ClaimID: v})
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	if v := m.input.Value(); v != before {
		m.cursor = 0
		m.dispatch(frauddetection.SearchClaims{Query: v})
	}
	return m, cmd
}

func (m *Model) newClaimKey(k tea.KeyMsg, action string, st frauddetection.State) (tea.Model, tea.Cmd) {
	f := &m.form
	switch action {
	case actUp:
		f.field = cycle(f.field, -1, newClaimFields)
	case actDown:
		f.field = cycle(f.field, 1, newClaimFields)
	case actChoosePrev, actChooseNext:
		delta := 1
		if action == actChoosePrev {
			delta = -1
		}
		switch f.field {
		case fieldHospital:
			f.hospital = cycle(f.hospital, delta, len(st.Hospitals))
		case fieldDoctor:
			f.doctor = cycle(f.doctor, delta, len(st.Doctors))
		case fieldDiagnosis:
			f.diagnosis = cycle(f.diagnosis, delta, len(st.Diagnoses))
		default:
			return m.typeInto(k)
		}
	case actSubmit:
		if st.IsLoading {
			return m, nil
		}
		req := frauddetection.SubmitNewClaim{TotalCost: m.input.Value()}
		if f.hospital < len(st.Hospitals) {
			req.HospitalID = service.Deref(st.Hospitals[f.hospital].HospitalID)
		}
		if f.doctor < len(st.Doctors) {
			req.DoctorID = service.Deref(st.Doctors[f.doctor].DoctorID)
		}
		if f.diagnosis < len(st.Diagnoses) {
			d := st.Diagnoses[f.diagnosis]
			req.DiagnosisID = d.DiagnosisID
			req.DiagnosisText = d.Name
		}
		m.dispatch(req)
	default:
		if f.field == fieldCost {
			return m.typeInto(k)
		}
	}
	if f.field == fieldCost {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m, nil
}

func (m *Model) actorKey(action string, st frauddetection.State) {
	f := &m.form
	switch action {
	case actUp:
		f.field = cycle(f.field, -1, actorFields)
	case actDown:
		f.field = cycle(f.field, 1, actorFields)
	case actChoosePrev, actChooseNext:
		delta := 1
		if action == actChoosePrev {
			delta = -1
		}
		if f.field == fieldActorType {
			f.actorType = cycle(f.actorType, delta, len(actorTypes))
			f.actor = 0
		} else {
			f.actor = cycle(f.actor, delta, len(actorOptions(st, actorTypes[f.actorType])))
		}
	case actSubmit:
		opts := actorOptions(st, actorTypes[f.actorType])
		if st.IsLoading || f.actor >= len(opts) {
			return
		}
		m.dispatch(frauddetection.SubmitActorAnalysis{ActorType: actorTypes[f.actorType], ActorID: opts[f.actor].id})
	}
}

func (m *Model) typeInto(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return m, cmd
}

type option struct {
	id, label string
}

// actorOptions lists the doctors or hospitals that can be analysed.
func actorOptions(st frauddetection.State, t service.ActorType) []option {
	var out []option
	if t == service.ActorHospital {
		for _, h := range st.Hospitals {
			out = append(out, option{id: service.Deref(h.HospitalID), label: service.Deref(h.Name)})
		}
		return out
	}
	for _, d := range st.Doctors {
		out = append(out, option{id: service.Deref(d.DoctorID), label: service.Deref(d.Name)})
	}
	return out
}

// cycle moves i by delta within [0, n), wrapping at both ends.
func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
