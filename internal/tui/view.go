package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/healthkathon/jkb/internal/features/chatbot"
	"github.com/healthkathon/jkb/internal/features/frauddetection"
	"github.com/healthkathon/jkb/internal/features/menu"
	"github.com/healthkathon/jkb/internal/features/onboarding"
	"github.com/healthkathon/jkb/internal/features/splash"
	"github.com/healthkathon/jkb/internal/service"
)

const chatHistory = 12

func (m *Model) View() string {
	var body string
	switch c := m.screen.(type) {
	case *splash.Container:
		body = m.renderSplash(c.State())
	case *onboarding.Container:
		body = renderOnboarding(c.State())
	case *menu.Container:
		body = m.renderMenu(c.State())
	case *frauddetection.Container:
		body = m.renderFraud(c.State())
	case *chatbot.Container:
		body = m.renderChat(c.State())
	default:
		body = mutedStyle.Render("...")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n\n")
	b.WriteString(body)
	if m.status != "" {
		b.WriteString("\n\n" + errorStyle.Render(m.status))
	}
	if n, ok := m.host.Current(m.now()); ok {
		text := n.Message()
		if l := n.ActionLabel(); l != "" {
			text += "  [" + l + "]"
		}
		if n.WithDismissAction() {
			text += "  esc ✕"
		}
		b.WriteString("\n\n" + noticeStyle.Render(text))
	}
	b.WriteString("\n\n" + m.renderFooter())
	return b.String()
}

func (m *Model) renderSplash(st splash.State) string {
	if st.IsLoading || st.Title == "" {
		return m.spin.View() + " " + m.catalog.T("app_title")
	}
	return titleStyle.Render(st.Title) + "\n" + mutedStyle.Render(st.Version) + errorLine(st.Error)
}

// errorLine renders a screen's error below its content, or nothing.
func errorLine(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n\n" + errorStyle.Render(msg)
}

func renderOnboarding(st onboarding.State) string {
	if len(st.Pages) == 0 {
		return ""
	}
	p := st.Pages[st.CurrentPage]
	dots := make([]string, len(st.Pages))
	for i := range st.Pages {
		dots[i] = mutedStyle.Render("○")
		if i == st.CurrentPage {
			dots[i] = accentStyle.Render("●")
		}
	}
	next := "→"
	if st.IsLast() {
		next = "✓"
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s  %s", titleStyle.Render(p.Title), p.Description, strings.Join(dots, " "), next) + errorLine(st.Error)
}

func (m *Model) renderMenu(st menu.State) string {
	var b strings.Builder
	b.WriteString("Halo, " + st.UserName + "\n\n")
	for i, it := range st.Items {
		style := cardStyle.BorderForeground(lipgloss.Color(it.Colors[1]))
		if i == m.cursor {
			style = style.BorderForeground(lipgloss.Color(it.Colors[0])).Bold(true)
		}
		b.WriteString(style.Render(it.Emoji+" "+it.Title+"\n"+mutedStyle.Render(it.Description)) + "\n")
	}
	b.WriteString(errorLine(st.Error))
	return b.String()
}

func (m *Model) renderFraud(st frauddetection.State) string {
	var b strings.Builder
	tabs := make([]string, 0, len(frauddetection.Tabs))
	for _, t := range frauddetection.Tabs {
		label := t.Icon() + " " + m.catalog.T(t.MessageID())
		if t == st.CurrentTab {
			tabs = append(tabs, selectedStyle.Inherit(tabStyle).Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	if st.IsLoadingData {
		b.WriteString(m.spin.View() + "\n")
	}
	if st.DataError != "" {
		b.WriteString(errorStyle.Render(st.DataError) + "\n")
	}

	switch st.CurrentTab {
	case frauddetection.TabClaimID:
		b.WriteString(m.input.View() + "\n")
		for i, c := range st.FilteredClaims {
			line := fmt.Sprintf("%s  %s  %s  %s", c.ClaimID, c.Diagnosis, service.FormatRupiah(int(c.TotalCost)), claimLabel(c.Label))
			if i == m.cursor {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	case frauddetection.TabNewClaim:
		b.WriteString(m.field(fieldHospital, "Rumah sakit", pick(st.HospitalNames(), m.form.hospital)))
		b.WriteString(m.field(fieldDoctor, "Dokter", pick(st.DoctorNames(), m.form.doctor)))
		b.WriteString(m.field(fieldDiagnosis, "Diagnosis", pick(st.DiagnosesDisplay(), m.form.diagnosis)))
		b.WriteString(m.field(fieldCost, "Total biaya", m.input.View()))
	case frauddetection.TabActor:
		t := actorTypes[m.form.actorType]
		var labels []string
		for _, o := range actorOptions(st, t) {
			labels = append(labels, o.label)
		}
		b.WriteString(m.field(fieldActorType, "Tipe", string(t)))
		b.WriteString(m.field(fieldActor, "Aktor", pick(labels, m.form.actor)))
	}

	if st.IsLoading {
		b.WriteString("\n" + m.spin.View())
	}
	if st.Result != "" {
		b.WriteString("\n" + cardStyle.Render(st.Result))
		if !st.FeedbackGiven && !st.IsLoading {
			b.WriteString("\n" + mutedStyle.Render("👍 ctrl+y  👎 ctrl+n"))
		}
	} else {
		b.WriteString(errorLine(st.Error))
	}
	return b.String()
}

func claimLabel(l string) string {
	if strings.EqualFold(l, "FRAUD") {
		return fraudStyle.Render(l)
	}
	return normalStyle.Render(l)
}

func (m *Model) field(idx int, label, value string) string {
	line := fmt.Sprintf("%-12s %s", label, value)
	if m.form.field == idx {
		return accentStyle.Render("› ") + line + "\n"
	}
	return "  " + line + "\n"
}

func (m *Model) renderChat(st chatbot.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.catalog.T("menu_chatbot_title")) + "\n\n")
	msgs := st.Messages
	if len(msgs) > chatHistory {
		msgs = msgs[len(msgs)-chatHistory:]
	}
	for _, msg := range msgs {
		who := botStyle.Render("AI")
		if msg.IsUser {
			who = userStyle.Render("Anda")
		}
		fmt.Fprintf(&b, "%s %s\n%s\n\n", who, mutedStyle.Render(msg.Timestamp), msg.Content)
	}
	if st.IsTyping {
		b.WriteString(m.spin.View() + "\n")
	}
	b.WriteString(m.input.View())
	b.WriteString(errorLine(st.Error))
	return b.String()
}

func pick(items []string, i int) string {
	if i < 0 || i >= len(items) {
		return mutedStyle.Render("-")
	}
	return "‹ " + items[i] + " ›"
}
