package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) renderFooter() string {
	bindings := m.keys.BindingsForScope(scopeOf(m.dest))
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		kb := key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
		h := kb.Help()
		parts = append(parts, keyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	line := strings.Join(parts, "  ")
	if line == "" {
		line = helpDescStyle.Render("No shortcuts")
	}
	return renderBar(footerStyle, m.width, line)
}

func (m *Model) renderHeader() string {
	title := m.catalog.T("app_title")
	if m.dest != "" {
		title += " · " + string(m.dest)
	}
	return renderBar(headerStyle, m.width, title)
}

// renderBar draws text on a single line, truncated or padded to width.
// A zero width leaves the text as is.
func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	if width <= 0 {
		return style.Render(line)
	}
	inner := max(1, width-style.GetHorizontalFrameSize())
	line = ansi.Truncate(line, inner, "…")
	if w := ansi.StringWidth(line); w < inner {
		line += strings.Repeat(" ", inner-w)
	}
	return style.Render(line)
}
