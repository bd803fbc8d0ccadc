package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#1B1B1F"
	colorOnAccent lipgloss.Color = "#FFFFFF"
	colorMuted    lipgloss.Color = "#74777F"
	colorAccent   lipgloss.Color = "#1F4FAB"
	colorAccent2  lipgloss.Color = "#3E68C5"
	colorBot      lipgloss.Color = "#7E368A"
	colorSuccess  lipgloss.Color = "#2E7D32"
	colorError    lipgloss.Color = "#C62828"
	colorSurface  lipgloss.Color = "#E1E2EC"
	colorSnackbar lipgloss.Color = "#323232"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Foreground(colorOnAccent).Background(colorAccent).Bold(true).Padding(0, 1)
	accentStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	fraudStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOnAccent).Background(colorAccent)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle     = lipgloss.NewStyle().Foreground(colorAccent2).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(colorBot).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(colorOnAccent).Background(colorSnackbar).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Background(colorSurface).Foreground(colorText)
	keyStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
