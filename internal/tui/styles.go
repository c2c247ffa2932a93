package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorHeader  = lipgloss.Color("#FF6B6B")
	colorAccent  = lipgloss.Color("#5B8DEF")
	colorBorder  = lipgloss.Color("#444444")
	colorMuted   = lipgloss.Color("#888888")
	colorSubtle  = lipgloss.Color("#AAAAAA")
	colorSuccess = lipgloss.Color("#22C55E")
	colorWarn    = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorGuide   = lipgloss.Color("#E5E7EB")
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorHeader)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	subtleStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle     = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	guideStyle    = lipgloss.NewStyle().Foreground(colorGuide)
	borderStyle   = lipgloss.NewStyle().Foreground(colorBorder)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	buttonStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	disabledStyle = lipgloss.NewStyle().Foreground(colorBorder)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)
