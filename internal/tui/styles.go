package tui

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   = ac("240", "245")
	colorAccent  = ac("25", "75")
	colorSuccess = ac("28", "78")
	colorError   = ac("160", "203")
	colorBorder  = ac("250", "240")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleLabel    = lipgloss.NewStyle().Bold(true)
	styleFocused  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleToastOK  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleToastErr = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	styleForm = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	styleDialog = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)
