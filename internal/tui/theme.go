package tui

import "github.com/charmbracelet/lipgloss"

// The browser must stay readable on both light and dark terminal
// backgrounds, so every color is an AdaptiveColor pair.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62")
	colorLitBg    lipgloss.TerminalColor = ac("#fff3b0", "#3a3000")
	colorSelected lipgloss.TerminalColor = ac("#e9e9e9", "#262626")

	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleLit      = lipgloss.NewStyle().Background(colorLitBg)
	styleFaded    = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
	styleSelected = lipgloss.NewStyle().Background(colorSelected)
	styleEvidence = lipgloss.NewStyle().Italic(true)
)
