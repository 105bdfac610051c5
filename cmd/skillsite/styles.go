package main

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleWarn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleOK     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleFail   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleHint   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// paint applies style when colors are enabled.
func paint(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
