package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorSlate = lipgloss.Color("#667085")

	ruleRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("yellow"))

	ruleDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	ruleCachedStyle = lipgloss.NewStyle().
			Foreground(colorSlate).
			Faint(true)

	ruleFailedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red
)
