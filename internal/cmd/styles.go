package cmd

import "github.com/charmbracelet/lipgloss"

// Styles for CLI output. Kept muted: this output shows up in scripts and
// logs, not a full-screen UI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	sessionIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")) // cyan

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")) // red

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // gray

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")) // yellow
)
