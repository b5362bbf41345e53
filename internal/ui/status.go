package ui

import "github.com/charmbracelet/lipgloss"

var (
	statusPendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusInProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	statusCompletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusBlockedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// StyleStatus colors a status label for terminal output. The input is
// returned unchanged when ANSI output is disabled.
func StyleStatus(status string) string {
	if !ansiEnabled() {
		return status
	}

	switch status {
	case "pending":
		return statusPendingStyle.Render(status)
	case "in_progress":
		return statusInProgressStyle.Render(status)
	case "completed":
		return statusCompletedStyle.Render(status)
	case "blocked":
		return statusBlockedStyle.Render(status)
	default:
		return status
	}
}
