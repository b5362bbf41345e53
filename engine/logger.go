package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ordino/ordino/internal/ui"
)

// Logger captures structured engine events.
type Logger interface {
	StatusChanged(StatusChange)
	CycleRejected(CycleLog)
}

// CycleLog captures a rejected dependency and the cycle it would have
// created.
type CycleLog struct {
	TaskID      string
	DependsOnID string
	Path        []string
}

type noopLogger struct{}

func (noopLogger) StatusChanged(StatusChange) {}
func (noopLogger) CycleRejected(CycleLog)     {}

// ConsoleLogger writes formatted engine events.
type ConsoleLogger struct {
	writer      io.Writer
	headerStyle lipgloss.Style
}

// NewConsoleLogger builds a styled logger for interactive output.
func NewConsoleLogger(writer io.Writer) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:      writer,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
	}
}

// StatusChanged logs a task status transition.
func (logger *ConsoleLogger) StatusChanged(change StatusChange) {
	if logger == nil {
		return
	}
	fmt.Fprintf(logger.writer, "%s %s: %s -> %s\n",
		logger.headerStyle.Render("status"),
		change.TaskID,
		ui.StyleStatus(string(change.From)),
		ui.StyleStatus(string(change.To)),
	)
}

// CycleRejected logs a dependency rejected for creating a cycle.
func (logger *ConsoleLogger) CycleRejected(entry CycleLog) {
	if logger == nil {
		return
	}
	fmt.Fprintf(logger.writer, "%s %s -> %s would create cycle: %s\n",
		logger.headerStyle.Render("rejected"),
		entry.TaskID,
		entry.DependsOnID,
		strings.Join(entry.Path, " -> "),
	)
}
