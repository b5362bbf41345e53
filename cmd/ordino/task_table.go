package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ordino/ordino/internal/ui"
	"github.com/ordino/ordino/task"
)

// printTaskTable prints tasks in a table format.
func printTaskTable(tasks []task.Task, prefixLengths map[string]int, now time.Time) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	fmt.Print(formatTaskTable(tasks, prefixLengths, ui.HighlightID, now))
}

func formatTaskTable(tasks []task.Task, prefixLengths map[string]int, highlight func(string, int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "PRI", "STATUS", "HOURS", "VER", "AGE", "TITLE"}, len(tasks))

	if prefixLengths == nil {
		prefixLengths = taskIDPrefixLengths(tasks)
	}

	for _, record := range tasks {
		prefixLen := prefixLengths[strings.ToLower(record.ID)]
		row := []string{
			highlight(record.ID, prefixLen),
			priorityShort(record.Priority),
			ui.StyleStatus(string(record.Status)),
			strconv.Itoa(record.EstimatedHours) + "h",
			"v" + strconv.Itoa(record.Version),
			ui.FormatTimeAgo(record.CreatedAt, now),
			ui.TruncateTableCell(record.Title),
		}
		builder.AddRow(row)
	}

	return builder.String()
}

// priorityShort returns a short representation of priority.
func priorityShort(priority int) string {
	return "P" + strconv.Itoa(priority)
}
