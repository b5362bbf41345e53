package main

import (
	"fmt"
	"strings"

	"github.com/ordino/ordino/internal/markdown"
	"github.com/ordino/ordino/task"
)

const taskDetailLineWidth = 80

// printTaskDetail prints detailed information about a task.
func printTaskDetail(record task.Task, highlight func(string) string) {
	fmt.Printf("ID:       %s\n", highlight(record.ID))
	fmt.Printf("Title:    %s\n", record.Title)
	fmt.Printf("Status:   %s\n", record.Status)
	fmt.Printf("Priority: %d\n", record.Priority)
	fmt.Printf("Hours:    %d\n", record.EstimatedHours)
	fmt.Printf("Version:  %d\n", record.Version)
	fmt.Printf("Created:  %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:  %s\n", record.UpdatedAt.Format("2006-01-02 15:04:05"))

	if record.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", formatTaskDescription(record.Description))
	}
}

func formatTaskDescription(value string) string {
	formatted := markdown.Render(taskDetailLineWidth, 2, value)
	if strings.TrimSpace(formatted) == "" {
		return "-"
	}
	return formatted
}
