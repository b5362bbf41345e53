package main

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ordino/ordino/task"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(value string) string {
	return ansiPattern.ReplaceAllString(value, "")
}

func TestFormatTaskTablePreservesAlignmentWithANSI(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		{
			ID:             "abc12345",
			Title:          "First item",
			Status:         task.StatusPending,
			Priority:       1,
			EstimatedHours: 4,
			Version:        1,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             "abd45678",
			Title:          "Second item",
			Status:         task.StatusInProgress,
			Priority:       2,
			EstimatedHours: 8,
			Version:        3,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}

	prefixLengths := taskIDPrefixLengths(tasks)
	plain := formatTaskTable(tasks, prefixLengths, func(id string, prefix int) string { return id }, now)
	ansi := formatTaskTable(tasks, prefixLengths, func(id string, prefix int) string {
		if prefix <= 0 || prefix > len(id) {
			return id
		}
		return "\x1b[1m\x1b[36m" + id[:prefix] + "\x1b[0m" + id[prefix:]
	}, now)

	if stripANSI(ansi) != stripANSI(plain) {
		t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, ansi)
	}
}

func TestFormatTaskTableColumns(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		{
			ID:             "abc12345",
			Title:          "Only row",
			Status:         task.StatusBlocked,
			Priority:       5,
			EstimatedHours: 12,
			Version:        2,
			CreatedAt:      now.Add(-2 * time.Hour),
			UpdatedAt:      now,
		},
	}

	output := stripANSI(formatTaskTable(tasks, nil, func(id string, prefix int) string { return id }, now))
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines:\n%s", len(lines), output)
	}

	for _, want := range []string{"abc12345", "P5", "blocked", "12h", "v2", "2h", "Only row"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row missing %q: %s", want, lines[1])
		}
	}
}
