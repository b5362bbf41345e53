package task

import "time"

// Task represents a single task record.
type Task struct {
	// ID is a unique identifier (8-char alphanumeric, derived from initial
	// title + timestamp). Stable for the task's lifetime.
	ID string `json:"id"`

	// Title is the short summary of the task (max 255 chars).
	Title string `json:"title"`

	// Description provides additional context about the task. May be empty.
	Description string `json:"description"`

	// Status is the current state of the task.
	Status Status `json:"status"`

	// Priority is the importance level (1=low, 5=high).
	Priority int `json:"priority"`

	// EstimatedHours is the effort estimate used by completion-time
	// calculations. Always positive.
	EstimatedHours int `json:"estimated_hours"`

	// Version increases by exactly 1 on every successful mutation of the
	// record. Used for optimistic concurrency checks.
	Version int `json:"version"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
