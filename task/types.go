// Package task defines the task tracker's data model: tasks, the directed
// dependency edges between them, and the store contract the dependency
// graph engine consumes.
//
// A dependency edge records that one task (the dependent) cannot proceed
// until another task (the prerequisite) is completed. The edge set must
// stay acyclic; enforcing that is the engine's job, but the types and
// validation rules live here so every store implementation shares them.
package task

// Status represents the state of a task.
type Status string

const (
	// StatusPending indicates the task is waiting on prerequisites or has
	// not been started.
	StatusPending Status = "pending"

	// StatusInProgress indicates the task is ready to work on or being
	// worked on.
	StatusInProgress Status = "in_progress"

	// StatusCompleted indicates the task is finished. Completed is
	// terminal for automatic status resolution.
	StatusCompleted Status = "completed"

	// StatusBlocked indicates a direct prerequisite of the task is blocked.
	StatusBlocked Status = "blocked"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsTerminal returns true when automatic resolution must never change the
// status again.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// Priority bounds and default. Priority runs from 1 (low) to 5 (high).
const (
	PriorityMin     = 1
	PriorityMax     = 5
	DefaultPriority = 3
)

// DefaultEstimatedHours is the effort estimate assigned when none is given.
const DefaultEstimatedHours = 8

// InitialVersion is the version assigned to a newly created task record.
// Every successful mutation increments the version by exactly 1.
const InitialVersion = 1

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 255
