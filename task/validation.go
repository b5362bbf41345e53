package task

import (
	"errors"
	"fmt"
	"strings"

	internalstrings "github.com/ordino/ordino/internal/strings"
	"github.com/ordino/ordino/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when priority is outside valid range.
	ErrInvalidPriority = errors.New("priority must be between 1 and 5")

	// ErrInvalidEstimatedHours is returned when the effort estimate is not positive.
	ErrInvalidEstimatedHours = errors.New("estimated hours must be positive")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrDependencyNotFound is returned when an edge with the given ID doesn't exist.
	ErrDependencyNotFound = errors.New("dependency not found")

	// ErrAmbiguousTaskIDPrefix is returned when an ID prefix matches multiple tasks.
	ErrAmbiguousTaskIDPrefix = errors.New("ambiguous task ID prefix")

	// ErrSelfDependency is returned when trying to create a dependency on itself.
	ErrSelfDependency = errors.New("task cannot depend on itself")

	// ErrDuplicateDependency is returned when the dependency already exists.
	ErrDuplicateDependency = errors.New("dependency already exists")

	// ErrCycle is the target for errors.Is checks against *CycleError.
	ErrCycle = errors.New("dependency would create a cycle")

	// ErrVersionConflict is the target for errors.Is checks against
	// *VersionConflictError.
	ErrVersionConflict = errors.New("task was modified concurrently")
)

// CycleError reports a rejected edge insertion that would have created a
// cycle. Path is the offending cycle in traversal order, first and last
// element identical.
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(e.Path, " -> "))
}

// Is reports whether target is ErrCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// VersionConflictError reports an optimistic concurrency check failure.
type VersionConflictError struct {
	TaskID   string
	Current  int
	Expected int
}

// Error implements the error interface.
func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: task %s is at version %d, expected %d",
		ErrVersionConflict, e.TaskID, e.Current, e.Expected)
}

// Is reports whether target is ErrVersionConflict.
func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if internalstrings.NormalizeWhitespace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidatePriority checks if the priority is valid.
func ValidatePriority(priority int) error {
	if priority < PriorityMin || priority > PriorityMax {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, priority)
	}
	return nil
}

// ValidateEstimatedHours checks if the effort estimate is valid.
func ValidateEstimatedHours(hours int) error {
	if hours <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidEstimatedHours, hours)
	}
	return nil
}

// ValidateTask checks if a task struct is valid.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}

	if err := ValidateEstimatedHours(t.EstimatedHours); err != nil {
		return err
	}

	if t.Version < InitialVersion {
		return fmt.Errorf("task version must be at least %d, got %d", InitialVersion, t.Version)
	}

	return nil
}

// ValidateDependency checks if a dependency edge is valid.
func ValidateDependency(d *Dependency) error {
	if d.TaskID == "" {
		return fmt.Errorf("task_id cannot be empty")
	}
	if d.DependsOnID == "" {
		return fmt.Errorf("depends_on_id cannot be empty")
	}
	if d.TaskID == d.DependsOnID {
		return ErrSelfDependency
	}
	return nil
}

// ParseStatus normalizes and validates a status string from user input.
func ParseStatus(value string) (Status, error) {
	normalized := Status(strings.ReplaceAll(internalstrings.NormalizeLower(strings.TrimSpace(value)), "-", "_"))
	if !normalized.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
	}
	return normalized, nil
}
