// Package taskstore provides task.Store implementations: a JSONL file
// store and an in-memory store. Both share the same record semantics:
// defaults applied on create, optimistic version checks on update, and
// cascading edge removal on task deletion.
package taskstore

import (
	"fmt"
	"time"

	"github.com/ordino/ordino/task"
)

// applyCreateDefaults fills zero-valued fields on a new task record.
func applyCreateDefaults(t *task.Task, now time.Time) {
	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if t.Priority == 0 {
		t.Priority = task.DefaultPriority
	}
	if t.EstimatedHours == 0 {
		t.EstimatedHours = task.DefaultEstimatedHours
	}
	t.Version = task.InitialVersion
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
}

// createTask validates and appends a new record.
func createTask(tasks []task.Task, t *task.Task, now time.Time) ([]task.Task, error) {
	if t.ID == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}
	applyCreateDefaults(t, now)
	if err := task.ValidateTask(t); err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == t.ID {
			return nil, fmt.Errorf("task %s already exists", t.ID)
		}
	}
	return append(tasks, *t), nil
}

// updateTask applies an optimistic-concurrency-checked update in place.
// The stored version must equal expectedVersion; on success the version
// is incremented by exactly 1 as part of the same write.
func updateTask(tasks []task.Task, t *task.Task, expectedVersion int, now time.Time) ([]task.Task, *task.Task, error) {
	for i := range tasks {
		if tasks[i].ID != t.ID {
			continue
		}
		if tasks[i].Version != expectedVersion {
			return nil, nil, &task.VersionConflictError{
				TaskID:   t.ID,
				Current:  tasks[i].Version,
				Expected: expectedVersion,
			}
		}

		updated := *t
		updated.Version = expectedVersion + 1
		updated.CreatedAt = tasks[i].CreatedAt
		updated.UpdatedAt = now
		if err := task.ValidateTask(&updated); err != nil {
			return nil, nil, err
		}

		tasks[i] = updated
		return tasks, &updated, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, t.ID)
}

// deleteTask removes a record and every edge touching it. It returns the
// IDs of tasks that depended on the deleted task.
func deleteTask(tasks []task.Task, edges []task.Dependency, id string) ([]task.Task, []task.Dependency, []string, error) {
	found := false
	remaining := tasks[:0:0]
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, t)
	}
	if !found {
		return nil, nil, nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
	}

	var dependents []string
	keptEdges := edges[:0:0]
	for _, e := range edges {
		if e.DependsOnID == id {
			dependents = append(dependents, e.TaskID)
			continue
		}
		if e.TaskID == id {
			continue
		}
		keptEdges = append(keptEdges, e)
	}

	return remaining, keptEdges, dependents, nil
}

// createEdge validates and appends a new dependency edge.
func createEdge(tasks []task.Task, edges []task.Dependency, d *task.Dependency, now time.Time) ([]task.Dependency, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("edge ID cannot be empty")
	}
	if err := task.ValidateDependency(d); err != nil {
		return nil, err
	}
	if err := requireTask(tasks, d.TaskID); err != nil {
		return nil, err
	}
	if err := requireTask(tasks, d.DependsOnID); err != nil {
		return nil, err
	}
	for _, e := range edges {
		if e.TaskID == d.TaskID && e.DependsOnID == d.DependsOnID {
			return nil, task.ErrDuplicateDependency
		}
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	return append(edges, *d), nil
}

// deleteEdge removes the edge with the given ID.
func deleteEdge(edges []task.Dependency, id string) ([]task.Dependency, error) {
	for i := range edges {
		if edges[i].ID == id {
			return append(edges[:i:i], edges[i+1:]...), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", task.ErrDependencyNotFound, id)
}

func requireTask(tasks []task.Task, id string) error {
	for i := range tasks {
		if tasks[i].ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
}

func findTask(tasks []task.Task, id string) (*task.Task, error) {
	for i := range tasks {
		if tasks[i].ID == id {
			found := tasks[i]
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, id)
}

func findEdge(edges []task.Dependency, id string) (*task.Dependency, error) {
	for i := range edges {
		if edges[i].ID == id {
			found := edges[i]
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", task.ErrDependencyNotFound, id)
}

func edgesBySource(edges []task.Dependency, taskID string) []task.Dependency {
	var matched []task.Dependency
	for _, e := range edges {
		if e.TaskID == taskID {
			matched = append(matched, e)
		}
	}
	return matched
}

func edgesByTarget(edges []task.Dependency, taskID string) []task.Dependency {
	var matched []task.Dependency
	for _, e := range edges {
		if e.DependsOnID == taskID {
			matched = append(matched, e)
		}
	}
	return matched
}
