package engine

import "github.com/ordino/ordino/task"

// ResolveStatus computes a task's status from its direct dependencies'
// statuses. It is pure; the caller persists the result (and bumps the
// version) only when it differs from the current status.
//
// Rules, in priority order:
//  1. completed is terminal: never changed here.
//  2. any blocked dependency blocks the task.
//  3. no dependencies, or all completed: promote pending/blocked to
//     in_progress. An already in_progress task is left alone.
//  4. otherwise (incomplete dependencies, none blocked): demote
//     in_progress back to pending; other statuses are left alone.
func ResolveStatus(current task.Status, dependencies []task.Status) task.Status {
	if current.IsTerminal() {
		return current
	}

	anyBlocked := false
	allCompleted := true
	for _, status := range dependencies {
		if status == task.StatusBlocked {
			anyBlocked = true
		}
		if status != task.StatusCompleted {
			allCompleted = false
		}
	}

	if anyBlocked {
		return task.StatusBlocked
	}

	if len(dependencies) == 0 || allCompleted {
		if current == task.StatusPending || current == task.StatusBlocked {
			return task.StatusInProgress
		}
		return current
	}

	if current == task.StatusInProgress {
		return task.StatusPending
	}
	return current
}

// CanStart reports whether a task with the given direct dependency statuses
// is eligible to start: it has no dependencies, or all are completed.
func CanStart(dependencies []task.Status) bool {
	for _, status := range dependencies {
		if status != task.StatusCompleted {
			return false
		}
	}
	return true
}

// IsBlocked reports whether any direct dependency is blocked. Only direct
// dependencies matter; blockage does not look through the graph.
func IsBlocked(dependencies []task.Status) bool {
	for _, status := range dependencies {
		if status == task.StatusBlocked {
			return true
		}
	}
	return false
}
