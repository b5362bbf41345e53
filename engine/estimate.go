package engine

import (
	"fmt"

	"github.com/ordino/ordino/task"
)

// CompletionEstimate reports the outstanding effort between now and a
// task's completion.
type CompletionEstimate struct {
	// TaskID is the task the estimate was computed for.
	TaskID string `json:"task_id"`

	// TotalHours is the length of the longest chain of not-yet-completed
	// work ending at the task, including the task's own estimate.
	TotalHours int `json:"total_hours"`

	// CriticalPath lists the task IDs along that longest chain, deepest
	// prerequisite first, ending with the task itself.
	CriticalPath []string `json:"critical_path"`

	// CanStartImmediately reports whether every direct dependency is
	// already completed.
	CanStartImmediately bool `json:"can_start_immediately"`
}

type chainResult struct {
	hours int
	path  []string
}

// estimateChain computes the longest incomplete prerequisite chain ending
// at rootID. Completed tasks contribute nothing and are not descended
// into. The traversal runs on an explicit stack with per-call memoization;
// if the stored graph is erroneously cyclic, a back edge contributes
// (0, nil) instead of recursing forever.
func (e *Engine) estimateChain(rootID string) (chainResult, error) {
	type frame struct {
		id     string
		effort int
		deps   []task.Dependency
		next   int
		best   chainResult
	}

	memo := make(map[string]chainResult)
	onStack := make(map[string]bool)
	var stack []frame

	push := func(id string) error {
		record, err := e.store.GetTask(id)
		if err != nil {
			return err
		}
		deps, err := e.store.Dependencies(id)
		if err != nil {
			return err
		}
		stack = append(stack, frame{id: id, effort: record.EstimatedHours, deps: deps})
		onStack[id] = true
		return nil
	}

	if err := push(rootID); err != nil {
		return chainResult{}, err
	}

	var final chainResult
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.deps) {
			childID := top.deps[top.next].DependsOnID
			top.next++

			if onStack[childID] {
				// Defensive: the stored graph should never be cyclic.
				continue
			}
			if result, ok := memo[childID]; ok {
				if result.hours > top.best.hours {
					top.best = result
				}
				continue
			}

			child, err := e.store.GetTask(childID)
			if err != nil {
				return chainResult{}, fmt.Errorf("dependency %s: %w", childID, err)
			}
			if child.Status == task.StatusCompleted {
				memo[childID] = chainResult{}
				continue
			}
			if err := push(childID); err != nil {
				return chainResult{}, err
			}
			continue
		}

		result := chainResult{
			hours: top.best.hours + top.effort,
			path:  append(append([]string(nil), top.best.path...), top.id),
		}
		memo[top.id] = result
		onStack[top.id] = false
		stack = stack[:len(stack)-1]

		if len(stack) == 0 {
			final = result
			continue
		}
		parent := &stack[len(stack)-1]
		if result.hours > parent.best.hours {
			parent.best = result
		}
	}

	return final, nil
}
