package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ordino/ordino/task"
)

// StatusChange records one status transition applied during a propagation run.
type StatusChange struct {
	TaskID string      `json:"task_id"`
	From   task.Status `json:"from"`
	To     task.Status `json:"to"`
}

// resolveAndPropagate recomputes the status of startID and of its
// transitive dependents, in dependency order, persisting each change with
// a version bump. Callers must hold the engine lock.
//
// Dependency order means every task is resolved after all of its upstream
// tasks in this run, so each task is visited exactly once even on
// diamond-shaped graphs. A store failure on one task is collected and the
// remaining tasks still run; the joined failures are returned alongside
// the changes that did apply.
func (e *Engine) resolveAndPropagate(startID string) ([]StatusChange, error) {
	edges, err := e.store.Edges()
	if err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}
	graph := task.NewGraph(edges)

	order := dependentsInDependencyOrder(graph, startID)

	var changes []StatusChange
	var failures []error
	for _, id := range order {
		change, err := e.resolveOne(id)
		if err != nil {
			failures = append(failures, fmt.Errorf("resolve %s: %w", id, err))
			continue
		}
		if change == nil {
			continue
		}
		changes = append(changes, *change)
		e.logger.StatusChanged(*change)
	}

	return changes, errors.Join(failures...)
}

// resolveOne applies the status resolver to a single task, persisting the
// result only when it differs from the stored status.
func (e *Engine) resolveOne(id string) (*StatusChange, error) {
	current, err := e.store.GetTask(id)
	if err != nil {
		return nil, err
	}

	dependencies, err := e.dependencyStatuses(id)
	if err != nil {
		return nil, err
	}

	resolved := ResolveStatus(current.Status, dependencies)
	if resolved == current.Status {
		return nil, nil
	}

	previous := current.Status
	current.Status = resolved
	if _, err := e.store.UpdateTask(current, current.Version); err != nil {
		return nil, err
	}

	return &StatusChange{TaskID: id, From: previous, To: resolved}, nil
}

// dependencyStatuses fetches the live statuses of a task's direct
// prerequisites.
func (e *Engine) dependencyStatuses(id string) ([]task.Status, error) {
	edges, err := e.store.Dependencies(id)
	if err != nil {
		return nil, err
	}

	statuses := make([]task.Status, 0, len(edges))
	for _, edge := range edges {
		dependency, err := e.store.GetTask(edge.DependsOnID)
		if err != nil {
			return nil, fmt.Errorf("dependency %s: %w", edge.DependsOnID, err)
		}
		statuses = append(statuses, dependency.Status)
	}
	return statuses, nil
}

// dependentsInDependencyOrder returns startID followed by its transitive
// dependents, ordered so that every task appears after all of its
// prerequisites within the set (Kahn's algorithm over the dependent
// subgraph). Acyclicity of the stored graph bounds the traversal.
func dependentsInDependencyOrder(graph *task.Graph, startID string) []string {
	// Collect the affected set: startID plus transitive dependents.
	affected := map[string]bool{startID: true}
	queue := []string{startID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dependent := range graph.Dependents[id] {
			if !affected[dependent] {
				affected[dependent] = true
				queue = append(queue, dependent)
			}
		}
	}

	// In-degree within the affected set: how many of a task's
	// prerequisites also need resolution in this run.
	inDegree := make(map[string]int, len(affected))
	for id := range affected {
		for _, prerequisite := range graph.DependsOn[id] {
			if affected[prerequisite] {
				inDegree[id]++
			}
		}
	}

	var ready []string
	for id := range affected {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(affected))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var unlocked []string
		for _, dependent := range graph.Dependents[id] {
			if !affected[dependent] {
				continue
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				unlocked = append(unlocked, dependent)
			}
		}
		sort.Strings(unlocked)
		ready = append(ready, unlocked...)
	}

	return order
}
