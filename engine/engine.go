// Package engine implements the dependency graph engine: cycle
// detection, status resolution, propagation to dependents, and critical
// path estimation over a task.Store.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ordino/ordino/task"
)

// ErrIncompleteDependencies is returned by CompleteTask when a direct
// dependency is not yet completed.
var ErrIncompleteDependencies = errors.New("task has incomplete dependencies")

// Engine coordinates graph mutations and status propagation over a
// store. A single mutex serializes mutating operations so the
// check-then-write sequences (cycle check before edge insert, version
// check before update) observe a stable graph.
type Engine struct {
	mu     sync.Mutex
	store  task.Store
	logger Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger installs a logger for engine events. The default discards
// them.
func WithLogger(logger Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an engine over the given store.
func New(store task.Store, opts ...Option) *Engine {
	e := &Engine{store: store, logger: noopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateTask validates and persists a new task, filling defaults in
// place. New tasks start pending; their status is not resolved until the
// graph around them changes.
func (e *Engine) CreateTask(t *task.Task) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.CreateTask(t)
}

// GetTask returns a task by ID.
func (e *Engine) GetTask(id string) (*task.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.GetTask(id)
}

// ListTasks returns all tasks.
func (e *Engine) ListTasks() ([]task.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.ListTasks()
}

// UpdateTask persists a task under the optimistic version guard. When
// the update changes the task's status, the task and its transitive
// dependents are re-resolved, so a manual status override that
// contradicts the task's dependencies is corrected in the same call.
func (e *Engine) UpdateTask(t *task.Task, expectedVersion int) (*task.Task, []StatusChange, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	previous, err := e.store.GetTask(t.ID)
	if err != nil {
		return nil, nil, err
	}

	updated, err := e.store.UpdateTask(t, expectedVersion)
	if err != nil {
		return nil, nil, err
	}
	if updated.Status == previous.Status {
		return updated, nil, nil
	}

	changes, err := e.resolveAndPropagate(t.ID)
	if err != nil {
		return updated, changes, err
	}

	current, err := e.store.GetTask(t.ID)
	if err != nil {
		return updated, changes, err
	}
	return current, changes, nil
}

// DeleteTask removes a task, cascades its edges, and re-resolves the
// tasks that depended on it.
func (e *Engine) DeleteTask(id string) ([]StatusChange, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dependents, err := e.store.DeleteTask(id)
	if err != nil {
		return nil, err
	}

	var changes []StatusChange
	var failures []error
	for _, dependent := range dependents {
		propagated, err := e.resolveAndPropagate(dependent)
		changes = append(changes, propagated...)
		if err != nil {
			failures = append(failures, err)
		}
	}
	return changes, errors.Join(failures...)
}

// AddDependency records that taskID depends on dependsOnID, then
// re-resolves taskID and its dependents. Checks run in a fixed order:
// task existence, self-reference, duplicate edge, cycle.
func (e *Engine) AddDependency(taskID, dependsOnID string) (*task.Dependency, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.GetTask(taskID); err != nil {
		return nil, err
	}
	if _, err := e.store.GetTask(dependsOnID); err != nil {
		return nil, err
	}
	if taskID == dependsOnID {
		return nil, task.ErrSelfDependency
	}

	edges, err := e.store.Edges()
	if err != nil {
		return nil, fmt.Errorf("read edges: %w", err)
	}
	for _, edge := range edges {
		if edge.TaskID == taskID && edge.DependsOnID == dependsOnID {
			return nil, task.ErrDuplicateDependency
		}
	}

	graph := task.NewGraph(edges)
	if cycle := wouldCreateCycle(graph.DependsOn, taskID, dependsOnID); cycle != nil {
		e.logger.CycleRejected(CycleLog{TaskID: taskID, DependsOnID: dependsOnID, Path: cycle})
		return nil, &task.CycleError{Path: cycle}
	}

	edge := task.Dependency{
		ID:          task.GenerateEdgeID(),
		TaskID:      taskID,
		DependsOnID: dependsOnID,
	}
	if err := e.store.CreateEdge(&edge); err != nil {
		return nil, err
	}

	if _, err := e.resolveAndPropagate(taskID); err != nil {
		return &edge, err
	}
	return &edge, nil
}

// FindDependency returns the edge recording that taskID depends on
// dependsOnID.
func (e *Engine) FindDependency(taskID, dependsOnID string) (*task.Dependency, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	edges, err := e.store.Dependencies(taskID)
	if err != nil {
		return nil, err
	}
	for i := range edges {
		if edges[i].DependsOnID == dependsOnID {
			return &edges[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s -> %s", task.ErrDependencyNotFound, taskID, dependsOnID)
}

// RemoveDependency deletes an edge by ID and re-resolves the task that
// carried it.
func (e *Engine) RemoveDependency(edgeID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	edge, err := e.store.GetEdge(edgeID)
	if err != nil {
		return err
	}
	if err := e.store.DeleteEdge(edgeID); err != nil {
		return err
	}
	_, err = e.resolveAndPropagate(edge.TaskID)
	return err
}

// ResolveAndPropagate recomputes taskID's status from its dependencies
// and fans any change out to its transitive dependents.
func (e *Engine) ResolveAndPropagate(taskID string) ([]StatusChange, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.store.GetTask(taskID); err != nil {
		return nil, err
	}
	return e.resolveAndPropagate(taskID)
}

// CompleteTask marks a task completed under the optimistic version
// guard. It refuses unless every direct dependency is already completed,
// then propagates the completion to dependents.
func (e *Engine) CompleteTask(taskID string, expectedVersion int) (*task.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if current.Version != expectedVersion {
		return nil, &task.VersionConflictError{
			TaskID:   taskID,
			Current:  current.Version,
			Expected: expectedVersion,
		}
	}

	dependencies, err := e.dependencyStatuses(taskID)
	if err != nil {
		return nil, err
	}
	if !CanStart(dependencies) {
		return nil, fmt.Errorf("complete %s: %w", taskID, ErrIncompleteDependencies)
	}

	current.Status = task.StatusCompleted
	completed, err := e.store.UpdateTask(current, expectedVersion)
	if err != nil {
		return nil, err
	}

	if _, err := e.resolveAndPropagate(taskID); err != nil {
		return completed, err
	}
	return completed, nil
}

// EstimateCompletion computes the critical path estimate for a task. A
// completed task estimates to zero remaining hours.
func (e *Engine) EstimateCompletion(taskID string) (*CompletionEstimate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	record, err := e.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	dependencies, err := e.dependencyStatuses(taskID)
	if err != nil {
		return nil, err
	}

	if record.Status == task.StatusCompleted {
		return &CompletionEstimate{
			TaskID:              taskID,
			TotalHours:          0,
			CriticalPath:        []string{taskID},
			CanStartImmediately: true,
		}, nil
	}

	chain, err := e.estimateChain(taskID)
	if err != nil {
		return nil, err
	}

	return &CompletionEstimate{
		TaskID:              taskID,
		TotalHours:          chain.hours,
		CriticalPath:        chain.path,
		CanStartImmediately: CanStart(dependencies),
	}, nil
}

// GraphNode is a task rendered for graph consumers.
type GraphNode struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Status task.Status `json:"status"`
}

// GraphEdge is a dependency edge oriented from prerequisite to
// dependent.
type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphView is the whole graph in a shape suited to visualization.
type GraphView struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// FullGraph snapshots every task and edge.
func (e *Engine) FullGraph() (*GraphView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tasks, err := e.store.ListTasks()
	if err != nil {
		return nil, err
	}
	edges, err := e.store.Edges()
	if err != nil {
		return nil, err
	}

	view := &GraphView{
		Nodes: make([]GraphNode, 0, len(tasks)),
		Edges: make([]GraphEdge, 0, len(edges)),
	}
	for _, t := range tasks {
		view.Nodes = append(view.Nodes, GraphNode{ID: t.ID, Title: t.Title, Status: t.Status})
	}
	for _, edge := range edges {
		view.Edges = append(view.Edges, GraphEdge{
			ID:     edge.ID,
			Source: edge.DependsOnID,
			Target: edge.TaskID,
		})
	}

	sort.Slice(view.Nodes, func(i, j int) bool { return view.Nodes[i].ID < view.Nodes[j].ID })
	sort.Slice(view.Edges, func(i, j int) bool { return view.Edges[i].ID < view.Edges[j].ID })
	return view, nil
}

// StatusCounts summarizes the store by status.
type StatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Blocked    int `json:"blocked"`
}

// Stats counts tasks per status.
func (e *Engine) Stats() (*StatusCounts, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tasks, err := e.store.ListTasks()
	if err != nil {
		return nil, err
	}

	counts := &StatusCounts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusPending:
			counts.Pending++
		case task.StatusInProgress:
			counts.InProgress++
		case task.StatusCompleted:
			counts.Completed++
		case task.StatusBlocked:
			counts.Blocked++
		}
	}
	return counts, nil
}

// CheckVersion compares a stored record version against the version a
// caller last observed.
func CheckVersion(stored, expected int) error {
	if stored != expected {
		return &task.VersionConflictError{Current: stored, Expected: expected}
	}
	return nil
}
