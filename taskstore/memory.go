package taskstore

import (
	"sync"
	"time"

	"github.com/ordino/ordino/task"
)

// Memory is an in-memory task.Store. It is safe for concurrent use and is
// the store the engine's tests run against.
type Memory struct {
	mu    sync.Mutex
	tasks []task.Task
	edges []task.Dependency
	now   func() time.Time
}

var _ task.Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// GetTask fetches a task by ID.
func (m *Memory) GetTask(id string) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return findTask(m.tasks, id)
}

// ListTasks returns all task records in insertion order.
func (m *Memory) ListTasks() ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]task.Task(nil), m.tasks...), nil
}

// CreateTask persists a new task record.
func (m *Memory) CreateTask(t *task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks, err := createTask(m.tasks, t, m.now())
	if err != nil {
		return err
	}
	m.tasks = tasks
	return nil
}

// UpdateTask applies a version-checked update.
func (m *Memory) UpdateTask(t *task.Task, expectedVersion int) (*task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks, updated, err := updateTask(m.tasks, t, expectedVersion, m.now())
	if err != nil {
		return nil, err
	}
	m.tasks = tasks
	return updated, nil
}

// DeleteTask removes a task and all edges touching it.
func (m *Memory) DeleteTask(id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks, edges, dependents, err := deleteTask(m.tasks, m.edges, id)
	if err != nil {
		return nil, err
	}
	m.tasks = tasks
	m.edges = edges
	return dependents, nil
}

// GetEdge fetches a dependency edge by ID.
func (m *Memory) GetEdge(id string) (*task.Dependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return findEdge(m.edges, id)
}

// Edges returns the full edge set.
func (m *Memory) Edges() ([]task.Dependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]task.Dependency(nil), m.edges...), nil
}

// Dependencies returns the edges whose source is taskID.
func (m *Memory) Dependencies(taskID string) ([]task.Dependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return edgesBySource(m.edges, taskID), nil
}

// Dependents returns the edges whose target is taskID.
func (m *Memory) Dependents(taskID string) ([]task.Dependency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return edgesByTarget(m.edges, taskID), nil
}

// CreateEdge persists a new dependency edge.
func (m *Memory) CreateEdge(d *task.Dependency) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	edges, err := createEdge(m.tasks, m.edges, d, m.now())
	if err != nil {
		return err
	}
	m.edges = edges
	return nil
}

// DeleteEdge removes a dependency edge by ID.
func (m *Memory) DeleteEdge(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	edges, err := deleteEdge(m.edges, id)
	if err != nil {
		return err
	}
	m.edges = edges
	return nil
}
