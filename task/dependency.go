package task

import "time"

// Dependency represents a directed edge: TaskID depends on DependsOnID.
type Dependency struct {
	// ID is a unique identifier for the edge record.
	ID string `json:"id"`

	// TaskID is the dependent task (the edge's source).
	TaskID string `json:"task_id"`

	// DependsOnID is the prerequisite task (the edge's target).
	DependsOnID string `json:"depends_on_id"`

	// CreatedAt is when the dependency was created.
	CreatedAt time.Time `json:"created_at"`
}

// Graph is a derived adjacency view over an edge set. It is rebuilt from
// the store per operation rather than maintained incrementally.
type Graph struct {
	// DependsOn maps a task ID to the IDs of its direct prerequisites.
	DependsOn map[string][]string

	// Dependents maps a task ID to the IDs of tasks that depend on it.
	Dependents map[string][]string
}

// NewGraph builds an adjacency view from an edge list in O(E).
func NewGraph(edges []Dependency) *Graph {
	g := &Graph{
		DependsOn:  make(map[string][]string),
		Dependents: make(map[string][]string),
	}
	for _, edge := range edges {
		g.DependsOn[edge.TaskID] = append(g.DependsOn[edge.TaskID], edge.DependsOnID)
		g.Dependents[edge.DependsOnID] = append(g.Dependents[edge.DependsOnID], edge.TaskID)
	}
	return g
}

// DepTreeNode represents a node in a dependency tree.
type DepTreeNode struct {
	// Task is the task at this node.
	Task *Task

	// Children are the tasks that this task depends on.
	Children []*DepTreeNode
}
