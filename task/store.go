package task

// Store is the persistence capability the dependency graph engine consumes.
// Implementations must make UpdateTask's version check and increment atomic
// with the write, and must keep "edges by source" and "edges by target"
// lookups proportional to the edges touching the task.
//
// Structural failures surface as the package sentinels: ErrTaskNotFound,
// ErrDependencyNotFound, ErrDuplicateDependency, ErrSelfDependency, and
// *VersionConflictError.
type Store interface {
	// GetTask fetches a task by ID.
	GetTask(id string) (*Task, error)

	// ListTasks returns all task records.
	ListTasks() ([]Task, error)

	// CreateTask persists a new task record at InitialVersion.
	CreateTask(t *Task) error

	// UpdateTask persists changed task fields if the stored version equals
	// expectedVersion, incrementing the version by exactly 1 as part of the
	// same write. Returns the stored record after the update.
	UpdateTask(t *Task, expectedVersion int) (*Task, error)

	// DeleteTask removes a task and cascades removal of all edges touching
	// it. It returns the IDs of tasks that depended on the deleted task so
	// the caller can re-resolve their statuses.
	DeleteTask(id string) ([]string, error)

	// GetEdge fetches a dependency edge by ID.
	GetEdge(id string) (*Dependency, error)

	// Edges returns the full edge set, for whole-graph traversals.
	Edges() ([]Dependency, error)

	// Dependencies returns the edges whose source is taskID: the task's
	// direct prerequisites.
	Dependencies(taskID string) ([]Dependency, error)

	// Dependents returns the edges whose target is taskID: the tasks that
	// depend on it.
	Dependents(taskID string) ([]Dependency, error)

	// CreateEdge persists a new dependency edge, enforcing self-reference
	// and (TaskID, DependsOnID) uniqueness.
	CreateEdge(d *Dependency) error

	// DeleteEdge removes a dependency edge by ID.
	DeleteEdge(id string) error
}
