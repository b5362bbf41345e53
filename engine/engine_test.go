package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ordino/ordino/task"
	"github.com/ordino/ordino/taskstore"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(taskstore.NewMemory())
}

func createTask(t *testing.T, e *Engine, id string, status task.Status, hours int) *task.Task {
	t.Helper()
	record := &task.Task{
		ID:             id,
		Title:          "task " + id,
		Status:         status,
		EstimatedHours: hours,
	}
	require.NoError(t, e.CreateTask(record))
	return record
}

func mustStatus(t *testing.T, e *Engine, id string, want task.Status) {
	t.Helper()
	record, err := e.GetTask(id)
	require.NoError(t, err)
	require.Equal(t, want, record.Status, "status of %s", id)
}

func TestAddDependencyRejectsSelfReference(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)

	_, err := e.AddDependency("a", "a")
	require.ErrorIs(t, err, task.ErrSelfDependency)
}

func TestAddDependencyRejectsUnknownTasks(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)

	_, err := e.AddDependency("a", "missing")
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = e.AddDependency("missing", "a")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestAddDependencyRejectsDuplicates(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)

	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	_, err = e.AddDependency("b", "a")
	require.ErrorIs(t, err, task.ErrDuplicateDependency)
}

func TestAddDependencyRejectsCycles(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	createTask(t, e, "c", task.StatusPending, 1)

	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)
	_, err = e.AddDependency("c", "b")
	require.NoError(t, err)

	_, err = e.AddDependency("a", "c")
	var cycle *task.CycleError
	require.ErrorAs(t, err, &cycle)
	require.Subset(t, cycle.Path, []string{"a", "b", "c"})

	// The rejected edge left no trace.
	edges, err := e.FullGraph()
	require.NoError(t, err)
	require.Len(t, edges.Edges, 2)
}

func TestAddDependencyDemotesStartedDependent(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusInProgress, 1)

	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	mustStatus(t, e, "b", task.StatusPending)
}

func TestCompleteTaskPropagatesToDependents(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	record, err := e.GetTask("a")
	require.NoError(t, err)
	completed, err := e.CompleteTask("a", record.Version)
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, completed.Status)

	// b's only dependency is now completed, so it auto-promotes.
	mustStatus(t, e, "b", task.StatusInProgress)
}

func TestCompleteTaskRejectsIncompleteDependencies(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	record, err := e.GetTask("b")
	require.NoError(t, err)
	_, err = e.CompleteTask("b", record.Version)
	require.ErrorIs(t, err, ErrIncompleteDependencies)

	mustStatus(t, e, "b", task.StatusPending)
}

func TestCompleteTaskRejectsStaleVersion(t *testing.T) {
	e := newTestEngine(t)
	created := createTask(t, e, "a", task.StatusPending, 1)

	_, err := e.CompleteTask("a", created.Version+1)
	var conflict *task.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, created.Version, conflict.Current)
	require.Equal(t, created.Version+1, conflict.Expected)

	// The stored record is untouched.
	record, err := e.GetTask("a")
	require.NoError(t, err)
	require.Equal(t, task.StatusPending, record.Status)
	require.Equal(t, created.Version, record.Version)
}

func TestUpdateTaskBumpsVersionByOne(t *testing.T) {
	e := newTestEngine(t)
	created := createTask(t, e, "a", task.StatusPending, 1)

	created.Title = "renamed"
	updated, _, err := e.UpdateTask(created, created.Version)
	require.NoError(t, err)
	require.Equal(t, created.Version+1, updated.Version)
}

func TestUpdateTaskCorrectsManualOverride(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	// Forcing b in_progress while a is incomplete gets resolved right
	// back to pending in the same call.
	record, err := e.GetTask("b")
	require.NoError(t, err)
	record.Status = task.StatusInProgress
	current, changes, err := e.UpdateTask(record, record.Version)
	require.NoError(t, err)
	require.Equal(t, task.StatusPending, current.Status)
	require.Len(t, changes, 1)
	require.Equal(t, StatusChange{
		TaskID: "b",
		From:   task.StatusInProgress,
		To:     task.StatusPending,
	}, changes[0])
}

func TestPropagationHandlesDiamonds(t *testing.T) {
	// b and c both depend on a; d depends on b and c. Completing a must
	// promote b and c, and d must be resolved after both of them.
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	createTask(t, e, "c", task.StatusPending, 1)
	createTask(t, e, "d", task.StatusPending, 1)
	for _, pair := range [][2]string{{"b", "a"}, {"c", "a"}, {"d", "b"}, {"d", "c"}} {
		_, err := e.AddDependency(pair[0], pair[1])
		require.NoError(t, err)
	}

	record, err := e.GetTask("a")
	require.NoError(t, err)
	_, err = e.CompleteTask("a", record.Version)
	require.NoError(t, err)

	mustStatus(t, e, "b", task.StatusInProgress)
	mustStatus(t, e, "c", task.StatusInProgress)
	mustStatus(t, e, "d", task.StatusPending)

	// Complete both branches; d promotes exactly once each branch
	// completes, not before.
	for _, id := range []string{"b", "c"} {
		record, err := e.GetTask(id)
		require.NoError(t, err)
		_, err = e.CompleteTask(id, record.Version)
		require.NoError(t, err)
	}
	mustStatus(t, e, "d", task.StatusInProgress)
}

func TestPropagationIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	first, err := e.ResolveAndPropagate("a")
	require.NoError(t, err)
	require.NotEmpty(t, first) // a promotes: no dependencies

	second, err := e.ResolveAndPropagate("a")
	require.NoError(t, err)
	require.Empty(t, second)
}

func TestBlockedDependencyDominates(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusBlocked, 1)
	createTask(t, e, "b", task.StatusCompleted, 1)
	createTask(t, e, "c", task.StatusPending, 1)

	_, err := e.AddDependency("c", "b")
	require.NoError(t, err)
	mustStatus(t, e, "c", task.StatusInProgress)

	_, err = e.AddDependency("c", "a")
	require.NoError(t, err)
	mustStatus(t, e, "c", task.StatusBlocked)
}

func TestRemoveDependencyReresolves(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	edge, err := e.AddDependency("b", "a")
	require.NoError(t, err)
	mustStatus(t, e, "b", task.StatusPending)

	require.NoError(t, e.RemoveDependency(edge.ID))
	mustStatus(t, e, "b", task.StatusInProgress)

	err = e.RemoveDependency(edge.ID)
	require.ErrorIs(t, err, task.ErrDependencyNotFound)
}

func TestDeleteTaskReresolvesDependents(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	_, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	changes, err := e.DeleteTask("a")
	require.NoError(t, err)
	require.Contains(t, changes, StatusChange{
		TaskID: "b",
		From:   task.StatusPending,
		To:     task.StatusInProgress,
	})

	_, err = e.GetTask("a")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
	edges, err := e.FullGraph()
	require.NoError(t, err)
	require.Empty(t, edges.Edges)
}

func TestFullGraphOrientation(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusPending, 1)
	edge, err := e.AddDependency("b", "a")
	require.NoError(t, err)

	view, err := e.FullGraph()
	require.NoError(t, err)

	want := &GraphView{
		Nodes: []GraphNode{
			{ID: "a", Title: "task a", Status: task.StatusPending},
			{ID: "b", Title: "task b", Status: task.StatusPending},
		},
		Edges: []GraphEdge{
			// Oriented prerequisite -> dependent for visualization.
			{ID: edge.ID, Source: "a", Target: "b"},
		},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Fatalf("graph view mismatch (-want +got):\n%s", diff)
	}
}

func TestStats(t *testing.T) {
	e := newTestEngine(t)
	createTask(t, e, "a", task.StatusPending, 1)
	createTask(t, e, "b", task.StatusInProgress, 1)
	createTask(t, e, "c", task.StatusCompleted, 1)
	createTask(t, e, "d", task.StatusBlocked, 1)
	createTask(t, e, "e", task.StatusPending, 1)

	counts, err := e.Stats()
	require.NoError(t, err)
	want := &StatusCounts{Total: 5, Pending: 2, InProgress: 1, Completed: 1, Blocked: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckVersion(t *testing.T) {
	require.NoError(t, CheckVersion(3, 3))

	err := CheckVersion(4, 3)
	var conflict *task.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, 4, conflict.Current)
	require.Equal(t, 3, conflict.Expected)
}

func TestGraphStaysAcyclic(t *testing.T) {
	// Hammer AddDependency with every ordered pair over a small task set;
	// whatever subset gets accepted must still topologically sort.
	e := newTestEngine(t)
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for _, id := range ids {
		createTask(t, e, id, task.StatusPending, 1)
	}
	pairs := [][2]string{
		{"b", "a"}, {"c", "b"}, {"a", "c"}, // third closes a cycle
		{"d", "c"}, {"e", "d"}, {"c", "e"}, // third closes a cycle
		{"f", "a"}, {"f", "e"}, {"a", "f"}, // third closes a cycle
		{"d", "a"}, {"e", "b"}, {"b", "f"},
	}
	for _, pair := range pairs {
		_, err := e.AddDependency(pair[0], pair[1])
		if err != nil {
			var cycle *task.CycleError
			require.ErrorAs(t, err, &cycle)
		}
	}

	view, err := e.FullGraph()
	require.NoError(t, err)

	inDegree := make(map[string]int, len(ids))
	dependents := make(map[string][]string)
	for _, id := range ids {
		inDegree[id] = 0
	}
	for _, edge := range view.Edges {
		inDegree[edge.Target]++
		dependents[edge.Source] = append(dependents[edge.Source], edge.Target)
	}
	var ready []string
	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}
	sorted := 0
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		sorted++
		for _, dependent := range dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}
	require.Equal(t, len(ids), sorted, "accepted edges formed a cycle")
}
