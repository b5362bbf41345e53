package task

import (
	"testing"
)

func edge(taskID, dependsOnID string) Dependency {
	return Dependency{ID: taskID + "->" + dependsOnID, TaskID: taskID, DependsOnID: dependsOnID}
}

func TestNewGraph(t *testing.T) {
	g := NewGraph([]Dependency{
		edge("a", "b"),
		edge("a", "c"),
		edge("b", "c"),
	})

	if got := g.DependsOn["a"]; len(got) != 2 {
		t.Errorf("DependsOn[a] = %v, want 2 prerequisites", got)
	}
	if got := g.Dependents["c"]; len(got) != 2 {
		t.Errorf("Dependents[c] = %v, want 2 dependents", got)
	}
	if got := g.Dependents["a"]; len(got) != 0 {
		t.Errorf("Dependents[a] = %v, want none", got)
	}
}

func TestNewGraphEmpty(t *testing.T) {
	g := NewGraph(nil)
	if len(g.DependsOn) != 0 || len(g.Dependents) != 0 {
		t.Errorf("empty graph has adjacency entries: %+v", g)
	}
}

func TestGenerateEdgeID(t *testing.T) {
	first := GenerateEdgeID()
	second := GenerateEdgeID()
	if first == "" || first == second {
		t.Errorf("edge IDs not unique: %q, %q", first, second)
	}
}
