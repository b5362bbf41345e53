package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWouldCreateCycle(t *testing.T) {
	for _, tt := range []struct {
		name      string
		dependsOn map[string][]string
		source    string
		target    string
		want      []string
	}{
		{
			name:   "empty graph",
			source: "a",
			target: "b",
			want:   nil,
		},
		{
			name:      "forward edge in a chain",
			dependsOn: map[string][]string{"b": {"a"}, "c": {"b"}},
			source:    "c",
			target:    "a",
			want:      nil,
		},
		{
			name:      "back edge closes a chain",
			dependsOn: map[string][]string{"b": {"a"}, "c": {"b"}},
			source:    "a",
			target:    "c",
			want:      []string{"a", "c", "b", "a"},
		},
		{
			name:      "two-node cycle",
			dependsOn: map[string][]string{"b": {"a"}},
			source:    "a",
			target:    "b",
			want:      []string{"a", "b", "a"},
		},
		{
			name:   "self edge",
			source: "a",
			target: "a",
			want:   []string{"a", "a"},
		},
		{
			name: "diamond stays acyclic",
			dependsOn: map[string][]string{
				"b": {"a"},
				"c": {"a"},
				"d": {"b", "c"},
			},
			source: "d",
			target: "a",
			want:   nil,
		},
		{
			name: "cycle deep in a diamond",
			dependsOn: map[string][]string{
				"b": {"a"},
				"c": {"a"},
				"d": {"b", "c"},
			},
			source: "a",
			target: "d",
			want:   []string{"a", "d", "b", "a"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := wouldCreateCycle(tt.dependsOn, tt.source, tt.target)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestWouldCreateCyclePathIsContiguous(t *testing.T) {
	// The reported path starts and ends at the same node and each hop
	// follows an edge (or the candidate edge).
	dependsOn := map[string][]string{
		"b": {"a"},
		"c": {"b"},
		"d": {"c"},
		"e": {"d", "b"},
	}
	path := wouldCreateCycle(dependsOn, "a", "e")
	require.NotEmpty(t, path)
	require.Equal(t, path[0], path[len(path)-1])

	hasEdge := func(from, to string) bool {
		if from == "a" && to == "e" {
			return true
		}
		for _, next := range dependsOn[from] {
			if next == to {
				return true
			}
		}
		return false
	}
	for i := 0; i+1 < len(path); i++ {
		require.True(t, hasEdge(path[i], path[i+1]),
			"no edge %s -> %s in reported cycle %v", path[i], path[i+1], path)
	}
}
