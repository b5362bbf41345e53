package engine

// wouldCreateCycle reports the cycle that adding the edge source -> target
// would create in the dependency graph, or nil if the graph stays acyclic.
//
// The traversal is a depth-first search from source over the existing
// adjacency plus the hypothetical edge, run on an explicit stack so deep
// graphs cannot exhaust the call stack. Encountering a node that is still
// on the traversal path signals a cycle; the returned path is the suffix
// of the current path from that node's first occurrence through the
// current node, closed with the node itself. It is the first cycle
// discovered, not necessarily the shortest. O(V+E).
func wouldCreateCycle(dependsOn map[string][]string, source, target string) []string {
	neighbors := func(node string) []string {
		next := dependsOn[node]
		if node != source {
			return next
		}
		withCandidate := make([]string, 0, len(next)+1)
		withCandidate = append(withCandidate, next...)
		return append(withCandidate, target)
	}

	type frame struct {
		node string
		next int
	}

	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string
	var stack []frame

	push := func(node string) {
		stack = append(stack, frame{node: node})
		path = append(path, node)
		visited[node] = true
		onStack[node] = true
	}

	push(source)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		next := neighbors(top.node)

		if top.next < len(next) {
			child := next[top.next]
			top.next++

			if onStack[child] {
				for i, id := range path {
					if id == child {
						cycle := append([]string(nil), path[i:]...)
						return append(cycle, child)
					}
				}
			}
			if !visited[child] {
				push(child)
			}
			continue
		}

		onStack[top.node] = false
		path = path[:len(path)-1]
		stack = stack[:len(stack)-1]
	}

	return nil
}
