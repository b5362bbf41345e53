package engine

import "github.com/ordino/ordino/task"

// DepTree builds the prerequisite tree rooted at taskID. Shared
// prerequisites appear once per path that reaches them.
func (e *Engine) DepTree(taskID string) (*task.DepTreeNode, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.depTree(taskID, make(map[string]bool))
}

func (e *Engine) depTree(id string, onPath map[string]bool) (*task.DepTreeNode, error) {
	record, err := e.store.GetTask(id)
	if err != nil {
		return nil, err
	}

	node := &task.DepTreeNode{Task: record}
	if onPath[id] {
		// Defensive: the stored graph should never be cyclic.
		return node, nil
	}
	onPath[id] = true
	defer delete(onPath, id)

	edges, err := e.store.Dependencies(id)
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		child, err := e.depTree(edge.DependsOnID, onPath)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
