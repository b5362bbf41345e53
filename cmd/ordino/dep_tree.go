package main

import (
	"fmt"
	"strings"

	"github.com/ordino/ordino/task"
)

// printDepTree prints a dependency tree with ASCII art.
func printDepTree(node *task.DepTreeNode, highlight func(string) string) {
	printDepTreeNode(node, "", "", highlight)
}

func printDepTreeNode(node *task.DepTreeNode, prefix, connector string, highlight func(string) string) {
	fmt.Printf("%s%s%s %s (%s)\n",
		prefix, connector, statusIcon(node.Task.Status), node.Task.Title, highlight(node.Task.ID))

	childPrefix := prefix
	if strings.HasPrefix(connector, "└") {
		childPrefix += "    "
	} else if connector != "" {
		childPrefix += "│   "
	}

	for i, child := range node.Children {
		childConnector := "├── "
		if i == len(node.Children)-1 {
			childConnector = "└── "
		}
		printDepTreeNode(child, childPrefix, childConnector, highlight)
	}
}

// statusIcon returns an icon for the status.
func statusIcon(s task.Status) string {
	switch s {
	case task.StatusPending:
		return "[ ]"
	case task.StatusInProgress:
		return "[~]"
	case task.StatusCompleted:
		return "[x]"
	case task.StatusBlocked:
		return "[!]"
	default:
		return "[?]"
	}
}
