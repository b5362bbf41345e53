package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage task dependencies",
}

// dep add
var depAddCmd = &cobra.Command{
	Use:   "add <task-id> <depends-on-id>",
	Short: "Add a dependency between tasks",
	Long: `Add a dependency between tasks.

The first task will not be startable until the second completes.
Dependencies that would create a cycle are rejected, and the offending
cycle is reported.`,
	Args: cobra.ExactArgs(2),
	RunE: runDepAdd,
}

// dep remove
var depRemoveCmd = &cobra.Command{
	Use:   "remove <task-id> <depends-on-id>",
	Short: "Remove a dependency between tasks",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepRemove,
}

// dep tree
var depTreeCmd = &cobra.Command{
	Use:   "tree <id>",
	Short: "Show the dependency tree for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepTree,
}

func init() {
	rootCmd.AddCommand(depCmd)
	depCmd.AddCommand(depAddCmd, depRemoveCmd, depTreeCmd)
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	taskID, err := resolveTaskID(e, args[0])
	if err != nil {
		return err
	}
	dependsOnID, err := resolveTaskID(e, args[1])
	if err != nil {
		return err
	}

	edge, err := e.AddDependency(taskID, dependsOnID)
	if err != nil {
		return err
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}
	fmt.Printf("Added dependency: %s depends on %s\n",
		highlight(edge.TaskID), highlight(edge.DependsOnID))
	return nil
}

func runDepRemove(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	taskID, err := resolveTaskID(e, args[0])
	if err != nil {
		return err
	}
	dependsOnID, err := resolveTaskID(e, args[1])
	if err != nil {
		return err
	}

	edge, err := e.FindDependency(taskID, dependsOnID)
	if err != nil {
		return err
	}
	if err := e.RemoveDependency(edge.ID); err != nil {
		return err
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}
	fmt.Printf("Removed dependency: %s no longer depends on %s\n",
		highlight(taskID), highlight(dependsOnID))
	return nil
}

func runDepTree(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	id, err := resolveTaskID(e, args[0])
	if err != nil {
		return err
	}
	tree, err := e.DepTree(id)
	if err != nil {
		return err
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}
	printDepTree(tree, highlight)
	return nil
}
