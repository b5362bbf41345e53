package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ordino/ordino/engine"
	"github.com/ordino/ordino/internal/listflags"
	"github.com/ordino/ordino/task"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks for the current project",
}

// task create
var taskCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskCreate,
}

var (
	taskCreatePriority    int
	taskCreateHours       int
	taskCreateDescription string
)

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Long: `Update a task.

Pass --expect-version to fail the update if someone else changed the
task since you last read it. Without it, the update applies to whatever
version is currently stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskUpdate,
}

var (
	taskUpdateTitle         string
	taskUpdateDescription   string
	taskUpdateStatus        string
	taskUpdatePriority      int
	taskUpdateHours         int
	taskUpdateExpectVersion int
)

// task start
var taskStartCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark one or more tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskStart,
}

// task complete
var taskCompleteCmd = &cobra.Command{
	Use:   "complete <id>...",
	Short: "Mark one or more tasks as completed",
	Long: `Mark one or more tasks as completed.

Completion is refused while the task still has incomplete dependencies.
Completing a task re-resolves its dependents, so tasks that were only
waiting on it start automatically.`,
	Aliases: []string{
		"done",
	},
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskComplete,
}

var taskCompleteExpectVersion int

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDelete,
}

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var (
	taskListStatus string
	taskListJSON   bool
	taskListAll    bool
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskCreateCmd, taskUpdateCmd, taskStartCmd, taskCompleteCmd,
		taskDeleteCmd, taskShowCmd, taskListCmd)
	addDescriptionFlagAliases(taskCreateCmd, taskUpdateCmd)

	// task create flags
	taskCreateCmd.Flags().IntVarP(&taskCreatePriority, "priority", "p", task.DefaultPriority, "Priority (1=low, 5=high)")
	taskCreateCmd.Flags().IntVar(&taskCreateHours, "hours", task.DefaultEstimatedHours, "Estimated hours of effort")
	taskCreateCmd.Flags().StringVarP(&taskCreateDescription, "description", "d", "", "Description (use '-' to read from stdin)")

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "New status (pending, in_progress, completed, blocked)")
	taskUpdateCmd.Flags().IntVar(&taskUpdatePriority, "priority", 0, "New priority (1-5)")
	taskUpdateCmd.Flags().IntVar(&taskUpdateHours, "hours", 0, "New estimated hours")
	taskUpdateCmd.Flags().IntVar(&taskUpdateExpectVersion, "expect-version", 0, "Fail unless the stored version matches")

	// task complete flags
	taskCompleteCmd.Flags().IntVar(&taskCompleteExpectVersion, "expect-version", 0, "Fail unless the stored version matches")

	// task show flags
	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")

	// task list flags
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Filter by status")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")
	listflags.AddAllFlag(taskListCmd, &taskListAll)
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	description, err := resolveDescriptionFromStdin(taskCreateDescription, os.Stdin)
	if err != nil {
		return err
	}

	e, cfg, err := openEngine()
	if err != nil {
		return err
	}

	title := args[0]
	record := task.Task{
		ID:             task.GenerateID(title, time.Now()),
		Title:          title,
		Description:    description,
		Priority:       taskCreatePriority,
		EstimatedHours: taskCreateHours,
	}
	if !cmd.Flags().Changed("priority") && cfg.Task.DefaultPriority != 0 {
		record.Priority = cfg.Task.DefaultPriority
	}
	if !cmd.Flags().Changed("hours") && cfg.Task.DefaultHours != 0 {
		record.EstimatedHours = cfg.Task.DefaultHours
	}

	if err := e.CreateTask(&record); err != nil {
		return err
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}
	fmt.Printf("Created task %s: %s\n", highlight(record.ID), record.Title)
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	if err := resolveDescriptionFlag(cmd, &taskUpdateDescription, os.Stdin); err != nil {
		return err
	}

	e, _, err := openEngine()
	if err != nil {
		return err
	}

	id, err := resolveTaskID(e, args[0])
	if err != nil {
		return err
	}
	record, err := e.GetTask(id)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("title") {
		record.Title = taskUpdateTitle
	}
	if cmd.Flags().Changed("description") {
		record.Description = taskUpdateDescription
	}
	if cmd.Flags().Changed("status") {
		status, err := task.ParseStatus(taskUpdateStatus)
		if err != nil {
			return err
		}
		record.Status = status
	}
	if cmd.Flags().Changed("priority") {
		record.Priority = taskUpdatePriority
	}
	if cmd.Flags().Changed("hours") {
		record.EstimatedHours = taskUpdateHours
	}

	expected := record.Version
	if cmd.Flags().Changed("expect-version") {
		expected = taskUpdateExpectVersion
	}

	updated, _, err := e.UpdateTask(record, expected)
	if err != nil {
		return err
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}
	fmt.Printf("Updated task %s: %s (%s, v%d)\n",
		highlight(updated.ID), updated.Title, updated.Status, updated.Version)
	return nil
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	return forEachTask(cmd, args, func(e *engine.Engine, record *task.Task, highlight func(string) string) error {
		record.Status = task.StatusInProgress
		updated, _, err := e.UpdateTask(record, record.Version)
		if err != nil {
			return err
		}
		if updated.Status != task.StatusInProgress {
			fmt.Printf("Task %s is not ready to start (now %s)\n",
				highlight(updated.ID), updated.Status)
			return nil
		}
		fmt.Printf("Started task %s: %s\n", highlight(updated.ID), updated.Title)
		return nil
	})
}

func runTaskComplete(cmd *cobra.Command, args []string) error {
	return forEachTask(cmd, args, func(e *engine.Engine, record *task.Task, highlight func(string) string) error {
		expected := record.Version
		if cmd.Flags().Changed("expect-version") {
			expected = taskCompleteExpectVersion
		}
		completed, err := e.CompleteTask(record.ID, expected)
		if err != nil {
			return err
		}
		fmt.Printf("Completed task %s: %s\n", highlight(completed.ID), completed.Title)
		return nil
	})
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	return forEachTask(cmd, args, func(e *engine.Engine, record *task.Task, highlight func(string) string) error {
		if _, err := e.DeleteTask(record.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted task %s: %s\n", highlight(record.ID), record.Title)
		return nil
	})
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	var records []task.Task
	for _, arg := range args {
		id, err := resolveTaskID(e, arg)
		if err != nil {
			return err
		}
		record, err := e.GetTask(id)
		if err != nil {
			return err
		}
		records = append(records, *record)
	}

	if taskShowJSON {
		return encodeJSONToStdout(records)
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}
	for i, record := range records {
		if i > 0 {
			fmt.Println("---")
		}
		printTaskDetail(record, highlight)
	}
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	tasks, err := e.ListTasks()
	if err != nil {
		return err
	}

	switch {
	case taskListStatus != "":
		status, err := task.ParseStatus(taskListStatus)
		if err != nil {
			return err
		}
		filtered := tasks[:0:0]
		for _, record := range tasks {
			if record.Status == status {
				filtered = append(filtered, record)
			}
		}
		tasks = filtered
	case !taskListAll:
		// Completed tasks are hidden unless asked for.
		filtered := tasks[:0:0]
		for _, record := range tasks {
			if record.Status != task.StatusCompleted {
				filtered = append(filtered, record)
			}
		}
		tasks = filtered
	}

	if taskListJSON {
		return encodeJSONToStdout(tasks)
	}

	printTaskTable(tasks, taskIDPrefixLengths(tasks), time.Now())
	return nil
}

// forEachTask resolves each argument to a task and applies the action.
func forEachTask(cmd *cobra.Command, args []string, action func(*engine.Engine, *task.Task, func(string) string) error) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}

	for _, arg := range args {
		id, err := resolveTaskID(e, arg)
		if err != nil {
			return err
		}
		record, err := e.GetTask(id)
		if err != nil {
			return err
		}
		if err := action(e, record, highlight); err != nil {
			return err
		}
	}
	return nil
}

// resolveDescriptionFlag expands a '-' description to stdin contents, but
// only when the flag was actually set.
func resolveDescriptionFlag(cmd *cobra.Command, description *string, reader *os.File) error {
	if !cmd.Flags().Changed("description") {
		return nil
	}
	value, err := resolveDescriptionFromStdin(*description, reader)
	if err != nil {
		return err
	}
	*description = value
	return nil
}
