package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ordino/ordino/internal/ui"
	"github.com/spf13/cobra"
)

// estimate
var estimateCmd = &cobra.Command{
	Use:   "estimate <id>",
	Short: "Estimate hours until a task can be completed",
	Long: `Estimate hours until a task can be completed.

The estimate is the longest chain of not-yet-completed work ending at
the task, including the task's own hours. Completed prerequisites
contribute nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

var estimateJSON bool

// graph
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Dump the full dependency graph as JSON",
	Args:  cobra.NoArgs,
	RunE:  runGraph,
}

// stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts by status",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

func init() {
	rootCmd.AddCommand(estimateCmd, graphCmd, statsCmd)

	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	id, err := resolveTaskID(e, args[0])
	if err != nil {
		return err
	}
	estimate, err := e.EstimateCompletion(id)
	if err != nil {
		return err
	}

	if estimateJSON {
		return encodeJSONToStdout(estimate)
	}

	highlight, err := taskHighlighter(e)
	if err != nil {
		return err
	}
	path := make([]string, 0, len(estimate.CriticalPath))
	for _, pathID := range estimate.CriticalPath {
		path = append(path, highlight(pathID))
	}

	fmt.Printf("Task:          %s\n", highlight(estimate.TaskID))
	fmt.Printf("Total hours:   %d\n", estimate.TotalHours)
	fmt.Printf("Critical path: %s\n", strings.Join(path, " -> "))
	fmt.Printf("Can start:     %t\n", estimate.CanStartImmediately)
	return nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	view, err := e.FullGraph()
	if err != nil {
		return err
	}
	return encodeJSONToStdout(view)
}

func runStats(cmd *cobra.Command, args []string) error {
	e, _, err := openEngine()
	if err != nil {
		return err
	}

	counts, err := e.Stats()
	if err != nil {
		return err
	}

	if statsJSON {
		return encodeJSONToStdout(counts)
	}

	rows := [][]string{
		{ui.StyleStatus("pending"), strconv.Itoa(counts.Pending)},
		{ui.StyleStatus("in_progress"), strconv.Itoa(counts.InProgress)},
		{ui.StyleStatus("completed"), strconv.Itoa(counts.Completed)},
		{ui.StyleStatus("blocked"), strconv.Itoa(counts.Blocked)},
		{"total", strconv.Itoa(counts.Total)},
	}
	fmt.Print(ui.FormatTable([]string{"STATUS", "COUNT"}, rows))
	return nil
}
