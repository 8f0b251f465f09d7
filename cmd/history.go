package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved schedule runs",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the tasks of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
}

func openHistory(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, config.Load().HistoryDB)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved runs")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%4s %-20s %-19s %5s %5s %8s\n",
		"id", "project", "saved", "tasks", "days", "critical")
	for _, r := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%4d %-20s %-19s %5d %5d %8d\n",
			r.ID, r.Project, r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.TaskCount, r.SpanDays, r.CriticalCount)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	ctx := context.Background()
	s, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, err := s.RunTasks(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-10s %-10s %-10s %7s %s\n",
		"task", "assignee", "start", "end", "slack", "flags")
	for _, rt := range tasks {
		flags := ""
		if rt.Critical {
			flags = "critical"
		}
		if rt.Manual {
			if flags != "" {
				flags += ","
			}
			flags += "pinned"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-10s %-10s %-10s %6gh %s\n",
			rt.TaskID, rt.Assignee,
			rt.Start.Format("2006-01-02"), rt.End.Format("2006-01-02"),
			rt.SlackHours, flags)
	}
	return nil
}
