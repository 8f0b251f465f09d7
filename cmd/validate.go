package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/schedule"
	"github.com/papapumpkin/gantry/internal/taskgraph"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the project file for cycles, dangling dependencies, and bad estimates",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	if _, err := schedule.Compute(p.Tasks, p.Config); err != nil {
		var cycle *taskgraph.CycleError
		var dangling *taskgraph.DanglingError
		var duration *schedule.InvalidDurationError
		switch {
		case errors.As(err, &cycle):
			return fmt.Errorf("dependency cycle through: %v", cycle.TaskIDs)
		case errors.As(err, &dangling):
			return fmt.Errorf("task %q depends on %q, which does not exist", dangling.TaskID, dangling.MissingID)
		case errors.As(err, &duration):
			return fmt.Errorf("task %q has a non-positive estimate (%gh)", duration.TaskID, duration.Hours)
		default:
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tasks schedule cleanly\n", len(p.Tasks))
	return nil
}
