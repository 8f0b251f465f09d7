package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/render"
	"github.com/papapumpkin/gantry/internal/schedule"
)

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Show per-assignee hours, busy days, and utilization",
	RunE:  runWorkload,
}

func init() {
	rootCmd.AddCommand(workloadCmd)
}

func runWorkload(cmd *cobra.Command, args []string) error {
	p, sched, err := computeProject(cmd)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.WorkloadTable(schedule.Workload(sched, p.Config)))
	return nil
}
