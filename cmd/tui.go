package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the schedule interactively",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	p, sched, err := computeProject(cmd)
	if err != nil {
		return err
	}
	return tui.Run(p.Name, sched, p.Config)
}
