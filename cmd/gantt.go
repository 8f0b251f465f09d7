package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/render"
)

var ganttCmd = &cobra.Command{
	Use:   "gantt",
	Short: "Render the schedule as a terminal Gantt chart",
	RunE:  runGantt,
}

func init() {
	rootCmd.AddCommand(ganttCmd)
	ganttCmd.Flags().Int("width", 0, "chart width in columns (default 100)")
	ganttCmd.Flags().String("today", "", "mark a date on the chart (YYYY-MM-DD)")
	ganttCmd.Flags().Bool("no-color", false, "disable colored output")
}

func runGantt(cmd *cobra.Command, args []string) error {
	p, sched, err := computeProject(cmd)
	if err != nil {
		return err
	}

	opts := render.GanttOptions{UseColor: config.Load().Color}
	opts.Width, _ = cmd.Flags().GetInt("width")
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		opts.UseColor = false
	}
	if today, _ := cmd.Flags().GetString("today"); today != "" {
		t, err := time.Parse("2006-01-02", today)
		if err != nil {
			return fmt.Errorf("invalid --today %q, want YYYY-MM-DD", today)
		}
		opts.Today = t
	}

	fmt.Fprint(cmd.OutOrStdout(), render.Gantt(sched, p.Config, opts))
	return nil
}
