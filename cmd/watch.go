package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/journal"
	"github.com/papapumpkin/gantry/internal/project"
	"github.com/papapumpkin/gantry/internal/render"
	"github.com/papapumpkin/gantry/internal/schedule"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompute and reprint the schedule whenever the project file changes",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	path := projectPath(cmd)

	jw, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer jw.Close()

	w, err := project.NewWatcher(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	printOnce := func() {
		p, err := project.Load(path)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		sched, err := schedule.Compute(p.Tasks, p.Config)
		if err != nil {
			_ = jw.Record(journal.Event{
				Timestamp: time.Now().UTC(),
				Kind:      journal.KindValidationFailed,
				Project:   p.Name,
				Data:      err.Error(),
			})
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		recordRun(jw, p.Name, sched)
		fmt.Fprint(cmd.OutOrStdout(), render.Table(sched, p.Config))
	}

	printOnce()
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", path)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	for {
		select {
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout())
			printOnce()
		case <-sigs:
			return nil
		}
	}
}
