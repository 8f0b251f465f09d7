package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gantry/internal/config"
	"github.com/papapumpkin/gantry/internal/journal"
	"github.com/papapumpkin/gantry/internal/render"
	"github.com/papapumpkin/gantry/internal/schedule"
	"github.com/papapumpkin/gantry/internal/store"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute the schedule and print it as a table",
	RunE:  runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().Bool("save", false, "record this run in the history database")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	jw, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer jw.Close()

	p, err := loadProject(cmd)
	if err != nil {
		return err
	}
	_ = jw.Record(journal.Event{Timestamp: time.Now().UTC(), Kind: journal.KindRunStart, Project: p.Name})

	sched, err := schedule.Compute(p.Tasks, p.Config)
	if err != nil {
		_ = jw.Record(journal.Event{
			Timestamp: time.Now().UTC(),
			Kind:      journal.KindValidationFailed,
			Project:   p.Name,
			Data:      err.Error(),
		})
		return err
	}
	recordRun(jw, p.Name, sched)

	fmt.Fprint(cmd.OutOrStdout(), render.Table(sched, p.Config))

	if save, _ := cmd.Flags().GetBool("save"); save {
		ctx := context.Background()
		s, err := store.Open(ctx, cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer s.Close()
		id, err := s.SaveRun(ctx, p.Name, sched, p.Config)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved run %d\n", id)
	}
	return nil
}

// openJournal opens the configured journal, or returns a no-op nil
// writer when journaling is off.
func openJournal(cfg config.Config) (*journal.Writer, error) {
	if cfg.JournalPath == "" {
		return nil, nil
	}
	return journal.Open(cfg.JournalPath)
}

// recordRun journals a completed computation, including each task the
// leveler had to push and each manual pin.
func recordRun(jw *journal.Writer, name string, sched []schedule.ScheduledTask) {
	for _, st := range sched {
		if st.Manual {
			_ = jw.Record(journal.Event{
				Timestamp: time.Now().UTC(),
				Kind:      journal.KindTaskPinned,
				Project:   name,
				TaskID:    st.ID,
				Data:      st.Start.Format("2006-01-02"),
			})
		} else if st.DelayDays > 0 {
			_ = jw.Record(journal.Event{
				Timestamp: time.Now().UTC(),
				Kind:      journal.KindTaskDelayed,
				Project:   name,
				TaskID:    st.ID,
				Data:      map[string]int{"days": st.DelayDays},
			})
		}
	}
	_ = jw.Record(journal.Event{Timestamp: time.Now().UTC(), Kind: journal.KindRunDone, Project: name})
}
