// Package export serializes a computed schedule for external
// consumers: CSV for spreadsheets and JSON for downstream tooling. End
// dates are exclusive day boundaries, matching the scheduler's ranges.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/papapumpkin/gantry/internal/schedule"
)

const dateLayout = "2006-01-02"

// row is the JSON shape of one scheduled task.
type row struct {
	ID             string   `json:"id"`
	Title          string   `json:"title,omitempty"`
	Assignee       string   `json:"assignee"`
	Phase          string   `json:"phase,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Hours          float64  `json:"hours"`
	DependsOn      []string `json:"depends_on,omitempty"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	EarliestStart  string   `json:"earliest_start"`
	EarliestFinish string   `json:"earliest_finish"`
	LatestStart    string   `json:"latest_start"`
	LatestFinish   string   `json:"latest_finish"`
	SlackHours     float64  `json:"slack_hours"`
	Critical       bool     `json:"critical"`
	Manual         bool     `json:"manual"`
	DelayDays      int      `json:"delay_days"`
}

func toRow(s schedule.ScheduledTask) row {
	return row{
		ID:             s.ID,
		Title:          s.Title,
		Assignee:       s.Assignee,
		Phase:          s.Phase,
		Difficulty:     s.Difficulty,
		Hours:          s.EstimatedHours,
		DependsOn:      s.DependsOn,
		Start:          fmtDate(s.Start),
		End:            fmtDate(s.End),
		EarliestStart:  fmtDate(s.EarliestStart),
		EarliestFinish: fmtDate(s.EarliestFinish),
		LatestStart:    fmtDate(s.LatestStart),
		LatestFinish:   fmtDate(s.LatestFinish),
		SlackHours:     s.SlackHours,
		Critical:       s.Critical,
		Manual:         s.Manual,
		DelayDays:      s.DelayDays,
	}
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// JSON writes the schedule as an indented JSON array, preserving task
// order.
func JSON(w io.Writer, sched []schedule.ScheduledTask) error {
	rows := make([]row, len(sched))
	for i, s := range sched {
		rows[i] = toRow(s)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}

// csvHeader defines the CSV column layout.
var csvHeader = []string{
	"id", "title", "assignee", "phase", "difficulty", "hours",
	"depends_on", "start", "end", "earliest_start", "earliest_finish",
	"latest_start", "latest_finish", "slack_hours", "critical",
	"manual", "delay_days",
}

// CSV writes the schedule as comma-separated rows with a header line.
// Multiple dependencies are joined with semicolons within one field.
func CSV(w io.Writer, sched []schedule.ScheduledTask) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}
	for _, s := range sched {
		r := toRow(s)
		record := []string{
			r.ID, r.Title, r.Assignee, r.Phase, r.Difficulty,
			strconv.FormatFloat(r.Hours, 'f', -1, 64),
			strings.Join(r.DependsOn, ";"),
			r.Start, r.End, r.EarliestStart, r.EarliestFinish,
			r.LatestStart, r.LatestFinish,
			strconv.FormatFloat(r.SlackHours, 'f', -1, 64),
			strconv.FormatBool(r.Critical),
			strconv.FormatBool(r.Manual),
			strconv.Itoa(r.DelayDays),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write csv row %q: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}
