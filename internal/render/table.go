package render

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/gantry/internal/calendar"
	"github.com/papapumpkin/gantry/internal/schedule"
)

const tableDateLayout = "2006-01-02"

// Table renders the schedule as an aligned text table. The "end" column
// shows the last occupied day, which is what people expect to read,
// while exports keep the exclusive boundary.
func Table(sched []schedule.ScheduledTask, cfg schedule.Config) string {
	if len(sched) == 0 {
		return "no tasks\n"
	}
	week := cfg.Week
	if week == nil || week.Len() == 0 {
		week = calendar.DefaultWeek()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %-10s %-10s %-10s %5s %7s %s\n",
		"task", "assignee", "start", "end", "days", "slack", "flags")

	for _, st := range sched {
		last := calendar.LastOccupiedDay(st.End, week)
		days := calendar.WorkingDaysBetween(st.Start, st.End, week)

		var flags []string
		if st.Critical {
			flags = append(flags, "critical")
		}
		if st.Manual {
			flags = append(flags, "pinned")
		}
		if st.DelayDays > 0 {
			flags = append(flags, fmt.Sprintf("+%dd", st.DelayDays))
		}

		fmt.Fprintf(&b, "%-16s %-10s %-10s %-10s %5d %6gh %s\n",
			clip(st.ID, 16), clip(st.Assignee, 10),
			st.Start.Format(tableDateLayout), last.Format(tableDateLayout),
			days, st.SlackHours, strings.Join(flags, ","))
	}
	return b.String()
}

// WorkloadTable renders per-assignee load summaries.
func WorkloadTable(loads []schedule.AssigneeLoad) string {
	if len(loads) == 0 {
		return "no tasks\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %5s %7s %9s %9s %5s\n",
		"assignee", "tasks", "hours", "busy days", "critical", "util")
	for _, l := range loads {
		fmt.Fprintf(&b, "%-12s %5d %6gh %9d %9d %4.0f%%\n",
			clip(l.Assignee, 12), l.Tasks, l.Hours, l.BusyDays, l.CriticalTasks, l.Utilization*100)
	}
	return b.String()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
