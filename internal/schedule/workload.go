package schedule

import (
	"sort"

	"github.com/papapumpkin/gantry/internal/calendar"
)

// AssigneeLoad summarizes one assignee's share of the schedule.
type AssigneeLoad struct {
	Assignee string
	Tasks    int
	Hours    float64
	// BusyDays counts the working days occupied by the assignee's
	// tasks; CriticalTasks counts how many of them are on the critical
	// path.
	BusyDays      int
	CriticalTasks int
	// Utilization is Hours over the assignee's total capacity across
	// the project span (span working days × hours per day). The
	// whole-team sentinel can exceed 1.0 since its work parallelizes.
	Utilization float64
}

// Workload aggregates the schedule per assignee, sorted by assignee
// name. The project span used for utilization runs from the earliest
// scheduled start to the latest scheduled end.
func Workload(sched []ScheduledTask, cfg Config) []AssigneeLoad {
	cfg = cfg.withDefaults()
	if len(sched) == 0 {
		return nil
	}

	spanDays := calendar.WorkingDaysBetween(ProjectStart(sched), ProjectEnd(sched), cfg.Week)
	capacity := float64(spanDays) * cfg.HoursPerDay

	byAssignee := make(map[string]*AssigneeLoad)
	for _, s := range sched {
		load := byAssignee[s.Assignee]
		if load == nil {
			load = &AssigneeLoad{Assignee: s.Assignee}
			byAssignee[s.Assignee] = load
		}
		load.Tasks++
		load.Hours += s.EstimatedHours
		load.BusyDays += calendar.WorkingDaysBetween(s.Start, s.End, cfg.Week)
		if s.Critical {
			load.CriticalTasks++
		}
	}

	out := make([]AssigneeLoad, 0, len(byAssignee))
	for _, load := range byAssignee {
		if capacity > 0 {
			load.Utilization = load.Hours / capacity
		}
		out = append(out, *load)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Assignee < out[j].Assignee })
	return out
}
