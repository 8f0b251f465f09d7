// Package schedule computes concrete start and end dates for a set of
// interdependent tasks: critical-path-method passes over the dependency
// graph, resource leveling per assignee, and manual pin overrides. The
// computation is a pure function of (tasks, config); it holds no state
// between invocations and never reads the ambient clock.
package schedule

import (
	"sort"
	"time"

	"github.com/papapumpkin/gantry/internal/calendar"
	"github.com/papapumpkin/gantry/internal/taskgraph"
)

// Compute schedules the task set under cfg. The returned slice
// preserves the input order. All validation failures (cycles, dangling
// dependency references, non-positive estimates) are reported before
// any scheduling math runs; no partial schedule is ever returned.
func Compute(tasks []Task, cfg Config) ([]ScheduledTask, error) {
	cfg = cfg.withDefaults()
	if cfg.Start.IsZero() {
		return nil, ErrNoProjectStart
	}

	for _, t := range tasks {
		if t.EstimatedHours <= 0 {
			return nil, &InvalidDurationError{TaskID: t.ID, Hours: t.EstimatedHours}
		}
	}

	nodes := make([]taskgraph.Node, len(tasks))
	hours := make(map[string]float64, len(tasks))
	for i, t := range tasks {
		nodes[i] = taskgraph.Node{ID: t.ID, DependsOn: t.DependsOn}
		hours[t.ID] = t.EstimatedHours
	}
	g, err := taskgraph.Build(nodes)
	if err != nil {
		return nil, err
	}

	cpm := runCPM(g, hours)

	byID := make(map[string]*ScheduledTask, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = &ScheduledTask{
			Task:           t,
			EarliestStart:  calendar.DateAtHour(cfg.Start, cpm.es[t.ID], cfg.HoursPerDay, cfg.Week),
			EarliestFinish: calendar.FinishDate(cfg.Start, cpm.ef[t.ID], cfg.HoursPerDay, cfg.Week),
			LatestStart:    calendar.DateAtHour(cfg.Start, cpm.ls[t.ID], cfg.HoursPerDay, cfg.Week),
			LatestFinish:   calendar.FinishDate(cfg.Start, cpm.lf[t.ID], cfg.HoursPerDay, cfg.Week),
			SlackHours:     cpm.slack(t.ID),
			Critical:       cpm.critical(t.ID),
		}
	}

	level(g, byID, cpm, cfg)

	out := make([]ScheduledTask, len(tasks))
	for i, t := range tasks {
		out[i] = *byID[t.ID]
	}
	return out, nil
}

// CriticalPath returns the ids of critical tasks ordered by earliest
// start, the path the Gantt view highlights.
func CriticalPath(sched []ScheduledTask) []string {
	var critical []ScheduledTask
	for _, s := range sched {
		if s.Critical {
			critical = append(critical, s)
		}
	}
	sort.Slice(critical, func(i, j int) bool {
		if !critical[i].EarliestStart.Equal(critical[j].EarliestStart) {
			return critical[i].EarliestStart.Before(critical[j].EarliestStart)
		}
		return critical[i].ID < critical[j].ID
	})
	ids := make([]string, len(critical))
	for i, s := range critical {
		ids[i] = s.ID
	}
	return ids
}

// ProjectEnd returns the latest scheduled end across all tasks, or the
// zero time for an empty schedule.
func ProjectEnd(sched []ScheduledTask) time.Time {
	var end time.Time
	for _, s := range sched {
		if s.End.After(end) {
			end = s.End
		}
	}
	return end
}

// ProjectStart returns the earliest scheduled start across all tasks,
// or the zero time for an empty schedule.
func ProjectStart(sched []ScheduledTask) time.Time {
	var start time.Time
	for _, s := range sched {
		if start.IsZero() || s.Start.Before(start) {
			start = s.Start
		}
	}
	return start
}
