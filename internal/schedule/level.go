package schedule

import (
	"sort"
	"time"

	"github.com/papapumpkin/gantry/internal/calendar"
	"github.com/papapumpkin/gantry/internal/taskgraph"
)

// level assigns the final Start and End dates: the resource-leveling
// walk plus manual pin overrides. CPM assumes unlimited parallelism;
// here each assignee gets at most one task per calendar day range.
//
// The walk visits tasks in (earliest start, id) order. Because every
// prerequisite finishes strictly before its dependent's earliest start
// in hour space, that order is simultaneously a valid topological order
// of the whole graph and the per-assignee earliest-start tie-break
// order. Handling all assignees in one global walk is what lets a
// leveling delay cascade through dependents on other assignees in a
// single pass.
func level(g *taskgraph.Graph, byID map[string]*ScheduledTask, cpm *cpmResult, cfg Config) {
	order := levelOrder(g, cpm)

	// nextFree tracks the first date each assignee is available.
	nextFree := make(map[string]time.Time)
	// actualEnd tracks each task's scheduled end so dependents cascade
	// from real placements, not from CPM's earliest finish.
	actualEnd := make(map[string]time.Time, len(order))

	for _, id := range order {
		st := byID[id]

		var start time.Time
		if st.Pinned(cfg) {
			start = pinnedStart(st.Task, cfg)
			st.Manual = true
		} else {
			// Dependency lower bound: every prerequisite's actual end.
			start = st.EarliestStart
			for _, dep := range g.Dependencies(id) {
				if end := actualEnd[dep]; end.After(start) {
					start = end
				}
			}
			// Resource lower bound: the assignee's next free date.
			// Leveling only ever delays, never advances.
			if st.Assignee != TeamAssignee {
				if free := nextFree[st.Assignee]; free.After(start) {
					start = free
				}
			}
		}

		start = calendar.AlignForward(start, cfg.Week)
		end := calendar.AddWorkingSpan(start, st.EstimatedHours, cfg.HoursPerDay, cfg.Week)

		st.Start = start
		st.End = end
		st.DelayDays = calendar.WorkingDaysBetween(st.EarliestStart, start, cfg.Week)

		actualEnd[id] = end
		// Pinned tasks still occupy their assignee, so auto tasks are
		// leveled around them.
		if st.Assignee != TeamAssignee {
			if end.After(nextFree[st.Assignee]) {
				nextFree[st.Assignee] = end
			}
		}
	}
}

// levelOrder returns all task ids sorted by (earliest start hours, id).
// Task durations are strictly positive, so a dependency's earliest
// finish, and therefore any dependent's earliest start, is strictly
// after the dependency's own earliest start; the sort can never place a
// dependent before its prerequisite.
func levelOrder(g *taskgraph.Graph, cpm *cpmResult) []string {
	order := g.IDs()
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if cpm.es[a] != cpm.es[b] {
			return cpm.es[a] < cpm.es[b]
		}
		return a < b
	})
	return order
}

// pinnedStart resolves the date a manual task is pinned to: its
// explicit start when present, otherwise the Monday-equivalent of its
// declared week number counted from the project start.
func pinnedStart(t Task, cfg Config) time.Time {
	if t.ManualStart != nil {
		return calendar.Normalize(*t.ManualStart)
	}
	week := t.Week
	if week < 1 {
		week = 1
	}
	return cfg.Start.AddDate(0, 0, 7*(week-1))
}
