package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/papapumpkin/gantry/internal/calendar"
)

// TeamAssignee is the whole-team sentinel. Tasks assigned to it are
// exempt from resource leveling: the whole team can parallelize freely.
const TeamAssignee = "team"

// ErrInvalidDuration is matched by InvalidDurationError via errors.Is.
var ErrInvalidDuration = errors.New("invalid task duration")

// ErrNoProjectStart is returned when the configuration carries a zero
// project start date.
var ErrNoProjectStart = errors.New("project start date not set")

// InvalidDurationError reports a task whose estimate is zero or
// negative. The whole batch is rejected rather than clamping the value,
// which would schedule something other than what the user entered.
type InvalidDurationError struct {
	TaskID string
	Hours  float64
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid task duration: task %q has %g estimated hours, want > 0", e.TaskID, e.Hours)
}

func (e *InvalidDurationError) Is(target error) bool {
	return target == ErrInvalidDuration
}

// Task is the unit of work as supplied by the caller. The scheduler
// treats the slice it receives as an immutable snapshot.
type Task struct {
	ID             string
	Title          string
	EstimatedHours float64
	Assignee       string
	DependsOn      []string // finish-to-start prerequisites
	Phase          string   // descriptive only
	Difficulty     string   // descriptive only
	Week           int      // 1-based week slot, used when auto-scheduling is off
	ManualStart    *time.Time
}

// Pinned reports whether the task is manually placed under the given
// configuration: either it carries an explicit start, or the whole
// project runs in week-number mode.
func (t Task) Pinned(cfg Config) bool {
	return t.ManualStart != nil || !cfg.AutoScheduling
}

// Config holds the scheduling parameters for one computation. The
// scheduler never reads an ambient clock; "today" arrives here when a
// caller wants status relative to the current date.
type Config struct {
	Start          time.Time
	Week           calendar.WorkWeek
	HoursPerDay    float64
	AutoScheduling bool
	Today          time.Time // optional; zero means unknown
}

// DefaultConfig returns a Monday-to-Friday, 8-hours-per-day,
// auto-scheduling configuration starting at start.
func DefaultConfig(start time.Time) Config {
	return Config{
		Start:          calendar.Normalize(start),
		Week:           calendar.DefaultWeek(),
		HoursPerDay:    8,
		AutoScheduling: true,
	}
}

// withDefaults fills unset fields so Compute can rely on them.
func (c Config) withDefaults() Config {
	if c.Week == nil || c.Week.Len() == 0 {
		c.Week = calendar.DefaultWeek()
	}
	if c.HoursPerDay <= 0 {
		c.HoursPerDay = 8
	}
	c.Start = calendar.Normalize(c.Start)
	return c
}

// ScheduledTask is the derived, read-only result for one task. Finish
// and end dates are exclusive day boundaries: the occupied range is
// [Start, End) and a dependent may begin on End itself.
type ScheduledTask struct {
	Task

	// CPM forward pass.
	EarliestStart  time.Time
	EarliestFinish time.Time

	// CPM backward pass.
	LatestStart  time.Time
	LatestFinish time.Time

	// SlackHours is how far the start can slip, in working hours,
	// without delaying the project end. Critical is true when it is
	// zero within tolerance.
	SlackHours float64
	Critical   bool

	// Start and End are the dates actually used for display, after
	// leveling and manual overrides.
	Start time.Time
	End   time.Time

	// Manual marks a pinned task. DelayDays counts the working days
	// leveling pushed the task past its earliest start.
	Manual    bool
	DelayDays int
}

// Overlaps reports whether the scheduled ranges of two tasks intersect.
func (s ScheduledTask) Overlaps(o ScheduledTask) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}
