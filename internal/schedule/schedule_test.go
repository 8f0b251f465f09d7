package schedule

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/papapumpkin/gantry/internal/taskgraph"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monday is 2026-03-02, a Monday.
var monday = date(2026, time.March, 2)

// compute schedules tasks with an 8h/day Mon-Fri config starting on
// monday, failing the test on error.
func compute(t *testing.T, tasks []Task) []ScheduledTask {
	t.Helper()
	sched, err := Compute(tasks, DefaultConfig(monday))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return sched
}

// find returns the scheduled task with the given id.
func find(t *testing.T, sched []ScheduledTask, id string) ScheduledTask {
	t.Helper()
	for _, s := range sched {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("task %q not in schedule", id)
	return ScheduledTask{}
}

func TestComputeExampleScenario(t *testing.T) {
	t.Parallel()
	// Three tasks: A (8h, Ana), B (8h, depends on A, Ana),
	// C (4h, depends on A, Beto).
	sched := compute(t, []Task{
		{ID: "a", EstimatedHours: 8, Assignee: "ana"},
		{ID: "b", EstimatedHours: 8, Assignee: "ana", DependsOn: []string{"a"}},
		{ID: "c", EstimatedHours: 4, Assignee: "beto", DependsOn: []string{"a"}},
	})

	tue := date(2026, time.March, 3)
	wed := date(2026, time.March, 4)

	a, b, c := find(t, sched, "a"), find(t, sched, "b"), find(t, sched, "c")

	if !a.Start.Equal(monday) || !a.End.Equal(tue) {
		t.Errorf("a scheduled [%v, %v), want [Mon, Tue)", a.Start, a.End)
	}
	if !b.Start.Equal(tue) || !b.End.Equal(wed) {
		t.Errorf("b scheduled [%v, %v), want [Tue, Wed)", b.Start, b.End)
	}
	// C starts Tuesday too: leveling only applies within an assignee.
	if !c.Start.Equal(tue) {
		t.Errorf("c starts %v, want Tue", c.Start)
	}

	if !a.Critical || !b.Critical {
		t.Error("a and b should be critical")
	}
	if c.Critical {
		t.Error("c should not be critical")
	}
	// C's slack is B's duration minus C's duration.
	if c.SlackHours != 4 {
		t.Errorf("c slack = %vh, want 4h", c.SlackHours)
	}
	if a.SlackHours != 0 || b.SlackHours != 0 {
		t.Errorf("critical slack = %v/%v hours, want 0/0", a.SlackHours, b.SlackHours)
	}
}

func TestComputePreservesInputOrder(t *testing.T) {
	t.Parallel()
	sched := compute(t, []Task{
		{ID: "z", EstimatedHours: 1, Assignee: TeamAssignee},
		{ID: "a", EstimatedHours: 1, Assignee: TeamAssignee},
		{ID: "m", EstimatedHours: 1, Assignee: TeamAssignee, DependsOn: []string{"z"}},
	})
	got := []string{sched[0].ID, sched[1].ID, sched[2].ID}
	if !reflect.DeepEqual(got, []string{"z", "a", "m"}) {
		t.Errorf("output order = %v, want input order", got)
	}
}

func TestComputeIdempotent(t *testing.T) {
	t.Parallel()
	tasks := []Task{
		{ID: "a", EstimatedHours: 8, Assignee: "ana"},
		{ID: "b", EstimatedHours: 12, Assignee: "ana", DependsOn: []string{"a"}},
		{ID: "c", EstimatedHours: 4, Assignee: "beto", DependsOn: []string{"a"}},
		{ID: "d", EstimatedHours: 6, Assignee: "beto", DependsOn: []string{"b", "c"}},
	}
	first := compute(t, tasks)
	for i := 0; i < 5; i++ {
		if again := compute(t, tasks); !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestComputeValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		tasks []Task
		want  error
	}{
		{
			"cycle",
			[]Task{
				{ID: "a", EstimatedHours: 1, DependsOn: []string{"b"}},
				{ID: "b", EstimatedHours: 1, DependsOn: []string{"a"}},
			},
			taskgraph.ErrCycle,
		},
		{
			"dangling dependency",
			[]Task{{ID: "a", EstimatedHours: 1, DependsOn: []string{"ghost"}}},
			taskgraph.ErrMissingDependency,
		},
		{
			"zero duration",
			[]Task{{ID: "a", EstimatedHours: 0}},
			ErrInvalidDuration,
		},
		{
			"negative duration",
			[]Task{{ID: "ok", EstimatedHours: 1}, {ID: "bad", EstimatedHours: -2}},
			ErrInvalidDuration,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sched, err := Compute(tc.tasks, DefaultConfig(monday))
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
			if sched != nil {
				t.Error("got a partial schedule alongside the error")
			}
		})
	}
}

func TestComputeNoProjectStart(t *testing.T) {
	t.Parallel()
	_, err := Compute([]Task{{ID: "a", EstimatedHours: 1}}, Config{})
	if !errors.Is(err, ErrNoProjectStart) {
		t.Errorf("error = %v, want ErrNoProjectStart", err)
	}
}

func TestDependencyOrdering(t *testing.T) {
	t.Parallel()
	tasks := []Task{
		{ID: "spec", EstimatedHours: 16, Assignee: "ana"},
		{ID: "api", EstimatedHours: 24, Assignee: "beto", DependsOn: []string{"spec"}},
		{ID: "ui", EstimatedHours: 24, Assignee: "carla", DependsOn: []string{"spec"}},
		{ID: "integration", EstimatedHours: 8, Assignee: "beto", DependsOn: []string{"api", "ui"}},
		{ID: "docs", EstimatedHours: 4, Assignee: "ana", DependsOn: []string{"integration"}},
	}
	sched := compute(t, tasks)

	for _, s := range sched {
		for _, dep := range s.DependsOn {
			d := find(t, sched, dep)
			if d.End.After(s.Start) {
				t.Errorf("task %q starts %v before dependency %q ends %v", s.ID, s.Start, dep, d.End)
			}
		}
	}
}

func TestNoOverlapPerAssignee(t *testing.T) {
	t.Parallel()
	// Four independent tasks for one assignee, two for the team.
	tasks := []Task{
		{ID: "w1", EstimatedHours: 8, Assignee: "ana"},
		{ID: "w2", EstimatedHours: 4, Assignee: "ana"},
		{ID: "w3", EstimatedHours: 12, Assignee: "ana"},
		{ID: "w4", EstimatedHours: 8, Assignee: "ana"},
		{ID: "t1", EstimatedHours: 8, Assignee: TeamAssignee},
		{ID: "t2", EstimatedHours: 8, Assignee: TeamAssignee},
	}
	sched := compute(t, tasks)

	for i, a := range sched {
		for _, b := range sched[i+1:] {
			if a.Assignee != b.Assignee || a.Assignee == TeamAssignee {
				continue
			}
			if a.Overlaps(b) {
				t.Errorf("%q [%v,%v) overlaps %q [%v,%v) for assignee %q",
					a.ID, a.Start, a.End, b.ID, b.Start, b.End, a.Assignee)
			}
		}
	}

	// The team sentinel is exempt: both team tasks run on day one.
	t1, t2 := find(t, sched, "t1"), find(t, sched, "t2")
	if !t1.Start.Equal(monday) || !t2.Start.Equal(monday) {
		t.Errorf("team tasks start %v and %v, want both on Mon", t1.Start, t2.Start)
	}
}

func TestLevelingTieBreaksByID(t *testing.T) {
	t.Parallel()
	// Same assignee, same earliest start: ascending id wins the slot.
	sched := compute(t, []Task{
		{ID: "beta", EstimatedHours: 8, Assignee: "ana"},
		{ID: "alpha", EstimatedHours: 8, Assignee: "ana"},
	})
	alpha, beta := find(t, sched, "alpha"), find(t, sched, "beta")
	if !alpha.Start.Equal(monday) {
		t.Errorf("alpha starts %v, want Mon", alpha.Start)
	}
	if !beta.Start.Equal(date(2026, time.March, 3)) {
		t.Errorf("beta starts %v, want Tue", beta.Start)
	}
	if beta.DelayDays != 1 {
		t.Errorf("beta DelayDays = %d, want 1", beta.DelayDays)
	}
}

func TestLevelingCascadesAcrossAssignees(t *testing.T) {
	t.Parallel()
	// Leveling delays b (same assignee as a); c depends on b but
	// belongs to another assignee, so it must cascade from b's actual
	// end, not from CPM's earliest finish.
	sched := compute(t, []Task{
		{ID: "a", EstimatedHours: 8, Assignee: "ana"},
		{ID: "b", EstimatedHours: 8, Assignee: "ana"},
		{ID: "c", EstimatedHours: 8, Assignee: "beto", DependsOn: []string{"b"}},
	})

	b, c := find(t, sched, "b"), find(t, sched, "c")
	wed := date(2026, time.March, 4)
	if !b.End.Equal(wed) {
		t.Fatalf("b ends %v, want Wed after leveling delay", b.End)
	}
	// CPM alone would let c start Tuesday; the cascade pushes it to Wednesday.
	if !c.EarliestStart.Equal(date(2026, time.March, 3)) {
		t.Errorf("c CPM earliest start = %v, want Tue", c.EarliestStart)
	}
	if !c.Start.Equal(wed) {
		t.Errorf("c starts %v, want Wed (cascaded from b's actual end)", c.Start)
	}
	if c.DelayDays != 1 {
		t.Errorf("c DelayDays = %d, want 1", c.DelayDays)
	}
}

func TestManualPinStability(t *testing.T) {
	t.Parallel()
	pin := date(2026, time.March, 9) // the following Monday

	tasks := []Task{
		{ID: "a", EstimatedHours: 8, Assignee: "ana"},
		{ID: "pinned", EstimatedHours: 8, Assignee: "ana", DependsOn: []string{"a"}, ManualStart: &pin},
		{ID: "after", EstimatedHours: 8, Assignee: "beto", DependsOn: []string{"pinned"}},
	}
	sched := compute(t, tasks)

	pinned := find(t, sched, "pinned")
	if !pinned.Start.Equal(pin) {
		t.Errorf("pinned starts %v, want its manual start %v", pinned.Start, pin)
	}
	if !pinned.Manual {
		t.Error("pinned task not marked Manual")
	}

	// Dependents cascade from the pinned task's actual end.
	after := find(t, sched, "after")
	if after.Start.Before(pinned.End) {
		t.Errorf("dependent starts %v before pinned end %v", after.Start, pinned.End)
	}

	// Adding unrelated load elsewhere must not move the pin.
	more := append([]Task{
		{ID: "x1", EstimatedHours: 16, Assignee: "ana"},
		{ID: "x2", EstimatedHours: 16, Assignee: "ana"},
	}, tasks...)
	again := find(t, compute(t, more), "pinned")
	if !again.Start.Equal(pin) {
		t.Errorf("pinned moved to %v after unrelated tasks were added", again.Start)
	}
}

func TestManualPinStillGetsAdvisoryCPM(t *testing.T) {
	t.Parallel()
	pin := date(2026, time.March, 9)
	sched := compute(t, []Task{
		{ID: "a", EstimatedHours: 8, Assignee: "ana"},
		{ID: "pinned", EstimatedHours: 8, Assignee: "ana", DependsOn: []string{"a"}, ManualStart: &pin},
	})

	pinned := find(t, sched, "pinned")
	// CPM still reports where the task could have been.
	if !pinned.EarliestStart.Equal(date(2026, time.March, 3)) {
		t.Errorf("pinned EarliestStart = %v, want Tue from CPM", pinned.EarliestStart)
	}
	if !pinned.Critical {
		t.Error("pinned should still be reported critical by CPM")
	}
}

func TestWholeProjectManualMode(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig(monday)
	cfg.AutoScheduling = false

	sched, err := Compute([]Task{
		{ID: "w1", EstimatedHours: 8, Assignee: "ana", Week: 1},
		{ID: "w2", EstimatedHours: 8, Assignee: "ana", Week: 2, DependsOn: []string{"w1"}},
		{ID: "w0", EstimatedHours: 8, Assignee: "beto"}, // missing week defaults to 1
	}, cfg)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if got := find(t, sched, "w1").Start; !got.Equal(monday) {
		t.Errorf("week 1 task starts %v, want project start", got)
	}
	if got := find(t, sched, "w2").Start; !got.Equal(date(2026, time.March, 9)) {
		t.Errorf("week 2 task starts %v, want Mon of week 2", got)
	}
	if got := find(t, sched, "w0").Start; !got.Equal(monday) {
		t.Errorf("weekless task starts %v, want week 1 fallback", got)
	}
	for _, s := range sched {
		if !s.Manual {
			t.Errorf("task %q not marked Manual in manual mode", s.ID)
		}
	}
}

func TestManualStartOnWeekendAlignsForward(t *testing.T) {
	t.Parallel()
	saturday := date(2026, time.March, 7)
	sched := compute(t, []Task{
		{ID: "a", EstimatedHours: 8, Assignee: "ana", ManualStart: &saturday},
	})
	if got := find(t, sched, "a").Start; !got.Equal(date(2026, time.March, 9)) {
		t.Errorf("weekend pin starts %v, want next Monday", got)
	}
}

func TestCriticalPathConnectivity(t *testing.T) {
	t.Parallel()
	// Diamond with one long branch: the critical path must run
	// root → long branch → sink and span the whole project.
	sched := compute(t, []Task{
		{ID: "root", EstimatedHours: 8, Assignee: TeamAssignee},
		{ID: "long", EstimatedHours: 24, Assignee: "ana", DependsOn: []string{"root"}},
		{ID: "short", EstimatedHours: 8, Assignee: "beto", DependsOn: []string{"root"}},
		{ID: "sink", EstimatedHours: 8, Assignee: TeamAssignee, DependsOn: []string{"long", "short"}},
	})

	want := []string{"root", "long", "sink"}
	if got := CriticalPath(sched); !reflect.DeepEqual(got, want) {
		t.Errorf("CriticalPath = %v, want %v", got, want)
	}

	// Total critical duration equals the project span.
	var total float64
	for _, id := range want {
		total += find(t, sched, id).EstimatedHours
	}
	if total != 40 {
		t.Errorf("critical duration = %vh, want 40h", total)
	}
	if got := find(t, sched, "short").SlackHours; got != 16 {
		t.Errorf("short branch slack = %vh, want 16h", got)
	}
}

func TestEarliestStartMonotoneInDepth(t *testing.T) {
	t.Parallel()
	sched := compute(t, []Task{
		{ID: "a", EstimatedHours: 4, Assignee: TeamAssignee},
		{ID: "b", EstimatedHours: 4, Assignee: TeamAssignee, DependsOn: []string{"a"}},
		{ID: "c", EstimatedHours: 4, Assignee: TeamAssignee, DependsOn: []string{"b"}},
	})
	for _, s := range sched {
		for _, dep := range s.DependsOn {
			d := find(t, sched, dep)
			if s.EarliestStart.Before(d.EarliestStart) {
				t.Errorf("task %q earliest start %v precedes dependency %q's %v",
					s.ID, s.EarliestStart, dep, d.EarliestStart)
			}
		}
	}
}

func TestSubDayTasksOccupyWholeDaySlots(t *testing.T) {
	t.Parallel()
	// Two 2h tasks for the same assignee: no intra-day packing, the
	// second occupies the next day slot.
	sched := compute(t, []Task{
		{ID: "a", EstimatedHours: 2, Assignee: "ana"},
		{ID: "b", EstimatedHours: 2, Assignee: "ana"},
	})
	if got := find(t, sched, "b").Start; !got.Equal(date(2026, time.March, 3)) {
		t.Errorf("second sub-day task starts %v, want next day slot", got)
	}
}
