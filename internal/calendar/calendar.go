// Package calendar provides working-day arithmetic for schedule
// computation. It converts hour estimates into spans of calendar days,
// walks dates forward and backward while skipping non-working days, and
// maps continuous working-hour offsets onto calendar dates.
package calendar

import (
	"math"
	"time"
)

// WorkWeek is the set of weekdays on which work happens.
type WorkWeek map[time.Weekday]bool

// DefaultWeek returns the standard Monday through Friday work week.
func DefaultWeek() WorkWeek {
	return WorkWeek{
		time.Monday:    true,
		time.Tuesday:   true,
		time.Wednesday: true,
		time.Thursday:  true,
		time.Friday:    true,
	}
}

// IsWorking reports whether t falls on a working weekday.
func (w WorkWeek) IsWorking(t time.Time) bool {
	return w[t.Weekday()]
}

// Len returns the number of working days per week.
func (w WorkWeek) Len() int {
	n := 0
	for _, on := range w {
		if on {
			n++
		}
	}
	return n
}

// Normalize truncates t to midnight UTC. All schedule dates are
// day-granular; normalizing keeps comparisons exact.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AlignForward returns the first working day on or after t.
func AlignForward(t time.Time, week WorkWeek) time.Time {
	d := Normalize(t)
	for !week.IsWorking(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// AlignBackward returns the last working day on or before t.
func AlignBackward(t time.Time, week WorkWeek) time.Time {
	d := Normalize(t)
	for !week.IsWorking(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// NextWorkingDay returns the first working day strictly after t.
func NextWorkingDay(t time.Time, week WorkWeek) time.Time {
	return AlignForward(Normalize(t).AddDate(0, 0, 1), week)
}

// PrevWorkingDay returns the last working day strictly before t.
func PrevWorkingDay(t time.Time, week WorkWeek) time.Time {
	return AlignBackward(Normalize(t).AddDate(0, 0, -1), week)
}

// AddWorkingDays advances t by n working days, skipping non-working
// days. Negative n walks backward. t itself is aligned forward first, so
// AddWorkingDays(saturday, 0) is the following Monday.
func AddWorkingDays(t time.Time, n int, week WorkWeek) time.Time {
	d := AlignForward(t, week)
	for ; n > 0; n-- {
		d = NextWorkingDay(d, week)
	}
	for ; n < 0; n++ {
		d = PrevWorkingDay(d, week)
	}
	return d
}

// DaysFor returns the number of whole working days needed to absorb
// hours at hoursPerDay capacity. A partial last day still occupies a
// full calendar day slot, and every task occupies at least one day.
func DaysFor(hours, hoursPerDay float64) int {
	if hoursPerDay <= 0 {
		return 1
	}
	days := int(math.Ceil(hours / hoursPerDay))
	if days < 1 {
		days = 1
	}
	return days
}

// AddWorkingSpan advances start by the working days needed to absorb
// hours at hoursPerDay capacity and returns the exclusive end: the first
// working day after the span's last occupied day. The occupied range is
// [AlignForward(start), end).
func AddWorkingSpan(start time.Time, hours, hoursPerDay float64, week WorkWeek) time.Time {
	return AddWorkingDays(start, DaysFor(hours, hoursPerDay), week)
}

// SubWorkingSpan is the inverse of AddWorkingSpan: given an exclusive
// end date, it returns the start of a span absorbing hours at
// hoursPerDay capacity.
func SubWorkingSpan(end time.Time, hours, hoursPerDay float64, week WorkWeek) time.Time {
	return AddWorkingDays(end, -DaysFor(hours, hoursPerDay), week)
}

// LastOccupiedDay returns the final working day covered by a span with
// the given exclusive end, for display purposes.
func LastOccupiedDay(end time.Time, week WorkWeek) time.Time {
	return PrevWorkingDay(end, week)
}

// WorkingDaysBetween counts the working days in [from, to). Returns a
// negative count when to precedes from.
func WorkingDaysBetween(from, to time.Time, week WorkWeek) int {
	a, b := Normalize(from), Normalize(to)
	sign := 1
	if b.Before(a) {
		a, b = b, a
		sign = -1
	}
	n := 0
	for d := a; d.Before(b); d = d.AddDate(0, 0, 1) {
		if week.IsWorking(d) {
			n++
		}
	}
	return sign * n
}

// epsilon absorbs float accumulation when deciding whether an hour
// offset lands exactly on a day boundary.
const epsilon = 1e-9

// DateAtHour returns the working day containing the given working-hour
// offset from start. Offsets that land exactly on a day boundary map to
// the day that begins there, so hour hoursPerDay is the start of the
// second working day.
func DateAtHour(start time.Time, hourOffset, hoursPerDay float64, week WorkWeek) time.Time {
	if hoursPerDay <= 0 {
		return AlignForward(start, week)
	}
	days := int(math.Floor(hourOffset/hoursPerDay + epsilon))
	if days < 0 {
		days = 0
	}
	return AddWorkingDays(start, days, week)
}

// FinishDate returns the exclusive day boundary for a span ending at the
// given working-hour offset from start: the day the offset lands on when
// it is an exact day boundary, otherwise the working day after the day
// containing it. A zero offset still occupies no day and maps to start.
func FinishDate(start time.Time, hourOffset, hoursPerDay float64, week WorkWeek) time.Time {
	if hoursPerDay <= 0 {
		return AlignForward(start, week)
	}
	days := int(math.Ceil(hourOffset/hoursPerDay - epsilon))
	if days < 0 {
		days = 0
	}
	return AddWorkingDays(start, days, week)
}
