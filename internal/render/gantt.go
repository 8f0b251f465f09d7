// Package render draws computed schedules for the terminal: a
// day-grid Gantt chart and plain tables. Rendering is presentation
// only; every date it shows comes straight from the scheduler's output.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/gantry/internal/calendar"
	"github.com/papapumpkin/gantry/internal/schedule"
)

// GanttOptions controls Gantt rendering.
type GanttOptions struct {
	// Width is the available terminal width in columns; 0 means 100.
	Width int

	// UseColor controls whether styled output is emitted.
	UseColor bool

	// Today, when non-zero, draws a marker on that column.
	Today time.Time
}

var (
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleBar      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleManual   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleDim      = lipgloss.NewStyle().Faint(true)
)

const (
	cellBusy   = "█"
	cellPin    = "◆"
	cellEmpty  = "·"
	cellToday  = "¦"
	labelWidth = 14
)

// Gantt renders the schedule as one row per task over a working-day
// grid. Critical tasks are highlighted, manual pins are marked at their
// first cell, and the label column carries the task id.
func Gantt(sched []schedule.ScheduledTask, cfg schedule.Config, opts GanttOptions) string {
	if len(sched) == 0 {
		return ""
	}
	width := opts.Width
	if width <= 0 {
		width = 100
	}

	week := cfg.Week
	if week == nil || week.Len() == 0 {
		week = calendar.DefaultWeek()
	}

	start := schedule.ProjectStart(sched)
	end := schedule.ProjectEnd(sched)
	days := axis(start, end, week, width-labelWidth-1)

	var b strings.Builder
	b.WriteString(header(days, opts))
	b.WriteByte('\n')

	for _, st := range sched {
		b.WriteString(row(st, days, opts))
		b.WriteByte('\n')
	}
	return b.String()
}

// axis lists the working days from start to end (exclusive), capped at
// the column budget.
func axis(start, end time.Time, week calendar.WorkWeek, maxCols int) []time.Time {
	var days []time.Time
	for d := calendar.AlignForward(start, week); d.Before(end); d = calendar.NextWorkingDay(d, week) {
		days = append(days, d)
		if maxCols > 0 && len(days) >= maxCols {
			break
		}
	}
	return days
}

// header renders the date axis: day-of-month per column, with the month
// abbreviation in the label gutter.
func header(days []time.Time, opts GanttOptions) string {
	if len(days) == 0 {
		return ""
	}
	label := fmt.Sprintf("%-*s", labelWidth, days[0].Format("Jan 2006"))
	var cells strings.Builder
	for _, d := range days {
		// One column per day: the day-of-month's last digit keeps the
		// axis aligned with the single-rune bar cells.
		cells.WriteString(fmt.Sprintf("%d", d.Day()%10))
	}
	line := label + " " + cells.String()
	if opts.UseColor {
		return styleDim.Render(line)
	}
	return line
}

func row(st schedule.ScheduledTask, days []time.Time, opts GanttOptions) string {
	label := st.ID
	if len(label) > labelWidth {
		label = label[:labelWidth-1] + "…"
	}
	label = fmt.Sprintf("%-*s", labelWidth, label)

	var cells strings.Builder
	first := true
	for _, d := range days {
		busy := !d.Before(st.Start) && d.Before(st.End)
		today := !opts.Today.IsZero() && calendar.Normalize(opts.Today).Equal(d)

		var cell string
		switch {
		case busy && st.Manual && first:
			cell = cellPin
		case busy:
			cell = cellBusy
		case today:
			cell = cellToday
		default:
			cell = cellEmpty
		}
		if busy {
			first = false
		}

		if opts.UseColor {
			switch {
			case busy && st.Critical:
				cell = styleCritical.Render(cell)
			case busy && st.Manual:
				cell = styleManual.Render(cell)
			case busy:
				cell = styleBar.Render(cell)
			default:
				cell = styleDim.Render(cell)
			}
		}
		cells.WriteString(cell)
	}

	return label + " " + cells.String()
}
