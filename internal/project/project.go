// Package project reads and writes gantry project files: a TOML
// document holding the project parameters and its task list. The file
// is the boundary between the surrounding application and the pure
// scheduling core; parsing maps it onto schedule.Task values.
package project

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/gantry/internal/calendar"
	"github.com/papapumpkin/gantry/internal/schedule"
)

// ErrNoProject indicates the project file does not exist.
var ErrNoProject = errors.New("project file not found")

// dateLayout is the calendar-date format used throughout project files.
const dateLayout = "2006-01-02"

// manifest mirrors the on-disk TOML structure.
type manifest struct {
	Project projectBlock `toml:"project"`
	Tasks   []taskBlock  `toml:"task"`
}

type projectBlock struct {
	Name        string   `toml:"name"`
	Start       string   `toml:"start"`
	HoursPerDay float64  `toml:"hours_per_day,omitempty"`
	WorkingDays []string `toml:"working_days,omitempty"`
	Auto        *bool    `toml:"auto,omitempty"`
}

type taskBlock struct {
	ID          string   `toml:"id"`
	Title       string   `toml:"title,omitempty"`
	Hours       float64  `toml:"hours"`
	Assignee    string   `toml:"assignee,omitempty"`
	DependsOn   []string `toml:"depends_on,omitempty"`
	Phase       string   `toml:"phase,omitempty"`
	Difficulty  string   `toml:"difficulty,omitempty"`
	Week        int      `toml:"week,omitempty"`
	ManualStart string   `toml:"manual_start,omitempty"`
}

// Project is a parsed project file.
type Project struct {
	Name   string
	Tasks  []schedule.Task
	Config schedule.Config
}

// weekdayNames maps the file's short day names onto weekdays.
var weekdayNames = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// Load reads and parses the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoProject, path)
		}
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a project file from its raw TOML bytes.
func Parse(data []byte) (*Project, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}

	start, err := parseDate(m.Project.Start)
	if err != nil {
		return nil, fmt.Errorf("project start: %w", err)
	}

	cfg := schedule.DefaultConfig(start)
	if m.Project.HoursPerDay > 0 {
		cfg.HoursPerDay = m.Project.HoursPerDay
	}
	if len(m.Project.WorkingDays) > 0 {
		week := calendar.WorkWeek{}
		for _, name := range m.Project.WorkingDays {
			day, ok := weekdayNames[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("unknown working day %q", name)
			}
			week[day] = true
		}
		cfg.Week = week
	}
	if m.Project.Auto != nil {
		cfg.AutoScheduling = *m.Project.Auto
	}

	tasks := make([]schedule.Task, 0, len(m.Tasks))
	for _, tb := range m.Tasks {
		if tb.ID == "" {
			return nil, errors.New("task with empty id")
		}
		task := schedule.Task{
			ID:             tb.ID,
			Title:          tb.Title,
			EstimatedHours: tb.Hours,
			Assignee:       tb.Assignee,
			DependsOn:      tb.DependsOn,
			Phase:          tb.Phase,
			Difficulty:     tb.Difficulty,
			Week:           tb.Week,
		}
		if task.Assignee == "" {
			task.Assignee = schedule.TeamAssignee
		}
		if tb.ManualStart != "" {
			pin, err := parseDate(tb.ManualStart)
			if err != nil {
				return nil, fmt.Errorf("task %q manual_start: %w", tb.ID, err)
			}
			task.ManualStart = &pin
		}
		tasks = append(tasks, task)
	}

	return &Project{Name: m.Project.Name, Tasks: tasks, Config: cfg}, nil
}

// Save writes the project to path atomically: the TOML is written to a
// temp file in the same directory and renamed over the target.
func Save(path string, p *Project) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing project file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing project file: %w", err)
	}
	return nil
}

// Marshal encodes the project back to TOML.
func Marshal(p *Project) ([]byte, error) {
	auto := p.Config.AutoScheduling
	m := manifest{
		Project: projectBlock{
			Name:        p.Name,
			Start:       p.Config.Start.Format(dateLayout),
			HoursPerDay: p.Config.HoursPerDay,
			WorkingDays: weekdayList(p.Config.Week),
			Auto:        &auto,
		},
	}
	for _, t := range p.Tasks {
		tb := taskBlock{
			ID:         t.ID,
			Title:      t.Title,
			Hours:      t.EstimatedHours,
			Assignee:   t.Assignee,
			DependsOn:  t.DependsOn,
			Phase:      t.Phase,
			Difficulty: t.Difficulty,
			Week:       t.Week,
		}
		if t.ManualStart != nil {
			tb.ManualStart = t.ManualStart.Format(dateLayout)
		}
		m.Tasks = append(m.Tasks, tb)
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding project file: %w", err)
	}
	return data, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing date")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// weekdayList renders a work week back to short day names in Monday-first order.
func weekdayList(w calendar.WorkWeek) []string {
	ordered := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	names := map[time.Weekday]string{
		time.Monday: "mon", time.Tuesday: "tue", time.Wednesday: "wed",
		time.Thursday: "thu", time.Friday: "fri", time.Saturday: "sat",
		time.Sunday: "sun",
	}
	var out []string
	for _, day := range ordered {
		if w[day] {
			out = append(out, names[day])
		}
	}
	return out
}
