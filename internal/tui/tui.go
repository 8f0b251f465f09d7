// Package tui implements an interactive schedule viewer: a scrollable
// task list with a detail pane and a toggleable Gantt view. It is a
// thin presentation layer; the schedule it shows is computed before the
// program starts and never mutated here.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/gantry/internal/calendar"
	"github.com/papapumpkin/gantry/internal/render"
	"github.com/papapumpkin/gantry/internal/schedule"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Critical key.Binding
	Gantt    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Critical: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "critical only")),
	Gantt:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gantt view")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	styleTitle    = lipgloss.NewStyle().Bold(true)
	styleCursor   = lipgloss.NewStyle().Reverse(true)
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleManual   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleHelp     = lipgloss.NewStyle().Faint(true)
	styleDetail   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the bubbletea model for the schedule viewer.
type Model struct {
	project string
	sched   []schedule.ScheduledTask
	cfg     schedule.Config

	cursor       int
	criticalOnly bool
	showGantt    bool
	width        int
	height       int
}

// New builds a viewer model over a computed schedule.
func New(project string, sched []schedule.ScheduledTask, cfg schedule.Config) Model {
	return Model{project: project, sched: sched, cfg: cfg, width: 100, height: 30}
}

// Run starts the viewer and blocks until the user quits.
func Run(project string, sched []schedule.ScheduledTask, cfg schedule.Config) error {
	_, err := tea.NewProgram(New(project, sched, cfg), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// visible returns the tasks the list currently shows.
func (m Model) visible() []schedule.ScheduledTask {
	if !m.criticalOnly {
		return m.sched
	}
	var out []schedule.ScheduledTask
	for _, st := range m.sched {
		if st.Critical {
			out = append(out, st)
		}
	}
	return out
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Critical):
			m.criticalOnly = !m.criticalOnly
			m.cursor = 0
		case key.Matches(msg, keys.Gantt):
			m.showGantt = !m.showGantt
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	title := m.project
	if title == "" {
		title = "schedule"
	}
	if m.criticalOnly {
		title += " (critical path)"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")

	if m.showGantt {
		b.WriteString(render.Gantt(m.visible(), m.cfg, render.GanttOptions{
			Width:    m.width,
			UseColor: true,
			Today:    m.cfg.Today,
		}))
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(styleHelp.Render("↑/↓ move · c critical only · g gantt · q quit"))
	return b.String()
}

func (m Model) listView() string {
	visible := m.visible()
	if len(visible) == 0 {
		return styleHelp.Render("no tasks")
	}
	cursor := m.cursor
	if cursor >= len(visible) {
		cursor = len(visible) - 1
	}

	week := m.cfg.Week
	if week == nil || week.Len() == 0 {
		week = calendar.DefaultWeek()
	}

	var b strings.Builder
	for i, st := range visible {
		line := fmt.Sprintf("%-16s %-10s %s → %s",
			st.ID, st.Assignee,
			st.Start.Format("Jan 02"),
			calendar.LastOccupiedDay(st.End, week).Format("Jan 02"))

		switch {
		case i == cursor:
			line = styleCursor.Render(line)
		case st.Critical:
			line = styleCritical.Render(line)
		case st.Manual:
			line = styleManual.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(m.detailView(visible[cursor]))
	return b.String()
}

func (m Model) detailView(st schedule.ScheduledTask) string {
	var lines []string
	if st.Title != "" {
		lines = append(lines, st.Title)
	}
	lines = append(lines,
		fmt.Sprintf("estimate  %gh", st.EstimatedHours),
		fmt.Sprintf("earliest  %s → %s", st.EarliestStart.Format("Jan 02"), st.EarliestFinish.Format("Jan 02")),
		fmt.Sprintf("latest    %s → %s", st.LatestStart.Format("Jan 02"), st.LatestFinish.Format("Jan 02")),
		fmt.Sprintf("slack     %gh", st.SlackHours),
	)
	if len(st.DependsOn) > 0 {
		lines = append(lines, "after     "+strings.Join(st.DependsOn, ", "))
	}
	if st.Manual {
		lines = append(lines, "pinned    yes")
	}
	if st.DelayDays > 0 {
		lines = append(lines, fmt.Sprintf("leveled   +%d days", st.DelayDays))
	}
	return styleDetail.Render(strings.Join(lines, "\n"))
}
