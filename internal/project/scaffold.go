package project

import (
	"time"

	"github.com/papapumpkin/gantry/internal/schedule"
)

// Scaffold returns a small example project used by `gantry init`,
// starting on the given date.
func Scaffold(name string, start time.Time) *Project {
	return &Project{
		Name: name,
		Config: schedule.DefaultConfig(start),
		Tasks: []schedule.Task{
			{
				ID:             "research",
				Title:          "Research and requirements",
				EstimatedHours: 16,
				Assignee:       schedule.TeamAssignee,
				Phase:          "analysis",
				Difficulty:     "medium",
				Week:           1,
			},
			{
				ID:             "design",
				Title:          "System design",
				EstimatedHours: 12,
				Assignee:       "alex",
				DependsOn:      []string{"research"},
				Phase:          "design",
				Difficulty:     "hard",
				Week:           1,
			},
			{
				ID:             "build",
				Title:          "Implementation",
				EstimatedHours: 32,
				Assignee:       "alex",
				DependsOn:      []string{"design"},
				Phase:          "build",
				Difficulty:     "hard",
				Week:           2,
			},
			{
				ID:             "review",
				Title:          "Peer review",
				EstimatedHours: 8,
				Assignee:       "sam",
				DependsOn:      []string{"build"},
				Phase:          "build",
				Difficulty:     "medium",
				Week:           3,
			},
			{
				ID:             "present",
				Title:          "Final presentation",
				EstimatedHours: 4,
				Assignee:       schedule.TeamAssignee,
				DependsOn:      []string{"review"},
				Phase:          "delivery",
				Difficulty:     "easy",
				Week:           3,
			},
		},
	}
}
