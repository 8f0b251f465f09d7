package taskgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is matched by CycleError via errors.Is.
var ErrCycle = errors.New("cycle detected")

// ErrMissingDependency is matched by DanglingError via errors.Is.
var ErrMissingDependency = errors.New("dependency not found")

// ErrSelfDependency is returned when a task lists itself as a dependency.
var ErrSelfDependency = errors.New("self-referencing dependency")

// ErrDuplicateTask is returned when two tasks share an id.
var ErrDuplicateTask = errors.New("duplicate task id")

// CycleError reports a dependency cycle. TaskIDs holds the members of
// one offending cycle in dependency order, starting at the
// alphabetically smallest member.
type CycleError struct {
	TaskIDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: %s", strings.Join(e.TaskIDs, " -> "))
}

// Is reports ErrCycle equivalence so callers can use errors.Is without
// caring about the cycle's members.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// DanglingError reports a dependency reference to a task id that does
// not exist in the set.
type DanglingError struct {
	TaskID    string // the task declaring the dependency
	MissingID string // the id that matched no task
}

func (e *DanglingError) Error() string {
	return fmt.Sprintf("dependency not found: task %q depends on missing task %q", e.TaskID, e.MissingID)
}

func (e *DanglingError) Is(target error) bool {
	return target == ErrMissingDependency
}
