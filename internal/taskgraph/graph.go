// Package taskgraph validates a task set's dependency relation and
// builds the adjacency structure the scheduling passes run over. It
// supports topological ordering, cycle extraction, and dangling
// reference detection. Construction is pure: on any validation failure
// no partial graph is returned.
package taskgraph

import (
	"fmt"
	"sort"
)

// Node is the minimal view of a task the graph needs: its id and the
// ids it depends on. Dependencies are finish-to-start.
type Node struct {
	ID        string
	DependsOn []string
}

// Graph is a validated dependency DAG over a task set.
type Graph struct {
	ids []string // input order, preserved
	// deps maps task id → direct dependency ids, sorted.
	deps map[string][]string
	// dependents maps task id → direct dependent ids, sorted.
	dependents map[string][]string
	order      []string // topological order, dependencies first
}

// Build validates nodes and constructs the graph. It fails with
// ErrDuplicateTask, ErrSelfDependency, a DanglingError naming the
// missing id and the referencing task, or a CycleError listing the
// members of a dependency cycle.
func Build(nodes []Node) (*Graph, error) {
	g := &Graph{
		ids:        make([]string, 0, len(nodes)),
		deps:       make(map[string][]string, len(nodes)),
		dependents: make(map[string][]string, len(nodes)),
	}

	for _, n := range nodes {
		if _, exists := g.deps[n.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, n.ID)
		}
		g.ids = append(g.ids, n.ID)
		g.deps[n.ID] = nil
		g.dependents[n.ID] = nil
	}

	for _, n := range nodes {
		seen := make(map[string]bool, len(n.DependsOn))
		for _, dep := range n.DependsOn {
			if dep == n.ID {
				return nil, fmt.Errorf("%w: %s", ErrSelfDependency, n.ID)
			}
			if _, ok := g.deps[dep]; !ok {
				return nil, &DanglingError{TaskID: n.ID, MissingID: dep}
			}
			if seen[dep] {
				continue
			}
			seen[dep] = true
			g.deps[n.ID] = append(g.deps[n.ID], dep)
			g.dependents[dep] = append(g.dependents[dep], n.ID)
		}
	}

	for id := range g.deps {
		sort.Strings(g.deps[id])
	}
	for id := range g.dependents {
		sort.Strings(g.dependents[id])
	}

	order, err := g.topoSort()
	if err != nil {
		return nil, err
	}
	g.order = order
	return g, nil
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.ids)
}

// Has reports whether id is a task in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.deps[id]
	return ok
}

// IDs returns the task ids in their original input order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// TopoOrder returns task ids in topological order: every task appears
// after all of its dependencies. Ties break alphabetically for
// determinism.
func (g *Graph) TopoOrder() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Dependencies returns the direct dependency ids of a task, sorted.
func (g *Graph) Dependencies(id string) []string {
	return g.deps[id]
}

// Dependents returns the direct dependent ids of a task, sorted.
func (g *Graph) Dependents(id string) []string {
	return g.dependents[id]
}

// Roots returns ids of tasks with no dependencies, sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.ids {
		if len(g.deps[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// Leaves returns ids of tasks with no dependents, sorted.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, id := range g.ids {
		if len(g.dependents[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// topoSort runs Kahn's algorithm over the dependency edges. The ready
// queue is kept alphabetically sorted so the order is deterministic.
// When not every task can be ordered, the offending cycle is extracted
// and returned as a CycleError.
func (g *Graph) topoSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.ids))
	for id, deps := range g.deps {
		inDegree[id] = len(deps)
	}

	var queue []string
	for _, id := range g.ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	order := make([]string, 0, len(g.ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		var freed []string
		for _, dependent := range g.dependents[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				freed = append(freed, dependent)
			}
		}
		if len(freed) > 0 {
			sort.Strings(freed)
			queue = append(queue, freed...)
		}
	}

	if len(order) != len(g.ids) {
		return nil, &CycleError{TaskIDs: g.findCycle()}
	}
	return order, nil
}

// findCycle walks dependency edges depth-first until it revisits a node
// on the current path, then returns that cycle's members in dependency
// order rotated to start at the alphabetically smallest id. Build only
// calls it after Kahn's algorithm has proven a cycle exists.
func (g *Graph) findCycle() []string {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // fully explored
	)
	color := make(map[string]int, len(g.ids))
	var path []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		for _, dep := range g.deps[id] {
			switch color[dep] {
			case gray:
				// Found the back edge; slice the cycle out of the path.
				for i, p := range path {
					if p == dep {
						cycle = append(cycle, path[i:]...)
						return true
					}
				}
			case white:
				if visit(dep) {
					return true
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	sorted := make([]string, len(g.ids))
	copy(sorted, g.ids)
	sort.Strings(sorted)
	for _, id := range sorted {
		if color[id] == white && visit(id) {
			break
		}
	}

	return rotateToSmallest(cycle)
}

// rotateToSmallest rotates a cycle so its alphabetically smallest member
// comes first, keeping the relative order. Gives cycles a canonical form
// for error messages and tests.
func rotateToSmallest(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	min := 0
	for i, id := range cycle {
		if id < cycle[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}
