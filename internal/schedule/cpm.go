package schedule

import "github.com/papapumpkin/gantry/internal/taskgraph"

// criticalEps absorbs float accumulation when testing slack for zero.
// Hour offsets are sums of task estimates, so anything below a fraction
// of a second of work is rounding noise, not real slack.
const criticalEps = 1e-6

// cpmResult holds the critical-path-method windows for every task, in
// continuous working-hour offsets from the project start. Hour space
// keeps slack exact even for sub-day tasks; quantization to calendar
// days happens only when the offsets are projected onto dates.
type cpmResult struct {
	es, ef map[string]float64 // earliest start / finish
	ls, lf map[string]float64 // latest start / finish
	// end is the project's overall earliest completion: the maximum
	// earliest finish across all tasks.
	end float64
}

func (r *cpmResult) slack(id string) float64 {
	return r.ls[id] - r.es[id]
}

func (r *cpmResult) critical(id string) bool {
	s := r.slack(id)
	return s < criticalEps && s > -criticalEps
}

// runCPM computes the forward and backward passes over the graph.
// hours maps task id to estimated working hours; every value must be
// positive (validated before the passes run).
func runCPM(g *taskgraph.Graph, hours map[string]float64) *cpmResult {
	n := g.Len()
	r := &cpmResult{
		es: make(map[string]float64, n),
		ef: make(map[string]float64, n),
		ls: make(map[string]float64, n),
		lf: make(map[string]float64, n),
	}

	order := g.TopoOrder()

	// Forward pass: a task starts when its last prerequisite finishes.
	// Ties between prerequisites need no extra delay; the max is taken
	// directly.
	for _, id := range order {
		es := 0.0
		for _, dep := range g.Dependencies(id) {
			if ef := r.ef[dep]; ef > es {
				es = ef
			}
		}
		r.es[id] = es
		r.ef[id] = es + hours[id]
	}

	for _, id := range order {
		if r.ef[id] > r.end {
			r.end = r.ef[id]
		}
	}

	// Backward pass in reverse topological order: a task must finish
	// before its earliest-starting dependent, and sinks may run right
	// up to the project end.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		lf := r.end
		for _, dependent := range g.Dependents(id) {
			if ls := r.ls[dependent]; ls < lf {
				lf = ls
			}
		}
		r.lf[id] = lf
		r.ls[id] = lf - hours[id]
	}

	return r
}
