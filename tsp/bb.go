// Package tsp - Branch-and-Bound engine (best-first, reduced-cost-matrix bounds).
//
// The engine explores partial routes that all begin at Options.Start.
// Each queued state carries a provisional bound; the bound is tightened by
// ReduceMatrix only when the state is popped, so children are cheap to create
// and states that are never popped never pay for their reduction.
//
// Loop:
//  1. Pop the minimum-key state (ties: earlier push first).
//  2. bound += ReduceMatrix(state.reduced).
//  3. Prune if bound ≥ incumbent − eps.
//  4. Leaf (no remaining city): build the tour and offer it to the incumbent.
//  5. Otherwise spawn one child per remaining city, in ascending index order.
//
// The deadline is checked before every pop and before every child, so one
// iteration overshoots the budget by at most one O(n²) matrix copy.
//
// Complexity:
//   - Worst case exponential in n; each expansion costs O(n³)
//     (n children × O(n²) clone) plus O(n²) reduction at pop time.
//   - Memory: O(n²) per queued state.
package tsp

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/tourbnb/matrix"
)

// bbEngine holds all search data and policies for one run.
type bbEngine struct {
	// Configuration / policy
	dist       *matrix.Dense
	start      int
	eps        float64
	eagerPrune bool
	priority   Priority
	logger     *log.Logger

	// Time budget
	useDeadline bool
	deadline    time.Time

	// Search data
	queue     *stateQueue
	incumbent *Incumbent
	stats     Stats
	timedOut  bool

	// observe, when set, sees every popped state after its reduction.
	observe func(s *searchState)
}

// newEngine wires an engine for dist. Inputs must be validated already.
func newEngine(dist *matrix.Dense, seed Solution, opts Options, t0 time.Time) *bbEngine {
	e := &bbEngine{
		dist:       dist,
		start:      opts.Start,
		eps:        opts.Eps,
		eagerPrune: opts.EagerPrune,
		priority:   opts.Priority,
		logger:     opts.Logger,
		queue:      newStateQueue(opts.Priority),
		incumbent:  NewIncumbent(seed),
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.useDeadline, e.deadline = deadlineFor(t0, opts.TimeBudget)

	return e
}

// deadlineFor converts a budget into an absolute deadline.
// Unlimited, or a budget that would overflow time.Time, disables it.
func deadlineFor(t0 time.Time, budget time.Duration) (bool, time.Time) {
	if budget == Unlimited {
		return false, time.Time{}
	}
	d := t0.Add(budget)
	if d.Before(t0) {
		return false, time.Time{}
	}

	return true, d
}

// expired reports (and latches) whether the deadline has passed.
// A zero budget expires on the very first check.
func (e *bbEngine) expired() bool {
	if !e.useDeadline {
		return false
	}
	if !time.Now().Before(e.deadline) {
		e.timedOut = true
	}

	return e.timedOut
}

// run executes the search loop until the queue empties or time runs out.
func (e *bbEngine) run() {
	e.push(rootState(e.dist, e.start))

	var s *searchState
	for e.queue.len() > 0 {
		if e.expired() {
			return
		}
		s = e.queue.pop()
		s.bound += ReduceMatrix(s.reduced)
		if e.observe != nil {
			e.observe(s)
		}

		if e.prunable(s.bound) {
			e.stats.Pruned++
			continue
		}
		if len(s.remaining) == 0 {
			e.accept(s)
			continue
		}
		e.expand(s)
	}
}

// prunable reports whether a state with this bound cannot beat the incumbent.
// An infinite bound is always prunable, even against an infinite incumbent.
func (e *bbEngine) prunable(bound float64) bool {
	return bound >= e.incumbent.Cost()-e.eps
}

// accept turns a complete route into a Solution and offers it to the incumbent.
func (e *bbEngine) accept(s *searchState) {
	sol := Solution{Route: s.route, Cost: RouteCost(e.dist, s.route)}
	if !e.incumbent.TryUpdate(sol) {
		return
	}
	e.stats.IncumbentUpdates++
	e.logger.Debug("incumbent improved",
		"cost", sol.Cost,
		"updates", e.stats.IncumbentUpdates,
		"states", e.stats.StatesCreated,
		"queue", e.queue.len(),
	)
}

// expand spawns one child per remaining city, ascending by index.
func (e *bbEngine) expand(s *searchState) {
	var (
		k int
		c *searchState
	)
	for k = range s.remaining {
		if e.expired() {
			return
		}
		c = s.child(k)
		e.stats.StatesCreated++
		if e.eagerPrune && e.prunable(c.bound) {
			e.stats.Pruned++
			continue
		}
		e.push(c)
	}
}

// push enqueues s and tracks the queue high-water mark.
func (e *bbEngine) push(s *searchState) {
	e.queue.push(s)
	if l := e.queue.len(); l > e.stats.MaxQueueSize {
		e.stats.MaxQueueSize = l
	}
}

// result packages the incumbent and counters.
func (e *bbEngine) result(t0 time.Time) SearchResult {
	best := e.incumbent.Best()
	res := SearchResult{
		Cost:     best.Cost,
		Elapsed:  time.Since(t0),
		TimedOut: e.timedOut,
		Priority: e.priority,
		Stats:    e.stats,
	}
	if !math.IsInf(best.Cost, 1) && len(best.Route) > 0 {
		res.Tour = RotateRoute(best.Route, e.start)
	}
	e.logger.Debug("search finished",
		"cost", res.Cost,
		"elapsed", res.Elapsed,
		"timed_out", res.TimedOut,
		"states", res.StatesCreated,
		"pruned", res.Pruned,
		"max_queue", res.MaxQueueSize,
		"updates", res.IncumbentUpdates,
	)

	return res
}
