package tsp

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// Sentinel errors. Only pre-condition violations on the scenario or the
// options are reported; per-branch infeasibility is absorbed by pruning.
var (
	// ErrNoCities is returned for an empty city set or a nil cost matrix.
	ErrNoCities = errors.New("tsp: scenario has no cities")

	// ErrDuplicateCity is returned when two cities report the same index.
	ErrDuplicateCity = errors.New("tsp: duplicate city index")

	// ErrCityIndex is returned when a city index (or a route entry) is outside [0,n).
	ErrCityIndex = errors.New("tsp: city index out of range")

	// ErrNegativeCost is returned when a directed cost is negative.
	ErrNegativeCost = errors.New("tsp: negative edge cost")

	// ErrNaNCost is returned when a directed cost is NaN.
	ErrNaNCost = errors.New("tsp: NaN edge cost")

	// ErrNonSquare is returned when the cost matrix is not n×n.
	ErrNonSquare = errors.New("tsp: cost matrix is not square")

	// ErrSeedRoute is returned when the initial incumbent is neither a complete
	// tour whose cost matches the matrix nor the infeasible solution.
	ErrSeedRoute = errors.New("tsp: initial incumbent is not a valid tour")

	// ErrInvalidOptions is returned for negative budgets, negative/NaN Eps,
	// unknown priorities or an out-of-range start city.
	ErrInvalidOptions = errors.New("tsp: invalid options")
)

// DefaultEps is the pruning tolerance: a state is discarded when its bound is
// within Eps of the incumbent cost (or above it).
const DefaultEps = 1e-9

// DefaultTimeBudget matches the customary one-minute search window.
const DefaultTimeBudget = 60 * time.Second

// Unlimited disables the deadline. The search then stops only when the queue
// is exhausted, which for large n may take astronomically long.
const Unlimited = time.Duration(math.MaxInt64)

// Priority selects the comparator key used to order the search queue.
// Keys are computed once, when a state is pushed, and never change afterwards.
type Priority int

const (
	// BoundPerDepth orders by bound/depth: bounds achieved with more
	// committed cities look cheaper per city, so deep branches are not starved.
	BoundPerDepth Priority = iota

	// DepthPenalized orders by bound − 2·depth·|remaining|, a stronger push
	// toward deep states while many cities are still open.
	DepthPenalized

	// PureBound orders by the bound alone (classical best-first).
	PureBound
)

// depthPenalty is the weight applied per (depth × remaining) unit in DepthPenalized.
const depthPenalty = 2.0

var priorityNames = [...]string{
	BoundPerDepth:  "bound-per-depth",
	DepthPenalized: "depth-penalized",
	PureBound:      "pure-bound",
}

// String returns the canonical flag/config spelling.
func (p Priority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return fmt.Sprintf("priority(%d)", int(p))
	}

	return priorityNames[p]
}

// valid reports whether p names a known comparator.
func (p Priority) valid() bool { return p >= 0 && int(p) < len(priorityNames) }

// ParsePriority maps a canonical name back to a Priority.
func ParsePriority(s string) (Priority, error) {
	var i int
	for i = range priorityNames {
		if priorityNames[i] == s {
			return Priority(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown priority %q", ErrInvalidOptions, s)
}

// key computes the comparator value for a state snapshot.
func (p Priority) key(bound float64, depth, remaining int) float64 {
	switch p {
	case DepthPenalized:
		return bound - depthPenalty*float64(depth)*float64(remaining)
	case PureBound:
		return bound
	default:
		if depth <= 0 {
			return bound
		}
		return bound / float64(depth)
	}
}

// Options configures one search.
type Options struct {
	// TimeBudget is the wall-clock window measured from the moment SolveMatrix
	// (or Solve) is entered. 0 returns the seed immediately; Unlimited
	// disables the deadline; negative values are rejected.
	TimeBudget time.Duration

	// Priority selects the queue comparator (default BoundPerDepth).
	Priority Priority

	// Start is the city every explored route begins with (default 0).
	Start int

	// EagerPrune drops children whose provisional bound already meets the
	// incumbent instead of queueing them. They are counted as pruned.
	EagerPrune bool

	// Eps is the pruning tolerance (see DefaultEps). Must be ≥ 0.
	Eps float64

	// Logger receives debug-level progress (incumbent updates, summary).
	// nil discards all output.
	Logger *log.Logger
}

// DefaultOptions returns the reference configuration: a 60s budget,
// BoundPerDepth ordering, start city 0, lazy pruning and DefaultEps.
func DefaultOptions() Options {
	return Options{
		TimeBudget: DefaultTimeBudget,
		Priority:   BoundPerDepth,
		Start:      0,
		EagerPrune: false,
		Eps:        DefaultEps,
	}
}

// Stats are the search counters reported with every result.
type Stats struct {
	// StatesCreated counts child states generated by expansion (the root is not counted).
	StatesCreated int

	// Pruned counts states discarded because their bound met the incumbent.
	Pruned int

	// MaxQueueSize is the largest number of simultaneously queued states.
	MaxQueueSize int

	// IncumbentUpdates counts strictly improving leaves accepted during search.
	IncumbentUpdates int
}

// SearchResult is the outcome of one search.
type SearchResult struct {
	// Cost of the returned tour, or +Inf when no feasible tour is known.
	Cost float64

	// Tour lists city indices in visiting order (implicitly closed).
	// Empty when Cost is +Inf.
	Tour []int

	// Route is Tour mapped back to the caller's cities. Only Solve fills it.
	Route []City

	// Elapsed is the wall-clock time spent inside the call.
	Elapsed time.Duration

	// TimedOut is true when the deadline stopped the search before the queue emptied.
	TimedOut bool

	// Priority echoes the comparator that was used.
	Priority Priority

	Stats
}

// Feasible reports whether the result holds a finite-cost tour.
func (r SearchResult) Feasible() bool { return len(r.Tour) > 0 && !math.IsInf(r.Cost, 1) }
