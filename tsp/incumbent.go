package tsp

// Incumbent tracks the best complete tour known so far (BSSF).
// It is owned by a single search and is not safe for concurrent use.
type Incumbent struct {
	best Solution
}

// NewIncumbent starts tracking from seed. The seed route is copied.
func NewIncumbent(seed Solution) *Incumbent {
	return &Incumbent{best: Solution{Route: CopyRoute(seed.Route), Cost: seed.Cost}}
}

// Best returns the current incumbent. The route is a copy.
func (b *Incumbent) Best() Solution {
	return Solution{Route: CopyRoute(b.best.Route), Cost: b.best.Cost}
}

// Cost returns the current incumbent cost without copying the route.
func (b *Incumbent) Cost() float64 { return b.best.Cost }

// TryUpdate replaces the incumbent iff c is strictly cheaper.
// Equal-cost tours never replace the current one.
func (b *Incumbent) TryUpdate(c Solution) bool {
	if !(c.Cost < b.best.Cost) {
		return false
	}
	b.best = Solution{Route: CopyRoute(c.Route), Cost: c.Cost}

	return true
}
