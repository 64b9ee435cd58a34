// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package.
package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// epsCost is the tolerance for comparing rounded tour costs.
	epsCost = 1e-6

	// seedDet is a deterministic seed for random instances.
	seedDet = int64(42)
)

var inf = math.Inf(1)

// -----------------------------------------------------------------------------
// Instance builders
// -----------------------------------------------------------------------------

// denseFrom copies a literal into a *matrix.Dense.
func denseFrom(t testing.TB, a [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(len(a), len(a[0]))
	require.NoError(t, err)
	var i, j int
	for i = range a {
		for j = range a[i] {
			require.NoError(t, m.Set(i, j, a[i][j]))
		}
	}

	return m
}

// fixture3 is the 3-city instance whose optimum 0→1→2→0 costs 4159.
// The reverse direction costs 4300.
func fixture3(t testing.TB) *matrix.Dense {
	return denseFrom(t, [][]float64{
		{inf, 1200, 1600},
		{1300, inf, 1459},
		{1500, 1400, inf},
	})
}

// randomDense builds an n×n instance with integer costs in [1,1000] and a
// fraction of edges removed (+Inf). Diagonal is +Inf.
func randomDense(t testing.TB, rng *rand.Rand, n int, missing float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFilled(n, n, inf)
	require.NoError(t, err)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j || rng.Float64() < missing {
				continue
			}
			require.NoError(t, m.Set(i, j, float64(1+rng.Intn(1000))))
		}
	}

	return m
}

// gridCity is a tsp.City on the plane with an optional uphill surcharge,
// so costs are asymmetric when elev differs.
type gridCity struct {
	idx        int
	x, y, elev float64
}

func (c gridCity) Index() int { return c.idx }

func (c gridCity) CostTo(other tsp.City) float64 {
	o := other.(gridCity)
	d := math.Hypot(o.x-c.x, o.y-c.y)
	up := o.elev - c.elev
	if up < 0 {
		up = 0
	}

	return math.Ceil(1000 * (d + up))
}

// randomCities scatters n cities in the unit square.
func randomCities(rng *rand.Rand, n int, withElevation bool) []tsp.City {
	out := make([]tsp.City, n)
	var i int
	for i = 0; i < n; i++ {
		c := gridCity{idx: i, x: rng.Float64(), y: rng.Float64()}
		if withElevation {
			c.elev = rng.Float64() * 0.3
		}
		out[i] = c
	}

	return out
}

// -----------------------------------------------------------------------------
// Reference solvers
// -----------------------------------------------------------------------------

// bruteForce enumerates every tour starting at 0 and returns the optimum
// (+Inf and nil when no finite tour exists).
func bruteForce(dist *matrix.Dense) (float64, []int) {
	var (
		n        = dist.Rows()
		best     = inf
		bestTour []int
		route    = []int{0}
		used     = make([]bool, n)
		rec      func()
	)
	used[0] = true
	rec = func() {
		if len(route) == n {
			if c := tsp.RouteCost(dist, route); c < best {
				best = c
				bestTour = append([]int(nil), route...)
			}
			return
		}
		var v int
		for v = 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			route = append(route, v)
			rec()
			route = route[:len(route)-1]
			used[v] = false
		}
	}
	rec()

	return best, bestTour
}

// greedyFrom0 walks to the cheapest unvisited city from city 0.
func greedyFrom0(dist *matrix.Dense) tsp.Solution {
	var (
		n     = dist.Rows()
		used  = make([]bool, n)
		route = []int{0}
		cur   = 0
	)
	used[0] = true
	for len(route) < n {
		next, best := -1, inf
		var v int
		for v = 0; v < n; v++ {
			if used[v] {
				continue
			}
			if w, _ := dist.At(cur, v); w < best {
				next, best = v, w
			}
		}
		if next < 0 {
			return tsp.Infeasible()
		}
		used[next] = true
		route = append(route, next)
		cur = next
	}
	c := tsp.RouteCost(dist, route)
	if math.IsInf(c, 1) {
		return tsp.Infeasible()
	}

	return tsp.Solution{Route: route, Cost: c}
}

// -----------------------------------------------------------------------------
// Assertions
// -----------------------------------------------------------------------------

// Repeat runs fn n times. Useful for determinism checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// requireValidTour checks that res.Tour is a permutation whose cost is res.Cost.
func requireValidTour(t *testing.T, dist *matrix.Dense, res tsp.SearchResult) {
	t.Helper()
	require.NoError(t, tsp.ValidateRoute(res.Tour, dist.Rows()))
	require.InDelta(t, tsp.RouteCost(dist, res.Tour), res.Cost, epsCost)
}

// unlimited returns default options without a deadline.
func unlimited() tsp.Options {
	opts := tsp.DefaultOptions()
	opts.TimeBudget = tsp.Unlimited

	return opts
}
