package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// -----------------------------------------------------------------------------
// Route helpers
// -----------------------------------------------------------------------------

func TestValidateRoute(t *testing.T) {
	require.NoError(t, tsp.ValidateRoute([]int{2, 0, 1}, 3))
	require.ErrorIs(t, tsp.ValidateRoute([]int{0, 1}, 3), tsp.ErrCityIndex)
	require.ErrorIs(t, tsp.ValidateRoute([]int{0, 1, 3}, 3), tsp.ErrCityIndex)
	require.ErrorIs(t, tsp.ValidateRoute([]int{0, 1, 1}, 3), tsp.ErrDuplicateCity)
	require.ErrorIs(t, tsp.ValidateRoute(nil, 0), tsp.ErrNoCities)
}

func TestRotateAndCompare(t *testing.T) {
	r := []int{2, 3, 0, 1}
	got := tsp.RotateRoute(r, 0)
	require.Equal(t, []int{0, 1, 2, 3}, got)
	require.Equal(t, []int{2, 3, 0, 1}, r, "input untouched")
	require.Equal(t, r, tsp.RotateRoute(r, 9), "absent start yields a copy")

	assert.True(t, tsp.EqualModuloRotation([]int{0, 1, 2, 3}, []int{2, 3, 0, 1}))
	assert.False(t, tsp.EqualModuloRotation([]int{0, 1, 2, 3}, []int{0, 3, 2, 1}), "direction matters")
	assert.False(t, tsp.EqualModuloRotation([]int{0, 1}, []int{0, 1, 2}))
	assert.True(t, tsp.EqualModuloRotation(nil, []int{}))
}

func TestRouteString(t *testing.T) {
	require.Equal(t, "0→2→1→0", tsp.RouteString([]int{0, 2, 1}))
	require.Equal(t, "∅", tsp.RouteString(nil))
}

// -----------------------------------------------------------------------------
// Costs and solutions
// -----------------------------------------------------------------------------

// wrappedMatrix hides the concrete *matrix.Dense type.
type wrappedMatrix struct{ *matrix.Dense }

func TestRouteCost(t *testing.T) {
	dist := fixture3(t)
	require.Equal(t, 4159.0, tsp.RouteCost(dist, []int{0, 1, 2}))
	require.Equal(t, 4159.0, tsp.RouteCost(dist, []int{1, 2, 0}), "rotation invariant")
	require.Equal(t, 4300.0, tsp.RouteCost(dist, []int{0, 2, 1}))
	require.True(t, math.IsInf(tsp.RouteCost(dist, nil), 1))
	require.Equal(t, 0.0, tsp.RouteCost(dist, []int{1}))

	gap := dist.CloneDense()
	require.NoError(t, gap.Set(2, 0, inf))
	require.True(t, math.IsInf(tsp.RouteCost(gap, []int{0, 1, 2}), 1))

	// The generic matrix.Matrix path agrees with the Dense fast path.
	generic := wrappedMatrix{dist}
	require.Equal(t, 4159.0, tsp.RouteCost(generic, []int{0, 1, 2}))
	require.True(t, math.IsInf(tsp.RouteCost(wrappedMatrix{gap}, []int{0, 1, 2}), 1))
	require.True(t, math.IsInf(tsp.RouteCost(generic, []int{0, 5}), 1))

	require.True(t, math.IsInf(tsp.RouteCost(dist, []int{0, 5}), 1), "bad index is infeasible")
}

func TestNewSolution(t *testing.T) {
	dist := fixture3(t)
	route := []int{0, 2, 1}

	s, err := tsp.NewSolution(dist, route)
	require.NoError(t, err)
	require.Equal(t, 4300.0, s.Cost)
	route[0] = 9
	require.Equal(t, []int{0, 2, 1}, s.Route, "route is copied")

	_, err = tsp.NewSolution(dist, []int{0, 0, 1})
	require.ErrorIs(t, err, tsp.ErrSeedRoute)
	_, err = tsp.NewSolution(nil, []int{0})
	require.ErrorIs(t, err, tsp.ErrNoCities)

	require.True(t, tsp.Infeasible().IsInfeasible())
	require.False(t, s.IsInfeasible())
}

// -----------------------------------------------------------------------------
// Incumbent
// -----------------------------------------------------------------------------

func TestIncumbent_StrictImprovementOnly(t *testing.T) {
	inc := tsp.NewIncumbent(tsp.Infeasible())
	require.True(t, math.IsInf(inc.Cost(), 1))

	require.True(t, inc.TryUpdate(tsp.Solution{Route: []int{0, 1, 2}, Cost: 10}))
	require.False(t, inc.TryUpdate(tsp.Solution{Route: []int{0, 2, 1}, Cost: 10}), "ties never replace")
	require.False(t, inc.TryUpdate(tsp.Solution{Route: []int{0, 2, 1}, Cost: 11}))
	require.Equal(t, []int{0, 1, 2}, inc.Best().Route)

	route := []int{1, 0, 2}
	require.True(t, inc.TryUpdate(tsp.Solution{Route: route, Cost: 9}))
	route[0] = 7
	best := inc.Best()
	require.Equal(t, []int{1, 0, 2}, best.Route, "incumbent owns its route")
	best.Route[1] = 7
	require.Equal(t, []int{1, 0, 2}, inc.Best().Route, "Best returns a copy")

	require.False(t, inc.TryUpdate(tsp.Infeasible()))
}

// -----------------------------------------------------------------------------
// Cost matrix builder
// -----------------------------------------------------------------------------

type fnCity struct {
	idx int
	fn  func(from, to int) float64
}

func (c fnCity) Index() int                    { return c.idx }
func (c fnCity) CostTo(other tsp.City) float64 { return c.fn(c.idx, other.Index()) }

func TestBuildCostMatrix(t *testing.T) {
	rng := rand.New(rand.NewSource(seedDet))
	cities := randomCities(rng, 5, true)

	m, err := tsp.BuildCostMatrix(cities)
	require.NoError(t, err)
	require.Equal(t, 5, m.Rows())

	var i, j int
	for i = 0; i < 5; i++ {
		for j = 0; j < 5; j++ {
			v, _ := m.At(i, j)
			if i == j {
				require.True(t, math.IsInf(v, 1), "diagonal is +Inf")
				continue
			}
			require.Equal(t, cities[i].CostTo(cities[j]), v)
		}
	}

	// Idempotent and independent of input order.
	again, err := tsp.BuildCostMatrix([]tsp.City{cities[3], cities[1], cities[4], cities[0], cities[2]})
	require.NoError(t, err)
	require.True(t, m.Equal(again))
}

func TestBuildCostMatrix_Errors(t *testing.T) {
	ok := func(_, _ int) float64 { return 1 }

	_, err := tsp.BuildCostMatrix(nil)
	require.ErrorIs(t, err, tsp.ErrNoCities)

	_, err = tsp.BuildCostMatrix([]tsp.City{fnCity{0, ok}, nil})
	require.ErrorIs(t, err, tsp.ErrNoCities)

	_, err = tsp.BuildCostMatrix([]tsp.City{fnCity{0, ok}, fnCity{0, ok}})
	require.ErrorIs(t, err, tsp.ErrDuplicateCity)

	_, err = tsp.BuildCostMatrix([]tsp.City{fnCity{0, ok}, fnCity{2, ok}})
	require.ErrorIs(t, err, tsp.ErrCityIndex)

	neg := func(_, _ int) float64 { return -1 }
	_, err = tsp.BuildCostMatrix([]tsp.City{fnCity{0, neg}, fnCity{1, neg}})
	require.ErrorIs(t, err, tsp.ErrNegativeCost)

	nan := func(_, _ int) float64 { return math.NaN() }
	_, err = tsp.BuildCostMatrix([]tsp.City{fnCity{0, nan}, fnCity{1, nan}})
	require.ErrorIs(t, err, tsp.ErrNaNCost)

	missing := func(_, _ int) float64 { return inf }
	m, err := tsp.BuildCostMatrix([]tsp.City{fnCity{0, missing}, fnCity{1, missing}})
	require.NoError(t, err, "+Inf marks a missing edge, not an error")
	v, _ := m.At(0, 1)
	require.True(t, math.IsInf(v, 1))
}

// -----------------------------------------------------------------------------
// Options
// -----------------------------------------------------------------------------

func TestPriority_Names(t *testing.T) {
	for _, p := range []tsp.Priority{tsp.BoundPerDepth, tsp.DepthPenalized, tsp.PureBound} {
		got, err := tsp.ParsePriority(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := tsp.ParsePriority("fastest")
	require.ErrorIs(t, err, tsp.ErrInvalidOptions)
	require.Equal(t, "priority(7)", tsp.Priority(7).String())

	opts := tsp.DefaultOptions()
	require.Equal(t, tsp.DefaultTimeBudget, opts.TimeBudget)
	require.Equal(t, tsp.DefaultEps, opts.Eps)
	require.Equal(t, tsp.BoundPerDepth, opts.Priority)
}
