// Package tsp - route cost utilities and the Solution value.
//
// Costs are summed along consecutive directed edges including the closing
// edge back to the first city, then rounded to 1e-9 so that the same tour
// compares equal whichever path produced it.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tourbnb/matrix"
)

// roundScale controls final cost stabilisation precision (1e-9).
const roundScale = 1e9

// Solution is a complete tour with its cost. The zero-length route with
// Cost=+Inf is the infeasible solution.
type Solution struct {
	Route []int
	Cost  float64
}

// Infeasible returns the "no tour known" solution (empty route, +Inf cost).
func Infeasible() Solution { return Solution{Cost: math.Inf(1)} }

// IsInfeasible reports whether s carries no usable tour.
func (s Solution) IsInfeasible() bool { return len(s.Route) == 0 || math.IsInf(s.Cost, 1) }

// NewSolution copies route and computes its cost on dist.
//
// Errors:
//   - ErrNonSquare for a non-square matrix.
//   - ErrSeedRoute if route is not a permutation of [0,n).
func NewSolution(dist matrix.Matrix, route []int) (Solution, error) {
	if dist == nil {
		return Solution{}, ErrNoCities
	}
	if dist.Rows() != dist.Cols() {
		return Solution{}, ErrNonSquare
	}
	if err := ValidateRoute(route, dist.Rows()); err != nil {
		return Solution{}, fmt.Errorf("%w: %v", ErrSeedRoute, err)
	}

	return Solution{Route: CopyRoute(route), Cost: RouteCost(dist, route)}, nil
}

// RouteCost sums dist along route as a closed cycle.
//   - An empty route costs +Inf (no tour).
//   - A one-city route costs 0 (no edge is traversed).
//   - Any +Inf edge, or an index the matrix rejects, yields +Inf.
//
// Complexity: O(len(route)).
func RouteCost(dist matrix.Matrix, route []int) float64 {
	var n = len(route)
	if n == 0 || dist == nil {
		return math.Inf(1)
	}
	if n == 1 {
		return 0
	}
	if d, ok := dist.(*matrix.Dense); ok {
		return routeCostDense(d, route)
	}

	var (
		sum  float64
		w    float64
		err  error
		i, j int
	)
	for i = 0; i < n; i++ {
		j = (i + 1) % n
		w, err = dist.At(route[i], route[j])
		if err != nil || math.IsInf(w, 1) {
			return math.Inf(1)
		}
		sum += w
	}

	return round1e9(sum)
}

// routeCostDense is the RowView fast path of RouteCost.
func routeCostDense(d *matrix.Dense, route []int) float64 {
	var (
		n   = len(route)
		sum float64
		row []float64
		err error
		u   int
		v   int
		i   int
	)
	for i = 0; i < n; i++ {
		u, v = route[i], route[(i+1)%n]
		if row, err = d.RowView(u); err != nil || v < 0 || v >= len(row) {
			return math.Inf(1)
		}
		if math.IsInf(row[v], 1) {
			return math.Inf(1)
		}
		sum += row[v]
	}

	return round1e9(sum)
}

// round1e9 returns x rounded to 1e-9 absolute precision; ±Inf pass through.
func round1e9(x float64) float64 {
	if math.IsInf(x, 0) {
		return x
	}

	return math.Round(x*roundScale) / roundScale
}
