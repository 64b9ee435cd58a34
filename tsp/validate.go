// Package tsp - input validation.
//
// Everything the engine relies on is checked here, once, before the search
// starts. The hot loop then runs without re-validating matrix entries.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tourbnb/matrix"
)

// seedCostTolerance bounds the accepted relative drift between a seed's
// declared cost and the cost recomputed on the matrix.
const seedCostTolerance = 1e-6

// validateMatrix checks shape and entries of a cost matrix.
// Diagonal entries are not inspected; the engine forbids self-loops itself.
//
// Complexity: O(n²).
func validateMatrix(dist *matrix.Dense) error {
	if dist == nil {
		return ErrNoCities
	}
	rows, cols := dist.Shape()
	if rows != cols {
		return fmt.Errorf("%w: %dx%d", ErrNonSquare, rows, cols)
	}

	var (
		row  []float64
		w    float64
		i, j int
	)
	for i = 0; i < rows; i++ {
		row, _ = dist.RowView(i)
		for j, w = range row {
			if i == j {
				continue
			}
			if math.IsNaN(w) {
				return fmt.Errorf("%w: %d→%d", ErrNaNCost, i, j)
			}
			if w < 0 {
				return fmt.Errorf("%w: %d→%d = %g", ErrNegativeCost, i, j, w)
			}
		}
	}

	return nil
}

// validateOptions checks the option set against an n-city instance.
func validateOptions(opts Options, n int) error {
	if opts.TimeBudget < 0 {
		return fmt.Errorf("%w: negative time budget %s", ErrInvalidOptions, opts.TimeBudget)
	}
	if math.IsNaN(opts.Eps) || opts.Eps < 0 || math.IsInf(opts.Eps, 0) {
		return fmt.Errorf("%w: eps must be a finite value ≥ 0, got %g", ErrInvalidOptions, opts.Eps)
	}
	if !opts.Priority.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, opts.Priority)
	}
	if opts.Start < 0 || opts.Start >= n {
		return fmt.Errorf("%w: start city %d not in [0,%d)", ErrInvalidOptions, opts.Start, n)
	}

	return nil
}

// validateSeed accepts either the infeasible solution (empty route, +Inf)
// or a permutation of [0,n) whose declared cost matches the matrix.
// A permutation declared at +Inf is accepted when it really is infeasible.
func validateSeed(dist *matrix.Dense, seed Solution) error {
	if math.IsNaN(seed.Cost) || seed.Cost < 0 {
		return fmt.Errorf("%w: cost %g", ErrSeedRoute, seed.Cost)
	}
	if len(seed.Route) == 0 {
		if !math.IsInf(seed.Cost, 1) {
			return fmt.Errorf("%w: empty route with finite cost %g", ErrSeedRoute, seed.Cost)
		}
		return nil
	}
	if err := ValidateRoute(seed.Route, dist.Rows()); err != nil {
		return fmt.Errorf("%w: %v", ErrSeedRoute, err)
	}

	var actual = RouteCost(dist, seed.Route)
	if math.IsInf(actual, 1) || math.IsInf(seed.Cost, 1) {
		if math.IsInf(actual, 1) != math.IsInf(seed.Cost, 1) {
			return fmt.Errorf("%w: declared %g, actual %g", ErrSeedRoute, seed.Cost, actual)
		}
		return nil
	}
	if math.Abs(actual-seed.Cost) > seedCostTolerance*math.Max(1, math.Abs(actual)) {
		return fmt.Errorf("%w: declared %g, actual %g", ErrSeedRoute, seed.Cost, actual)
	}

	return nil
}
