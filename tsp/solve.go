package tsp

import (
	"time"

	"github.com/katalvlaran/tourbnb/matrix"
)

// Seeder supplies the initial incumbent for a search.
// A zero deadline means "no deadline". Implementations return Infeasible()
// when they find no finite tour; they never fail.
type Seeder interface {
	InitialIncumbent(dist matrix.Matrix, deadline time.Time) Solution
}

// SolveMatrix runs the search on a precomputed cost matrix, starting from
// initial (use Infeasible() when no tour is known).
//
// The returned result is never worse than initial. When the budget expires
// first, TimedOut is set and the best tour found so far is returned; this is
// not an error.
//
// Errors (all before any search work):
//   - ErrNoCities, ErrNonSquare, ErrNegativeCost, ErrNaNCost for a bad matrix.
//   - ErrSeedRoute for an inconsistent initial solution.
//   - ErrInvalidOptions for bad options.
func SolveMatrix(dist *matrix.Dense, initial Solution, opts Options) (SearchResult, error) {
	return solveFrom(time.Now(), dist, initial, opts)
}

// Solve builds the cost matrix of cities and runs SolveMatrix.
// The result's Route maps Tour back to the caller's City values.
func Solve(cities []City, initial Solution, opts Options) (SearchResult, error) {
	t0 := time.Now()
	dist, err := BuildCostMatrix(cities)
	if err != nil {
		return SearchResult{}, err
	}
	res, err := solveFrom(t0, dist, initial, opts)
	if err != nil {
		return SearchResult{}, err
	}
	res.Route = routeCities(cities, res.Tour)

	return res, nil
}

// SolveWith builds the cost matrix, asks seeder for the initial incumbent and
// runs the search. Seeding and search share the one TimeBudget.
func SolveWith(cities []City, seeder Seeder, opts Options) (SearchResult, error) {
	t0 := time.Now()
	dist, err := BuildCostMatrix(cities)
	if err != nil {
		return SearchResult{}, err
	}
	res, err := SolveMatrixWith(dist, seeder, opts, t0)
	if err != nil {
		return SearchResult{}, err
	}
	res.Route = routeCities(cities, res.Tour)

	return res, nil
}

// SolveMatrixWith is SolveWith for a precomputed matrix. The budget is
// measured from t0 (pass time.Now() when in doubt).
func SolveMatrixWith(dist *matrix.Dense, seeder Seeder, opts Options, t0 time.Time) (SearchResult, error) {
	if err := validateMatrix(dist); err != nil {
		return SearchResult{}, err
	}
	if err := validateOptions(opts, dist.Rows()); err != nil {
		return SearchResult{}, err
	}

	initial := Infeasible()
	if seeder != nil {
		_, deadline := deadlineFor(t0, opts.TimeBudget)
		initial = seeder.InitialIncumbent(dist, deadline)
	}

	return solveFrom(t0, dist, initial, opts)
}

// solveFrom validates everything, then runs one engine.
func solveFrom(t0 time.Time, dist *matrix.Dense, initial Solution, opts Options) (SearchResult, error) {
	if err := validateMatrix(dist); err != nil {
		return SearchResult{}, err
	}
	if err := validateOptions(opts, dist.Rows()); err != nil {
		return SearchResult{}, err
	}
	if err := validateSeed(dist, initial); err != nil {
		return SearchResult{}, err
	}

	e := newEngine(dist, initial, opts, t0)
	e.run()

	return e.result(t0), nil
}

// routeCities maps a tour of indices back to the City values.
func routeCities(cities []City, tour []int) []City {
	if len(tour) == 0 {
		return nil
	}
	byIndex, err := indexCities(cities)
	if err != nil {
		return nil
	}
	out := make([]City, len(tour))
	for k, v := range tour {
		out[k] = byIndex[v]
	}

	return out
}
