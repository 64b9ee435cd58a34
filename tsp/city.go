package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tourbnb/matrix"
)

// City is one vertex of the instance. Index must be unique within a scenario
// and lie in [0,n). CostTo returns the directed travel cost to other: a
// non-negative number, or math.Inf(1) when there is no direct edge.
// Costs may be asymmetric.
type City interface {
	Index() int
	CostTo(other City) float64
}

// BuildCostMatrix materialises the directed n×n cost matrix of cities.
// Entry (i,j) equals cities[a].CostTo(cities[b]) where a.Index()==i and
// b.Index()==j; the diagonal is +Inf. The input order of cities does not
// matter, only their indices.
//
// Errors:
//   - ErrNoCities for an empty slice or a nil element.
//   - ErrCityIndex if an index is outside [0,n).
//   - ErrDuplicateCity if two cities share an index.
//   - ErrNegativeCost / ErrNaNCost for invalid directed costs.
//
// Complexity: O(n²) time and memory.
func BuildCostMatrix(cities []City) (*matrix.Dense, error) {
	byIndex, err := indexCities(cities)
	if err != nil {
		return nil, err
	}

	var (
		n    = len(byIndex)
		m    *matrix.Dense
		i, j int
		w    float64
	)
	if m, err = matrix.NewFilled(n, n, math.Inf(1)); err != nil {
		return nil, err
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			w = byIndex[i].CostTo(byIndex[j])
			if math.IsNaN(w) {
				return nil, fmt.Errorf("%w: %d→%d", ErrNaNCost, i, j)
			}
			if w < 0 {
				return nil, fmt.Errorf("%w: %d→%d = %g", ErrNegativeCost, i, j, w)
			}
			_ = m.Set(i, j, w) // in range, NaN rejected above
		}
	}

	return m, nil
}

// indexCities orders cities by Index and checks the index set is exactly [0,n).
func indexCities(cities []City) ([]City, error) {
	var n = len(cities)
	if n == 0 {
		return nil, ErrNoCities
	}

	var (
		out = make([]City, n)
		c   City
		k   int
		idx int
	)
	for k, c = range cities {
		if c == nil {
			return nil, fmt.Errorf("%w: nil city at position %d", ErrNoCities, k)
		}
		idx = c.Index()
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrCityIndex, idx, n)
		}
		if out[idx] != nil {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateCity, idx)
		}
		out[idx] = c
	}

	return out, nil
}
