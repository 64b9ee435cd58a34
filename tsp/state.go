package tsp

import (
	"math"

	"github.com/katalvlaran/tourbnb/matrix"
)

// searchState is one node of the search tree: a partial route starting at
// the start city, its lower bound, and the reduced matrix that produced it.
//
// Invariants:
//   - depth == len(route); remaining ∪ route == all cities, disjoint.
//   - remaining is ascending.
//   - reduced is owned exclusively by this state.
//   - key and seq are fixed at push time.
type searchState struct {
	bound     float64
	reduced   *matrix.Dense
	last      int
	remaining []int
	route     []int
	depth     int

	key float64
	seq uint64
}

// rootState builds the unreduced root for a search starting at start.
// Self-loops are forbidden on the root copy. The root bound is 0; reduction
// happens lazily when it is popped.
func rootState(dist *matrix.Dense, start int) *searchState {
	var (
		n         = dist.Rows()
		remaining = make([]int, 0, n-1)
		i         int
	)
	for i = 0; i < n; i++ {
		if i != start {
			remaining = append(remaining, i)
		}
	}

	m := dist.CloneDense()
	for i = 0; i < n; i++ {
		_ = m.Set(i, i, math.Inf(1))
	}

	return &searchState{
		bound:     0,
		reduced:   m,
		last:      start,
		remaining: remaining,
		route:     []int{start},
		depth:     1,
	}
}

// child derives the state that extends s by city i (remaining[k] == i).
// The child matrix forbids leaving s.last again, entering i again and the
// immediate return edge i→last. Its bound is s.bound plus the reduced cost
// of the chosen edge; further tightening happens when the child is popped.
//
// Complexity: O(n²) for the matrix clone.
func (s *searchState) child(k int) *searchState {
	var (
		i   = s.remaining[k]
		inf = math.Inf(1)
		m   = s.reduced.CloneDense()
		row []float64
		w   float64
	)
	row, _ = s.reduced.RowView(s.last)
	w = row[i]

	_ = m.FillRow(s.last, inf)
	_ = m.FillCol(i, inf)
	_ = m.Set(i, s.last, inf)

	remaining := make([]int, 0, len(s.remaining)-1)
	remaining = append(remaining, s.remaining[:k]...)
	remaining = append(remaining, s.remaining[k+1:]...)

	route := make([]int, len(s.route), len(s.route)+1)
	copy(route, s.route)
	route = append(route, i)

	return &searchState{
		bound:     s.bound + w,
		reduced:   m,
		last:      i,
		remaining: remaining,
		route:     route,
		depth:     s.depth + 1,
	}
}
