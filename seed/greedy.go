package seed

import (
	"math"
	"time"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// Greedy builds one nearest-neighbour tour per start city and keeps the
// cheapest finite one. Ties between neighbours go to the lower index.
type Greedy struct{}

// InitialIncumbent implements tsp.Seeder. Start cities are tried in index
// order; the deadline is checked between starts.
//
// Complexity: O(n³).
func (Greedy) InitialIncumbent(dist matrix.Matrix, deadline time.Time) tsp.Solution {
	ws := prefetch(dist)
	if ws.n == 0 {
		return tsp.Infeasible()
	}

	var (
		best     = math.Inf(1)
		bestTour []int
		route    = make([]int, 0, ws.n)
		used     = make([]bool, ws.n)
		start    int
		c        float64
	)
	for start = 0; start < ws.n; start++ {
		if start > 0 && expired(deadline) {
			break
		}
		route = nearestNeighbour(ws, start, route[:0], used)
		if len(route) < ws.n {
			continue
		}
		if c = ws.cost(route); c < best {
			best = c
			bestTour = append(bestTour[:0], route...)
		}
	}
	if bestTour == nil {
		return tsp.Infeasible()
	}

	return solution(dist, bestTour)
}

// nearestNeighbour appends a greedy walk from start to route. The walk stops
// early at a dead end (no finite edge to an unvisited city).
func nearestNeighbour(ws weights, start int, route []int, used []bool) []int {
	var (
		cur  = start
		next int
		w    float64
		lo   float64
		v    int
	)
	for v = range used {
		used[v] = false
	}
	used[start] = true
	route = append(route, start)

	for len(route) < ws.n {
		next, lo = -1, math.Inf(1)
		for v = 0; v < ws.n; v++ {
			if used[v] {
				continue
			}
			if w = ws.at(cur, v); w < lo {
				next, lo = v, w
			}
		}
		if next < 0 {
			return route
		}
		used[next] = true
		route = append(route, next)
		cur = next
	}

	return route
}
