package seed

import (
	"math"
	"time"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// CheapestInsertion grows an open path from every start city. Each step
// inserts the unvisited city with the smallest insertion delta, either
// between two consecutive path cities (a→u→b replaces a→b) or after the
// tail. Directions are honoured, so asymmetric costs are priced correctly.
// A start is abandoned at a dead end or once its open path already costs
// as much as the best closed tour found so far.
type CheapestInsertion struct{}

// InitialIncumbent implements tsp.Seeder.
//
// Complexity: O(n⁴) over all starts (O(n³) per start).
func (CheapestInsertion) InitialIncumbent(dist matrix.Matrix, deadline time.Time) tsp.Solution {
	ws := prefetch(dist)
	if ws.n == 0 {
		return tsp.Infeasible()
	}

	var (
		best     = math.Inf(1)
		bestTour []int
		start    int
		route    []int
		c        float64
	)
	for start = 0; start < ws.n; start++ {
		if start > 0 && expired(deadline) {
			break
		}
		if route = insertFrom(ws, start, best); route == nil {
			continue
		}
		if c = ws.cost(route); c < best {
			best, bestTour = c, route
		}
	}
	if bestTour == nil {
		return tsp.Infeasible()
	}

	return solution(dist, bestTour)
}

// insertFrom runs cheapest insertion from start. It returns nil when the
// path dead-ends or its open cost reaches bound.
func insertFrom(ws weights, start int, bound float64) []int {
	var (
		path     = make([]int, 1, ws.n)
		unused   = make([]bool, ws.n)
		openCost float64
		p, u     int
		bestPos  int
		bestCity int
		lo, d    float64
	)
	path[0] = start
	for u = range unused {
		unused[u] = u != start
	}

	for len(path) < ws.n {
		bestPos, bestCity, lo = -1, -1, math.Inf(1)
		for p = range path {
			for u = 0; u < ws.n; u++ {
				if !unused[u] {
					continue
				}
				if p == len(path)-1 {
					d = ws.at(path[p], u)
				} else {
					d = ws.at(path[p], u) + ws.at(u, path[p+1]) - ws.at(path[p], path[p+1])
				}
				if d < lo {
					bestPos, bestCity, lo = p, u, d
				}
			}
		}
		if bestCity < 0 {
			return nil
		}

		path = append(path, 0)
		copy(path[bestPos+2:], path[bestPos+1:])
		path[bestPos+1] = bestCity
		unused[bestCity] = false
		openCost += lo
		if openCost >= bound {
			return nil
		}
	}

	return path
}
