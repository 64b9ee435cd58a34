// Package seed - 2-opt polishing of a seed tour.
//
// A move reverses the segment route[i..k]. With asymmetric costs the
// reversed segment is re-priced edge by edge:
//
//	Δ = w(a,c) + w(b,d) + rev(b..c) − w(a,b) − w(c,d) − fwd(b..c)
//
// where a precedes b=route[i], d follows c=route[k], and fwd/rev are the
// segment's internal costs in each direction. Both sums grow by one edge as
// k advances, so each candidate costs O(1).
//
// Policy: deterministic first improvement, restart after every accepted
// move, deadline checked after each move.
package seed

import (
	"math"
	"time"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// twoOptEps is the minimum improvement for a move to be accepted.
const twoOptEps = 1e-9

// TwoOpt polishes the tour produced by Inner (Greedy when nil).
type TwoOpt struct {
	Inner tsp.Seeder

	// MaxMoves caps accepted moves (0 ⇒ until a local optimum).
	MaxMoves int
}

// InitialIncumbent implements tsp.Seeder.
func (t TwoOpt) InitialIncumbent(dist matrix.Matrix, deadline time.Time) tsp.Solution {
	inner := t.Inner
	if inner == nil {
		inner = Greedy{}
	}
	base := inner.InitialIncumbent(dist, deadline)
	if base.IsInfeasible() || len(base.Route) < 4 {
		return base
	}

	route := polish(prefetch(dist), tsp.CopyRoute(base.Route), t.MaxMoves, deadline)
	if s := solution(dist, route); s.Cost < base.Cost {
		return s
	}

	return base
}

// polish applies improving 2-opt moves to route in place and returns it.
func polish(ws weights, route []int, maxMoves int, deadline time.Time) []int {
	var (
		n                  = len(route)
		moves              int
		i, k               int
		a, b, c, d         int
		fwd, rev, delta, x float64
		improved           = true
	)
	for improved {
		improved = false
	scan:
		for i = 0; i < n-1; i++ {
			a, b = route[(i-1+n)%n], route[i]
			fwd, rev = 0, 0
			for k = i + 1; k < n; k++ {
				if i == 0 && k == n-1 {
					break
				}
				fwd += ws.at(route[k-1], route[k])
				rev += ws.at(route[k], route[k-1])
				if math.IsInf(rev, 1) {
					break // every longer segment contains this reverse edge
				}
				c, d = route[k], route[(k+1)%n]
				x = ws.at(a, c) + ws.at(b, d)
				if math.IsInf(x, 1) {
					continue
				}
				delta = x + rev - ws.at(a, b) - ws.at(c, d) - fwd
				if delta >= -twoOptEps {
					continue
				}
				reverse(route, i, k)
				moves++
				improved = true
				break scan
			}
		}
		if maxMoves > 0 && moves >= maxMoves {
			break
		}
		if expired(deadline) {
			break
		}
	}

	return route
}

// reverse flips route[i..k] in place.
func reverse(route []int, i, k int) {
	for i < k {
		route[i], route[k] = route[k], route[i]
		i++
		k--
	}
}
