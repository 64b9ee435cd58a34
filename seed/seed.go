// Package seed provides initial-incumbent providers for the tsp search.
//
// Every provider implements tsp.Seeder: given the cost matrix and a deadline
// it returns a complete tour, or tsp.Infeasible() when it finds none. A
// provider always completes at least one attempt, even when the deadline has
// already passed, so a zero budget still yields a usable seed when one is
// cheap to find.
//
// Providers:
//   - Random:            random permutations until a finite tour appears.
//   - Greedy:            nearest unvisited neighbour, from every start city.
//   - CheapestInsertion: grow an open path by the cheapest insertion, from every start.
//   - TwoOpt:            polish another provider's tour with direction-aware 2-opt.
//   - Best:              run several providers and keep the cheapest tour.
//   - None:              always infeasible (pure Branch-and-Bound).
package seed

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// ErrUnknownProvider is returned by New for an unregistered name.
var ErrUnknownProvider = errors.New("seed: unknown provider")

// Provider names accepted by New.
const (
	NameNone      = "none"
	NameRandom    = "random"
	NameGreedy    = "greedy"
	NameInsertion = "insertion"
	NameBest      = "best"
)

var registry = map[string]func(rngSeed int64) tsp.Seeder{
	NameNone:      func(int64) tsp.Seeder { return None{} },
	NameRandom:    func(s int64) tsp.Seeder { return Random{Seed: s} },
	NameGreedy:    func(int64) tsp.Seeder { return Greedy{} },
	NameInsertion: func(int64) tsp.Seeder { return CheapestInsertion{} },
	NameBest:      func(s int64) tsp.Seeder { return DefaultBest(s) },
}

// New returns the provider registered under name. rngSeed only affects
// randomised providers (0 selects the package default stream).
func New(name string, rngSeed int64) (tsp.Seeder, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownProvider, name, Names())
	}

	return mk(rngSeed), nil
}

// Names lists the registered provider names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// None never proposes a tour.
type None struct{}

// InitialIncumbent implements tsp.Seeder.
func (None) InitialIncumbent(matrix.Matrix, time.Time) tsp.Solution { return tsp.Infeasible() }

// weights is a prefetched row-major copy of a square cost matrix so the
// providers' inner loops avoid interface calls.
type weights struct {
	n int
	w []float64
}

// prefetch copies dist into a flat buffer. Unreadable or NaN entries become
// +Inf, which the providers treat as missing edges.
func prefetch(dist matrix.Matrix) weights {
	if dist == nil || dist.Rows() != dist.Cols() {
		return weights{}
	}

	var (
		n    = dist.Rows()
		w    = make([]float64, n*n)
		x    float64
		err  error
		i, j int
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			x, err = dist.At(i, j)
			if err != nil || math.IsNaN(x) || i == j {
				x = math.Inf(1)
			}
			w[i*n+j] = x
		}
	}

	return weights{n: n, w: w}
}

func (ws weights) at(u, v int) float64 { return ws.w[u*ws.n+v] }

// cost sums the closed route; +Inf when any edge is missing.
func (ws weights) cost(route []int) float64 {
	var n = len(route)
	if n == 0 {
		return math.Inf(1)
	}
	if n == 1 {
		return 0
	}

	var (
		sum float64
		w   float64
		i   int
	)
	for i = 0; i < n; i++ {
		w = ws.at(route[i], route[(i+1)%n])
		if math.IsInf(w, 1) {
			return math.Inf(1)
		}
		sum += w
	}

	return sum
}

// solution recomputes cost on dist so it matches what the engine validates.
func solution(dist matrix.Matrix, route []int) tsp.Solution {
	c := tsp.RouteCost(dist, route)
	if math.IsInf(c, 1) {
		return tsp.Infeasible()
	}

	return tsp.Solution{Route: tsp.CopyRoute(route), Cost: c}
}

// expired reports whether a non-zero deadline has passed.
func expired(deadline time.Time) bool {
	return !deadline.IsZero() && !time.Now().Before(deadline)
}
