package seed

import (
	"math"
	"time"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// DefaultRandomAttempts caps Random when no deadline is set.
const DefaultRandomAttempts = 100_000

// Random draws uniformly random permutations until one has a finite cost,
// the attempt cap is hit or the deadline passes.
type Random struct {
	// Seed selects the RNG stream (0 ⇒ package default).
	Seed int64

	// MaxAttempts caps the number of permutations (0 ⇒ DefaultRandomAttempts).
	MaxAttempts int
}

// InitialIncumbent implements tsp.Seeder.
//
// Complexity: O(attempts · n).
func (r Random) InitialIncumbent(dist matrix.Matrix, deadline time.Time) tsp.Solution {
	ws := prefetch(dist)
	if ws.n == 0 {
		return tsp.Infeasible()
	}

	var (
		rng   = rngFromSeed(r.Seed)
		limit = r.MaxAttempts
		perm  = make([]int, ws.n)
		i     int
		try   int
	)
	if limit <= 0 {
		limit = DefaultRandomAttempts
	}
	for i = range perm {
		perm[i] = i
	}
	for try = 0; try < limit; try++ {
		if try > 0 && expired(deadline) {
			break
		}
		shuffleIntsInPlace(perm, rng)
		if !math.IsInf(ws.cost(perm), 1) {
			return solution(dist, perm)
		}
	}

	return tsp.Infeasible()
}
