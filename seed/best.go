package seed

import (
	"time"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

// Best runs each provider in order and keeps the cheapest tour. Equal costs
// keep the earlier provider's tour. The first provider always runs; later
// ones are skipped once the deadline has passed.
type Best struct {
	Seeders []tsp.Seeder
}

// DefaultBest combines polished greedy, polished cheapest insertion and a
// random tour drawn from a stream derived from rngSeed.
func DefaultBest(rngSeed int64) Best {
	return Best{Seeders: []tsp.Seeder{
		TwoOpt{Inner: Greedy{}},
		TwoOpt{Inner: CheapestInsertion{}},
		Random{Seed: deriveSeed(rngSeed, 1)},
	}}
}

// InitialIncumbent implements tsp.Seeder.
func (b Best) InitialIncumbent(dist matrix.Matrix, deadline time.Time) tsp.Solution {
	var (
		best = tsp.Infeasible()
		s    tsp.Solution
		k    int
		p    tsp.Seeder
	)
	for k, p = range b.Seeders {
		if p == nil {
			continue
		}
		if k > 0 && expired(deadline) {
			break
		}
		if s = p.InitialIncumbent(dist, deadline); s.Cost < best.Cost {
			best = s
		}
	}

	return best
}
