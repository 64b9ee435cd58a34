package scenario

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Plane bounds for generated points.
const (
	MinX = -1.5
	MaxX = 1.5
	MinY = -1.0
	MaxY = 1.0
)

// HardRemoveFraction is the share of directed edges removed in hard mode.
const HardRemoveFraction = 0.20

// GenerateOptions configures Generate.
type GenerateOptions struct {
	Cities     int
	Difficulty Difficulty
	Seed       int64
}

// Generate places Cities random points and, for hard difficulties, removes
// floor(HardRemoveFraction · n(n−1)) directed edges while keeping one random
// Hamiltonian cycle intact, so every hard scenario has at least one tour.
//
// Points and elevations are drawn from Seed. HardDeterministic also draws
// the removed edges from Seed; Hard draws them from the clock, so repeated
// calls yield different networks over the same points.
func Generate(opts GenerateOptions) (*Scenario, error) {
	if opts.Cities < 1 {
		return nil, fmt.Errorf("%w: need at least one city, got %d", ErrMalformed, opts.Cities)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = Normal
	}
	if _, err := ParseDifficulty(string(opts.Difficulty)); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	s := &Scenario{
		Name:       fmt.Sprintf("%s-%d-%d", opts.Difficulty, opts.Cities, opts.Seed),
		Difficulty: opts.Difficulty,
		Seed:       opts.Seed,
		Points:     make([]Point, opts.Cities),
	}
	var i int
	for i = range s.Points {
		s.Points[i] = Point{
			X:         MinX + rng.Float64()*(MaxX-MinX),
			Y:         MinY + rng.Float64()*(MaxY-MinY),
			Elevation: rng.Float64(),
		}
	}

	switch opts.Difficulty {
	case HardDeterministic:
		s.Removed = thinEdges(opts.Cities, rng)
	case Hard:
		s.Removed = thinEdges(opts.Cities, rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	return s, nil
}

// thinEdges picks the edges to remove. One random cycle is protected, the
// remaining candidates are shuffled and the first k are taken.
func thinEdges(n int, rng *rand.Rand) []Edge {
	var (
		k       = int(HardRemoveFraction * float64(n*(n-1)))
		keep    = rng.Perm(n)
		protect = make(map[Edge]bool, n)
		cand    = make([]Edge, 0, n*n)
		i, j    int
	)
	if k == 0 {
		return nil
	}
	for i = 0; i < n; i++ {
		protect[Edge{From: keep[i], To: keep[(i+1)%n]}] = true
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			e := Edge{From: i, To: j}
			if i != j && !protect[e] {
				cand = append(cand, e)
			}
		}
	}
	rng.Shuffle(len(cand), func(a, b int) { cand[a], cand[b] = cand[b], cand[a] })
	if k > len(cand) {
		k = len(cand)
	}

	out := append([]Edge(nil), cand[:k]...)
	sort.Slice(out, func(a, b int) bool {
		if out[a].From != out[b].From {
			return out[a].From < out[b].From
		}
		return out[a].To < out[b].To
	})

	return out
}
