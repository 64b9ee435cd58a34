// Package scenario models TSP instances: cities placed on a plane with an
// elevation, a difficulty that decides how travel costs are derived, and an
// optional explicit cost matrix.
//
// Cost rule (per directed pair a→b, a≠b):
//
//	easy:   ceil(1000 · dist(a,b))
//	normal: ceil(1000 · max(0, dist(a,b) + elev(b) − elev(a)))
//	hard:   as normal, with Removed edges at +Inf
//
// Uphill legs cost more than the way back, so every difficulty except easy
// yields an asymmetric instance. When Matrix is set it replaces the rule.
package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/tourbnb/matrix"
	"github.com/katalvlaran/tourbnb/tsp"
)

var (
	// ErrMalformed reports a structurally invalid scenario.
	ErrMalformed = errors.New("scenario: malformed")

	// ErrUnknownDifficulty reports a difficulty outside the known set.
	ErrUnknownDifficulty = errors.New("scenario: unknown difficulty")

	// ErrUnknownFormat reports a file extension or format name that has no codec.
	ErrUnknownFormat = errors.New("scenario: unknown format")
)

// MapScale converts plane distances into integer costs.
const MapScale = 1000.0

// Difficulty selects the cost rule.
type Difficulty string

const (
	Easy              Difficulty = "easy"
	Normal            Difficulty = "normal"
	Hard              Difficulty = "hard"
	HardDeterministic Difficulty = "hard-deterministic"
)

// Difficulties lists every known difficulty.
func Difficulties() []Difficulty { return []Difficulty{Easy, Normal, Hard, HardDeterministic} }

// ParseDifficulty validates s.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties() {
		if string(d) == s {
			return d, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// hard reports whether edges may be removed.
func (d Difficulty) hard() bool { return d == Hard || d == HardDeterministic }

// Point is a city location. Elevation is ignored by Easy.
type Point struct {
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Elevation float64 `toml:"elevation"`
}

// Edge is a directed pair of city indices.
type Edge struct {
	From int `toml:"from"`
	To   int `toml:"to"`
}

// Scenario is one instance. Either Points or Matrix (or both, with equal
// sizes) must be present; Matrix wins for costs.
type Scenario struct {
	Name       string      `toml:"name,omitempty"`
	Difficulty Difficulty  `toml:"difficulty"`
	Seed       int64       `toml:"seed"`
	Points     []Point     `toml:"points,omitempty"`
	Removed    []Edge      `toml:"removed,omitempty"`
	Matrix     [][]float64 `toml:"matrix,omitempty"`
}

// Len returns the number of cities.
func (s *Scenario) Len() int {
	if len(s.Matrix) > 0 {
		return len(s.Matrix)
	}

	return len(s.Points)
}

// Validate rejects scenarios the solver must never see.
func (s *Scenario) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil scenario", ErrMalformed)
	}
	if _, err := ParseDifficulty(string(s.Difficulty)); err != nil {
		return err
	}

	n := s.Len()
	if n == 0 {
		return fmt.Errorf("%w: no cities", ErrMalformed)
	}
	if len(s.Matrix) > 0 && len(s.Points) > 0 && len(s.Points) != n {
		return fmt.Errorf("%w: %d points but a %d-row matrix", ErrMalformed, len(s.Points), n)
	}

	var (
		i, j int
		p    Point
		e    Edge
	)
	for i, p = range s.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Elevation) {
			return fmt.Errorf("%w: point %d has a non-finite coordinate", ErrMalformed, i)
		}
	}
	for i = range s.Matrix {
		if len(s.Matrix[i]) != n {
			return fmt.Errorf("%w: matrix row %d has %d entries, want %d", ErrMalformed, i, len(s.Matrix[i]), n)
		}
		for j = range s.Matrix[i] {
			if math.IsNaN(s.Matrix[i][j]) || s.Matrix[i][j] < 0 {
				return fmt.Errorf("%w: matrix entry (%d,%d) = %g", ErrMalformed, i, j, s.Matrix[i][j])
			}
		}
	}
	for _, e = range s.Removed {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n || e.From == e.To {
			return fmt.Errorf("%w: removed edge %d→%d", ErrMalformed, e.From, e.To)
		}
	}

	return nil
}

// Cities returns one tsp.City per index, sharing an immutable snapshot of
// the cost model. Later edits to s do not affect the returned cities.
func (s *Scenario) Cities() ([]tsp.City, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	m := newCostModel(s)
	out := make([]tsp.City, m.n)
	var i int
	for i = range out {
		out[i] = City{index: i, model: m}
	}

	return out, nil
}

// CostMatrix validates s and builds its directed cost matrix.
func (s *Scenario) CostMatrix() (*matrix.Dense, error) {
	cities, err := s.Cities()
	if err != nil {
		return nil, err
	}

	return tsp.BuildCostMatrix(cities)
}

// City is a scenario city. It implements tsp.City.
type City struct {
	index int
	model *costModel
}

var _ tsp.City = City{}

// Index returns the city's position in the scenario.
func (c City) Index() int { return c.index }

// Point returns the city's location (zero when the scenario only has a matrix).
func (c City) Point() Point {
	if c.index < len(c.model.points) {
		return c.model.points[c.index]
	}

	return Point{}
}

// CostTo returns the directed cost to other, +Inf for a missing edge or
// for a city outside this scenario.
func (c City) CostTo(other tsp.City) float64 {
	j := other.Index()
	if j < 0 || j >= c.model.n {
		return math.Inf(1)
	}

	return c.model.cost(c.index, j)
}

// costModel is the immutable snapshot behind a scenario's cities.
type costModel struct {
	n          int
	difficulty Difficulty
	points     []Point
	blocked    []bool // n*n, row-major
	explicit   [][]float64
}

func newCostModel(s *Scenario) *costModel {
	m := &costModel{
		n:          s.Len(),
		difficulty: s.Difficulty,
		points:     append([]Point(nil), s.Points...),
	}
	if len(s.Matrix) > 0 {
		m.explicit = make([][]float64, len(s.Matrix))
		for i := range s.Matrix {
			m.explicit[i] = append([]float64(nil), s.Matrix[i]...)
		}
	}
	m.blocked = make([]bool, m.n*m.n)
	for _, e := range s.Removed {
		m.blocked[e.From*m.n+e.To] = true
	}

	return m
}

func (m *costModel) cost(i, j int) float64 {
	if i == j || m.blocked[i*m.n+j] {
		return math.Inf(1)
	}
	if m.explicit != nil {
		return m.explicit[i][j]
	}

	return pointCost(m.points[i], m.points[j], m.difficulty)
}

// pointCost applies the cost rule to one directed leg.
func pointCost(a, b Point, d Difficulty) float64 {
	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	if d != Easy {
		dist += b.Elevation - a.Elevation
	}
	if dist < 0 {
		dist = 0
	}

	return math.Ceil(dist * MapScale)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
