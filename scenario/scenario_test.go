package scenario_test

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourbnb/scenario"
	"github.com/katalvlaran/tourbnb/tsp"
)

// -----------------------------------------------------------------------------
// Cost rule
// -----------------------------------------------------------------------------

func costs(t *testing.T, s *scenario.Scenario) (ab, ba float64) {
	t.Helper()
	cities, err := s.Cities()
	require.NoError(t, err)
	require.Len(t, cities, 2)

	return cities[0].CostTo(cities[1]), cities[1].CostTo(cities[0])
}

func TestCostRule_ByDifficulty(t *testing.T) {
	pts := []scenario.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0, Elevation: 0.25}}

	ab, ba := costs(t, &scenario.Scenario{Difficulty: scenario.Easy, Points: pts})
	assert.Equal(t, 500.0, ab)
	assert.Equal(t, 500.0, ba, "easy ignores elevation")

	ab, ba = costs(t, &scenario.Scenario{Difficulty: scenario.Normal, Points: pts})
	assert.Equal(t, 750.0, ab, "uphill costs more")
	assert.Equal(t, 250.0, ba)

	steep := []scenario.Point{{X: 0, Y: 0}, {X: 0.5, Y: 0, Elevation: 0.75}}
	ab, ba = costs(t, &scenario.Scenario{Difficulty: scenario.Normal, Points: steep})
	assert.Equal(t, 1250.0, ab)
	assert.Equal(t, 0.0, ba, "steep descents are clamped at zero")

	ab, ba = costs(t, &scenario.Scenario{
		Difficulty: scenario.Hard,
		Points:     pts,
		Removed:    []scenario.Edge{{From: 1, To: 0}},
	})
	assert.Equal(t, 750.0, ab)
	assert.True(t, math.IsInf(ba, 1), "removed edges are missing")
}

func TestCities_ExplicitMatrixAndSnapshot(t *testing.T) {
	inf := math.Inf(1)
	s := &scenario.Scenario{
		Difficulty: scenario.Normal,
		Matrix:     [][]float64{{0, 7}, {inf, 0}},
	}
	cities, err := s.Cities()
	require.NoError(t, err)

	s.Matrix[0][1] = 99
	assert.Equal(t, 7.0, cities[0].CostTo(cities[1]), "cities keep their own snapshot")
	assert.True(t, math.IsInf(cities[1].CostTo(cities[0]), 1))
	assert.True(t, math.IsInf(cities[0].CostTo(cities[0]), 1), "self cost is +Inf")

	c0 := cities[0].(scenario.City)
	assert.Equal(t, scenario.Point{}, c0.Point())
}

// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	ok := []scenario.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}

	cases := []struct {
		name string
		s    *scenario.Scenario
		want error
	}{
		{"nil", nil, scenario.ErrMalformed},
		{"no cities", &scenario.Scenario{Difficulty: scenario.Easy}, scenario.ErrMalformed},
		{"bad difficulty", &scenario.Scenario{Difficulty: "nightmare", Points: ok}, scenario.ErrUnknownDifficulty},
		{"nan point", &scenario.Scenario{Difficulty: scenario.Easy, Points: []scenario.Point{{X: math.NaN()}}}, scenario.ErrMalformed},
		{"ragged matrix", &scenario.Scenario{Difficulty: scenario.Easy, Matrix: [][]float64{{0, 1}, {1}}}, scenario.ErrMalformed},
		{"negative cost", &scenario.Scenario{Difficulty: scenario.Easy, Matrix: [][]float64{{0, -1}, {1, 0}}}, scenario.ErrMalformed},
		{"size mismatch", &scenario.Scenario{Difficulty: scenario.Easy, Points: ok[:1], Matrix: [][]float64{{0, 1}, {1, 0}}}, scenario.ErrMalformed},
		{"self edge removed", &scenario.Scenario{Difficulty: scenario.Hard, Points: ok, Removed: []scenario.Edge{{From: 1, To: 1}}}, scenario.ErrMalformed},
		{"edge out of range", &scenario.Scenario{Difficulty: scenario.Hard, Points: ok, Removed: []scenario.Edge{{From: 0, To: 2}}}, scenario.ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.s.Validate(), tc.want)
			_, err := tc.s.Cities()
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range scenario.Difficulties() {
		got, err := scenario.ParseDifficulty(string(d))
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
	_, err := scenario.ParseDifficulty("Hard")
	require.ErrorIs(t, err, scenario.ErrUnknownDifficulty)
}

// -----------------------------------------------------------------------------
// Generator
// -----------------------------------------------------------------------------

func TestGenerate_DeterministicPoints(t *testing.T) {
	a, err := scenario.Generate(scenario.GenerateOptions{Cities: 15, Difficulty: scenario.Normal, Seed: 20})
	require.NoError(t, err)
	b, err := scenario.Generate(scenario.GenerateOptions{Cities: 15, Difficulty: scenario.Normal, Seed: 20})
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Empty(t, a.Removed)

	for _, p := range a.Points {
		assert.GreaterOrEqual(t, p.X, scenario.MinX)
		assert.Less(t, p.X, scenario.MaxX)
		assert.GreaterOrEqual(t, p.Y, scenario.MinY)
		assert.Less(t, p.Y, scenario.MaxY)
	}

	c, err := scenario.Generate(scenario.GenerateOptions{Cities: 15, Seed: 21})
	require.NoError(t, err)
	require.NotEqual(t, a.Points, c.Points)
	require.Equal(t, scenario.Normal, c.Difficulty, "empty difficulty means normal")
}

func TestGenerate_HardKeepsATour(t *testing.T) {
	n := 8
	want := int(scenario.HardRemoveFraction * float64(n*(n-1)))

	for _, d := range []scenario.Difficulty{scenario.Hard, scenario.HardDeterministic} {
		s, err := scenario.Generate(scenario.GenerateOptions{Cities: n, Difficulty: d, Seed: 4})
		require.NoError(t, err)
		require.Len(t, s.Removed, want, d)

		dist, err := s.CostMatrix()
		require.NoError(t, err)

		opts := tsp.DefaultOptions()
		opts.TimeBudget = tsp.Unlimited
		res, err := tsp.SolveMatrix(dist, tsp.Infeasible(), opts)
		require.NoError(t, err)
		require.True(t, res.Feasible(), "%s must keep a Hamiltonian cycle", d)
	}

	a, err := scenario.Generate(scenario.GenerateOptions{Cities: n, Difficulty: scenario.HardDeterministic, Seed: 4})
	require.NoError(t, err)
	b, err := scenario.Generate(scenario.GenerateOptions{Cities: n, Difficulty: scenario.HardDeterministic, Seed: 4})
	require.NoError(t, err)
	require.Equal(t, a.Removed, b.Removed)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := scenario.Generate(scenario.GenerateOptions{Cities: 0})
	require.ErrorIs(t, err, scenario.ErrMalformed)
	_, err = scenario.Generate(scenario.GenerateOptions{Cities: 3, Difficulty: "brutal"})
	require.ErrorIs(t, err, scenario.ErrUnknownDifficulty)
}

// -----------------------------------------------------------------------------
// Codecs
// -----------------------------------------------------------------------------

func TestSaveLoad_BothFormats(t *testing.T) {
	s, err := scenario.Generate(scenario.GenerateOptions{Cities: 6, Difficulty: scenario.HardDeterministic, Seed: 9})
	require.NoError(t, err)
	want, err := s.CostMatrix()
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"net.toml", "net.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, s.Save(path))

		back, err := scenario.Load(path)
		require.NoError(t, err, name)
		require.Equal(t, s.Difficulty, back.Difficulty)
		require.Equal(t, s.Removed, back.Removed)

		got, err := back.CostMatrix()
		require.NoError(t, err)
		require.True(t, want.Equal(got), "%s: costs survive the round trip", name)
	}

	_, err = scenario.Load(filepath.Join(dir, "net.yaml"))
	require.ErrorIs(t, err, scenario.ErrUnknownFormat)
	require.ErrorIs(t, s.Save(filepath.Join(dir, "net.csv")), scenario.ErrUnknownFormat)
}

func TestEncode_MissingEdges(t *testing.T) {
	inf := math.Inf(1)
	s := &scenario.Scenario{Difficulty: scenario.Hard, Matrix: [][]float64{{inf, 3}, {inf, inf}}}

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf, scenario.FormatJSON))
	require.Contains(t, buf.String(), "null")

	back, err := scenario.Decode(buf.Bytes(), scenario.FormatJSON)
	require.NoError(t, err)
	require.True(t, math.IsInf(back.Matrix[1][0], 1))
	require.Equal(t, 3.0, back.Matrix[0][1])

	buf.Reset()
	require.NoError(t, s.Encode(&buf, scenario.FormatTOML))
	require.Contains(t, buf.String(), "inf")

	back, err = scenario.Decode(buf.Bytes(), scenario.FormatTOML)
	require.NoError(t, err)
	require.True(t, math.IsInf(back.Matrix[1][0], 1))

	require.ErrorIs(t, s.Encode(&buf, "xml"), scenario.ErrUnknownFormat)
}

func TestDecodeJSON_Errors(t *testing.T) {
	cases := map[string]string{
		"invalid":      `{"points": [`,
		"not object":   `[1, 2]`,
		"bad point":    `{"points": [{"x": "a", "y": 0}]}`,
		"bad edge":     `{"points": [{"x": 0, "y": 0}, {"x": 1, "y": 1}], "removed": [{"from": 0}]}`,
		"bad cell":     `{"matrix": [[null, "x"], [1, null]]}`,
		"no cities":    `{"difficulty": "easy"}`,
		"ragged":       `{"matrix": [[null, 1], [1]]}`,
		"unknown diff": `{"difficulty": "insane", "points": [{"x": 0, "y": 0}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.DecodeJSON([]byte(doc))
			require.Error(t, err)
			if name == "unknown diff" {
				require.ErrorIs(t, err, scenario.ErrUnknownDifficulty)
				return
			}
			require.ErrorIs(t, err, scenario.ErrMalformed)
		})
	}
}

func TestDecodeJSON_Minimal(t *testing.T) {
	s, err := scenario.DecodeJSON([]byte(`{"points": [{"x": 0, "y": 0}, {"x": 0.5, "y": 0, "elevation": 0.25}]}`))
	require.NoError(t, err)
	require.Equal(t, scenario.Normal, s.Difficulty)
	ab, ba := costs(t, s)
	require.Equal(t, 750.0, ab)
	require.Equal(t, 250.0, ba)
}

func TestDecodeTOML_UnknownKey(t *testing.T) {
	doc := strings.Join([]string{
		`difficulty = "easy"`,
		`colour = "blue"`,
		`[[points]]`,
		`x = 0.0`,
		`y = 0.0`,
	}, "\n")
	_, err := scenario.Decode([]byte(doc), scenario.FormatTOML)
	require.ErrorIs(t, err, scenario.ErrMalformed)

	_, err = scenario.Decode([]byte(`difficulty = `), scenario.FormatTOML)
	require.ErrorIs(t, err, scenario.ErrMalformed)
}
