package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourbnb/tsp"
)

func TestReduceMatrix_Classic(t *testing.T) {
	m := denseFrom(t, [][]float64{
		{inf, 1200, 1600},
		{1300, inf, 1459},
		{1500, 1400, inf},
	})

	// Rows: 1200 + 1300 + 1400; then column 2 still has minimum 159.
	got := tsp.ReduceMatrix(m)
	require.Equal(t, 4059.0, got)

	want := denseFrom(t, [][]float64{
		{inf, 0, 241},
		{0, inf, 0},
		{100, 0, inf},
	})
	require.True(t, want.Equal(m), "got\n%s", m)
}

func TestReduceMatrix_SkipsInfAndZeroLines(t *testing.T) {
	m := denseFrom(t, [][]float64{
		{inf, inf, inf},
		{0, inf, 5},
		{3, 7, inf},
	})

	got := tsp.ReduceMatrix(m)
	// Row 0 all +Inf (skipped), row 1 minimum 0 (skipped), row 2 minus 3.
	// Columns: col0 min 0, col1 min 4, col2 min 5.
	require.Equal(t, 3.0+4.0+5.0, got)

	want := denseFrom(t, [][]float64{
		{inf, inf, inf},
		{0, inf, 0},
		{0, 0, inf},
	})
	require.True(t, want.Equal(m), "got\n%s", m)
}

func TestReduceMatrix_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(seedDet))

	Repeat(t, 20, func(t *testing.T) {
		n := 2 + rng.Intn(8)
		m := randomDense(t, rng, n, 0.3)
		orig := m.CloneDense()

		total := tsp.ReduceMatrix(m)
		require.GreaterOrEqual(t, total, 0.0)

		var i, j int
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				v, _ := m.At(i, j)
				o, _ := orig.At(i, j)
				require.Equal(t, math.IsInf(o, 1), math.IsInf(v, 1), "+Inf pattern preserved at (%d,%d)", i, j)
				require.GreaterOrEqual(t, v, 0.0)
			}
		}

		// A second pass finds nothing left to remove.
		require.Zero(t, tsp.ReduceMatrix(m))

		// The reduction never exceeds any finite tour.
		if c, _ := bruteForce(orig); !math.IsInf(c, 1) {
			require.LessOrEqual(t, total, c+epsCost)
		}
	})
}

func TestReduceMatrix_Nil(t *testing.T) {
	require.Zero(t, tsp.ReduceMatrix(nil))
}
