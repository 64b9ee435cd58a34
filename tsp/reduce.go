package tsp

import (
	"math"

	"github.com/katalvlaran/tourbnb/matrix"
)

// ReduceMatrix performs the classical row-then-column reduction of m in place
// and returns the total amount subtracted.
//
// Row pass: for every row whose minimum is finite and positive, subtract the
// minimum from all entries of that row. Column pass: the same per column on
// the row-reduced matrix. Rows/columns that are entirely +Inf, or whose
// minimum is already 0, are left alone. +Inf entries stay +Inf.
//
// The returned amount is a lower bound on the extra cost any completion of
// the owning partial route must pay, which keeps bounds admissible.
//
// Complexity: O(n²) time, O(1) extra space.
func ReduceMatrix(m *matrix.Dense) float64 {
	if m == nil {
		return 0
	}

	var (
		rows, cols = m.Shape()
		total      float64
		row        []float64
		lo, v      float64
		i, j       int
	)

	for i = 0; i < rows; i++ {
		row, _ = m.RowView(i)
		lo = math.Inf(1)
		for _, v = range row {
			if v < lo {
				lo = v
			}
		}
		if math.IsInf(lo, 1) || lo <= 0 {
			continue
		}
		for j = range row {
			row[j] -= lo // +Inf − lo stays +Inf
		}
		total += lo
	}

	for j = 0; j < cols; j++ {
		lo = math.Inf(1)
		for i = 0; i < rows; i++ {
			if v, _ = m.At(i, j); v < lo {
				lo = v
			}
		}
		if math.IsInf(lo, 1) || lo <= 0 {
			continue
		}
		for i = 0; i < rows; i++ {
			row, _ = m.RowView(i)
			row[j] -= lo
		}
		total += lo
	}

	return total
}
