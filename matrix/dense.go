// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - A cache-friendly row-major buffer with the explicit offset formula i*cols + j.
//   - Safety at the public surface: At/Set/Fill* return errors instead of panicking.
//   - Copy-on-branch: CloneDense duplicates exactly one flat slice, so two owners
//     never share storage.
package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxFillRow = "FillRow"
	ctxFillCol = "FillCol"
	ctxRowView = "RowView"
)

// denseErrorf attaches method context and coordinates to a sentinel error.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix.
//
// Errors:
//   - ErrInvalidDimensions if rows<=0 or cols<=0.
//
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFilled creates an r×c matrix with every entry set to v.
// v may be +Inf (a matrix of forbidden entries); NaN is rejected.
//
// Complexity: O(r*c).
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	if math.IsNaN(v) {
		return nil, ErrNaN
	}
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if v != 0 {
		var i int
		for i = range m.data {
			m.data[i] = v
		}
	}

	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or a wrapped ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). +Inf is accepted, NaN is rejected with ErrNaN.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) {
		return denseErrorf(ctxSet, row, col, ErrNaN)
	}
	m.data[off] = v

	return nil
}

// FillRow sets every entry of row i to v.
// Complexity: O(c).
func (m *Dense) FillRow(i int, v float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxFillRow, i, 0, ErrOutOfRange)
	}
	if math.IsNaN(v) {
		return denseErrorf(ctxFillRow, i, 0, ErrNaN)
	}
	var (
		row = m.data[i*m.c : (i+1)*m.c]
		j   int
	)
	for j = range row {
		row[j] = v
	}

	return nil
}

// FillCol sets every entry of column j to v.
// Complexity: O(r).
func (m *Dense) FillCol(j int, v float64) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxFillCol, 0, j, ErrOutOfRange)
	}
	if math.IsNaN(v) {
		return denseErrorf(ctxFillCol, 0, j, ErrNaN)
	}
	var i int
	for i = 0; i < m.r; i++ {
		m.data[i*m.c+j] = v
	}

	return nil
}

// RowView returns row i as a slice aliasing the backing buffer (no copy).
// Writes through the view mutate the matrix; callers own that contract.
// Complexity: O(1).
func (m *Dense) RowView(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRowView, i, 0, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c], nil
}

// Clone returns a deep copy as a Matrix.
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix { return m.CloneDense() }

// CloneDense returns a deep copy keeping the concrete type.
// The copy owns a fresh buffer; later writes to either side stay private.
// Complexity: O(r*c).
func (m *Dense) CloneDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Equal reports whether o has the same shape and bit-identical contents.
// +Inf equals +Inf; NaN never occurs (writers reject it).
func (m *Dense) Equal(o *Dense) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	var i int
	for i = range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}

	return true
}

// String renders rows as lines with comma-separated values; for debugging only.
func (m *Dense) String() string {
	var (
		sb   strings.Builder
		i, j int
	)
	for i = 0; i < m.r; i++ {
		sb.WriteString("[")
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
