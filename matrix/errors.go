// SPDX-License-Identifier: MIT

// Package matrix: sentinel error set.
// All functions return these sentinels (possibly wrapped with coordinates via
// %w); tests match them with errors.Is. No function panics on user input.
package matrix

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaN signals a NaN value where a number (finite or +Inf) was required.
	ErrNaN = errors.New("matrix: NaN encountered")
)

