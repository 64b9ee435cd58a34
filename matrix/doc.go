// SPDX-License-Identifier: MIT

// Package matrix provides the dense float64 storage used by the solver.
//
// The package offers:
//
//   - Matrix: a small bounds-checked interface (Rows, Cols, At, Set, Clone)
//     so callers and tests can plug in their own layouts.
//   - Dense: a row-major implementation backed by one flat slice. Clone is a
//     single copy of that slice, which makes copy-on-branch cheap and free of
//     hidden aliasing between owners.
//
// Values:
//
//   - +Inf is a legal value and denotes a missing (forbidden) entry.
//   - NaN is rejected by every writer in this package.
//
// Complexity quicksheet:
//   - NewDense/NewFilled: O(r*c); At/Set: O(1); Clone: O(r*c);
//     FillRow: O(c); FillCol: O(r); RowView: O(1), no copy.
package matrix
