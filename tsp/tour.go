// Package tsp - route utilities.
//
// A route is an open index sequence; the closing edge back to route[0] is
// implicit. Helpers here never touch a cost matrix.
package tsp

import (
	"fmt"
	"strings"
)

// ValidateRoute checks that route is a permutation of {0..n-1}.
//
// Errors:
//   - ErrCityIndex for an out-of-range entry or a wrong length.
//   - ErrDuplicateCity if a city occurs twice.
//
// Complexity: O(n) time, O(n) space.
func ValidateRoute(route []int, n int) error {
	if n <= 0 {
		return ErrNoCities
	}
	if len(route) != n {
		return fmt.Errorf("%w: route has %d cities, want %d", ErrCityIndex, len(route), n)
	}

	var (
		seen = make([]bool, n)
		v    int
	)
	for _, v = range route {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: %d", ErrCityIndex, v)
		}
		if seen[v] {
			return fmt.Errorf("%w: %d visited twice", ErrDuplicateCity, v)
		}
		seen[v] = true
	}

	return nil
}

// CopyRoute returns an independent copy (nil for nil).
func CopyRoute(route []int) []int {
	if route == nil {
		return nil
	}
	out := make([]int, len(route))
	copy(out, route)

	return out
}

// RotateRoute returns a fresh copy of route shifted so that out[0]==start.
// The cycle (and therefore its cost) is unchanged. If start is absent, a
// plain copy is returned.
//
// Complexity: O(n).
func RotateRoute(route []int, start int) []int {
	var (
		n     = len(route)
		pivot = -1
		i     int
	)
	for i = 0; i < n; i++ {
		if route[i] == start {
			pivot = i
			break
		}
	}
	if pivot <= 0 {
		return CopyRoute(route)
	}

	out := make([]int, n)
	for i = 0; i < n; i++ {
		out[i] = route[(pivot+i)%n]
	}

	return out
}

// EqualModuloRotation reports whether a and b describe the same directed
// cycle, ignoring where it starts. Direction matters (asymmetric costs).
//
// Complexity: O(n).
func EqualModuloRotation(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}

	var (
		ra = RotateRoute(a, a[0])
		rb = RotateRoute(b, a[0])
		i  int
	)
	for i = range ra {
		if ra[i] != rb[i] {
			return false
		}
	}

	return true
}

// RouteString renders route as "0→3→1→2→0"; "∅" for an empty route.
func RouteString(route []int) string {
	if len(route) == 0 {
		return "∅"
	}

	var (
		sb strings.Builder
		v  int
	)
	for _, v = range route {
		fmt.Fprintf(&sb, "%d→", v)
	}
	fmt.Fprintf(&sb, "%d", route[0])

	return sb.String()
}
