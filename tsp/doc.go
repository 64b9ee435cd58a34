// Package tsp computes near-optimal tours for the (asymmetric) Travelling
// Salesman Problem with a time-boxed, best-first Branch-and-Bound search.
//
// Pipeline:
//
//   - BuildCostMatrix: cities → n×n directed cost matrix (+Inf = no edge,
//     +Inf on the diagonal).
//   - ReduceMatrix: classical row/column reduction; the amount removed is an
//     admissible lower-bound contribution.
//   - SolveMatrix / Solve: min-heap driven search over partial routes with
//     lazy bound tightening (each state is reduced when popped), pruning
//     against the incumbent, and a wall-clock deadline.
//   - Incumbent: best-so-far complete tour; replaced only by strictly
//     cheaper tours.
//
// The search is anytime: when the budget runs out the best tour found so far
// is returned (possibly the caller-provided seed). A seed with Cost=+Inf is
// accepted; the search then degrades toward exhaustive enumeration.
//
// Missing edges:
//   - A cost of math.Inf(1) signals "no direct edge".
//   - Disconnected instances are not errors: the result simply keeps the seed
//     (often the infeasible one, Cost=+Inf, empty Tour).
//
// Concurrency:
//   - One Solve call is single-threaded and owns all of its state; separate
//     calls may run concurrently on the same immutable inputs.
package tsp
