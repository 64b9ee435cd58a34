// Package tourbnb is a time-boxed branch-and-bound solver for the travelling
// salesman problem on directed, possibly incomplete, cost graphs.
//
// Given n cities and a directed cost for every ordered pair (missing roads
// cost +Inf), tourbnb searches for the cheapest closed tour that visits each
// city exactly once. The search is best-first over partial routes, each
// carrying a reduced cost matrix whose reduction total is a lower bound on
// any completion. A heuristic tour seeds the incumbent, and the search keeps
// improving it until the queue is exhausted (the tour is then optimal) or
// the wall-clock budget runs out (the best tour so far is returned).
//
// Layout:
//
//	matrix/           dense row-major float64 matrix with +Inf support
//	tsp/              cost matrix builder, reducer, search engine, incumbent
//	seed/             initial tours: random, greedy, cheapest insertion, 2-opt
//	scenario/         cities with elevation, difficulties, generator, TOML/JSON files
//	metrics/          Prometheus collectors for finished searches
//	config/           tourbnb.toml loading and validation
//	internal/job      one end-to-end solve shared by the CLI and the API
//	internal/server   HTTP API (chi)
//	internal/cli      cobra commands
//	cmd/tourbnb       the binary
//
// Quick example:
//
//	s, _ := scenario.Generate(scenario.GenerateOptions{Cities: 12, Difficulty: scenario.Hard, Seed: 7})
//	dist, _ := s.CostMatrix()
//	opts := tsp.DefaultOptions()
//	opts.TimeBudget = 5 * time.Second
//	res, _ := tsp.SolveMatrixWith(dist, seed.DefaultBest(7), opts, time.Now())
//	fmt.Println(res.Cost, tsp.RouteString(res.Tour), res.TimedOut)
//
// From the shell:
//
//	tourbnb solve --cities 15 --difficulty hard --seed 7 --budget 10s
//	tourbnb generate --cities 12 --difficulty normal -o city.toml
//	tourbnb serve --addr :8080
package tourbnb
