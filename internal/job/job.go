// Package job runs one solve end to end: cost matrix, seed provider, search,
// metrics and the JSON report shared by the CLI and the HTTP API.
package job

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/katalvlaran/tourbnb/metrics"
	"github.com/katalvlaran/tourbnb/scenario"
	"github.com/katalvlaran/tourbnb/seed"
	"github.com/katalvlaran/tourbnb/tsp"
)

// ErrNoScenario is returned by Run for a Job without a scenario.
var ErrNoScenario = errors.New("job: no scenario")

// Job is one solve request.
type Job struct {
	Scenario *scenario.Scenario
	Options  tsp.Options
	Seeder   string
	RNGSeed  int64
}

// Stats mirrors tsp.Stats with JSON names.
type Stats struct {
	StatesCreated    int `json:"states_created"`
	Pruned           int `json:"pruned"`
	MaxQueueSize     int `json:"max_queue_size"`
	IncumbentUpdates int `json:"incumbent_updates"`
}

// Report is the JSON view of a finished run. Cost is null when no feasible
// tour is known.
type Report struct {
	RunID     string   `json:"run_id"`
	Scenario  string   `json:"scenario,omitempty"`
	Cities    int      `json:"cities"`
	Cost      *float64 `json:"cost"`
	Tour      []int    `json:"tour"`
	ElapsedMS float64  `json:"elapsed_ms"`
	TimedOut  bool     `json:"timed_out"`
	Priority  string   `json:"priority"`
	Seeder    string   `json:"seeder"`
	Stats     Stats    `json:"stats"`
}

// NewReport converts a search result.
func NewReport(runID string, s *scenario.Scenario, seeder string, res tsp.SearchResult) Report {
	r := Report{
		RunID:     runID,
		Tour:      append([]int{}, res.Tour...),
		ElapsedMS: float64(res.Elapsed.Microseconds()) / 1000,
		TimedOut:  res.TimedOut,
		Priority:  res.Priority.String(),
		Seeder:    seeder,
		Stats: Stats{
			StatesCreated:    res.StatesCreated,
			Pruned:           res.Pruned,
			MaxQueueSize:     res.MaxQueueSize,
			IncumbentUpdates: res.IncumbentUpdates,
		},
	}
	if s != nil {
		r.Scenario = s.Name
		r.Cities = s.Len()
	}
	if !math.IsInf(res.Cost, 1) {
		c := res.Cost
		r.Cost = &c
	}

	return r
}

// Run solves j. The time budget covers matrix construction, seeding and the
// search. logger and rec may be nil.
func Run(j Job, logger *log.Logger, rec *metrics.Recorder) (Report, tsp.SearchResult, error) {
	t0 := time.Now()
	runID := uuid.NewString()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("run_id", runID)

	res, err := run(j, logger, t0)
	if err != nil {
		rec.ObserveError(j.Options.Priority)
		logger.Debug("solve failed", "err", err)
		return Report{}, tsp.SearchResult{}, err
	}
	rec.Observe(res)

	logger.Info("solved",
		"cities", j.Scenario.Len(),
		"cost", res.Cost,
		"timed_out", res.TimedOut,
		"states", res.StatesCreated,
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)

	return NewReport(runID, j.Scenario, j.Seeder, res), res, nil
}

func run(j Job, logger *log.Logger, t0 time.Time) (tsp.SearchResult, error) {
	if j.Scenario == nil {
		return tsp.SearchResult{}, ErrNoScenario
	}
	dist, err := j.Scenario.CostMatrix()
	if err != nil {
		return tsp.SearchResult{}, err
	}
	name := j.Seeder
	if name == "" {
		name = seed.NameNone
	}
	seeder, err := seed.New(name, j.RNGSeed)
	if err != nil {
		return tsp.SearchResult{}, err
	}

	opts := j.Options
	opts.Logger = logger
	logger.Debug("solving", "cities", dist.Rows(), "priority", opts.Priority, "seeder", name, "budget", opts.TimeBudget)

	res, err := tsp.SolveMatrixWith(dist, seeder, opts, t0)
	if err != nil {
		return tsp.SearchResult{}, fmt.Errorf("solve %q: %w", j.Scenario.Name, err)
	}

	return res, nil
}
