// Package metrics exports search results as Prometheus collectors.
//
// A Recorder is safe for concurrent use; the HTTP server shares one across
// all request goroutines.
package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/tourbnb/tsp"
)

const namespace = "tourbnb"

// Outcome labels for the solves counter.
const (
	OutcomeOptimal    = "optimal"
	OutcomeTimedOut   = "timed_out"
	OutcomeInfeasible = "infeasible"
	OutcomeError      = "error"
)

// Recorder holds the solver collectors.
type Recorder struct {
	SolvesTotal      *prometheus.CounterVec
	SolveDuration    *prometheus.HistogramVec
	StatesCreated    prometheus.Counter
	StatesPruned     prometheus.Counter
	IncumbentUpdates prometheus.Counter
	MaxQueueSize     prometheus.Gauge
	LastCost         prometheus.Gauge
}

// NewRecorder registers the collectors on reg. Pass prometheus.NewRegistry()
// in tests to keep them isolated; nil uses the default registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Recorder{
		SolvesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Completed searches by priority and outcome",
		}, []string{"priority", "outcome"}),

		SolveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time spent per search",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4.4min
		}, []string{"priority"}),

		StatesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_created_total",
			Help:      "Child states generated by expansion",
		}),

		StatesPruned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "states_pruned_total",
			Help:      "States discarded because their bound met the incumbent",
		}),

		IncumbentUpdates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incumbent_updates_total",
			Help:      "Strictly improving tours accepted during search",
		}),

		MaxQueueSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_max_queue_size",
			Help:      "Largest queue length of the most recent search",
		}),

		LastCost: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_tour_cost",
			Help:      "Tour cost of the most recent search (+Inf when infeasible)",
		}),
	}
}

// Outcome classifies a result for the solves counter.
func Outcome(res tsp.SearchResult) string {
	switch {
	case res.TimedOut:
		return OutcomeTimedOut
	case !res.Feasible():
		return OutcomeInfeasible
	default:
		return OutcomeOptimal
	}
}

// Observe records one finished search. A nil Recorder is a no-op.
func (r *Recorder) Observe(res tsp.SearchResult) {
	if r == nil {
		return
	}
	p := res.Priority.String()
	r.SolvesTotal.WithLabelValues(p, Outcome(res)).Inc()
	r.SolveDuration.WithLabelValues(p).Observe(res.Elapsed.Seconds())
	r.StatesCreated.Add(float64(res.StatesCreated))
	r.StatesPruned.Add(float64(res.Pruned))
	r.IncumbentUpdates.Add(float64(res.IncumbentUpdates))
	r.MaxQueueSize.Set(float64(res.MaxQueueSize))
	if res.Feasible() {
		r.LastCost.Set(res.Cost)
	} else {
		r.LastCost.Set(math.Inf(1))
	}
}

// ObserveError counts a search that was rejected before running.
func (r *Recorder) ObserveError(p tsp.Priority) {
	if r == nil {
		return
	}
	r.SolvesTotal.WithLabelValues(p.String(), OutcomeError).Inc()
}
