// Package server exposes the solver over HTTP.
//
//	POST /v1/solve   solve a scenario, answer with a job.Report
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus exposition
//
// Each request runs its own search on the request goroutine; requests share
// only the metrics recorder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tidwall/gjson"

	"github.com/katalvlaran/tourbnb/config"
	"github.com/katalvlaran/tourbnb/internal/job"
	"github.com/katalvlaran/tourbnb/metrics"
	"github.com/katalvlaran/tourbnb/scenario"
	"github.com/katalvlaran/tourbnb/tsp"
)

const (
	// MaxBodyBytes caps a solve request.
	MaxBodyBytes = 4 << 20

	// MaxCities caps the scenario size accepted over HTTP.
	MaxCities = 200

	// MaxBudget caps the per-request time budget; "unlimited" is refused.
	MaxBudget = 5 * time.Minute

	shutdownGrace = 10 * time.Second
)

// ErrBadRequest marks client errors (answered with 400).
var ErrBadRequest = errors.New("server: bad request")

// Server holds the shared state of the HTTP API.
type Server struct {
	cfg      config.Config
	logger   *log.Logger
	recorder *metrics.Recorder
	gatherer prometheus.Gatherer
}

// New builds a Server. reg receives the solver metrics and backs /metrics.
func New(cfg config.Config, logger *log.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Server{
		cfg:      cfg,
		logger:   logger,
		recorder: metrics.NewRecorder(reg),
		gatherer: reg,
	}
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// solveRequest is the validated form of a POST /v1/solve body:
//
//	{"scenario": {...scenario JSON...}, "budget": "5s",
//	 "priority": "pure-bound", "seeder": "best", "rng_seed": 7,
//	 "eager_prune": true}
//
// Instead of "scenario" a body may carry
// "generate": {"cities": 12, "difficulty": "hard", "seed": 3}.
type solveRequest struct {
	Budget     time.Duration `validate:"gte=0s,lte=5m"`
	Priority   string        `validate:"oneof=bound-per-depth depth-penalized pure-bound"`
	Seeder     string        `validate:"oneof=none random greedy insertion best"`
	RNGSeed    int64
	EagerPrune bool
	Cities     int `validate:"gte=1,lte=200"` // MaxCities
	Scenario   *scenario.Scenario
}

var validate = validator.New()

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		s.fail(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if len(body) > MaxBodyBytes {
		s.fail(w, fmt.Errorf("%w: body exceeds %d bytes", ErrBadRequest, MaxBodyBytes))
		return
	}

	req, err := s.parseSolve(body)
	if err != nil {
		s.fail(w, err)
		return
	}
	prio, _ := tsp.ParsePriority(req.Priority) // validated above
	opts := tsp.DefaultOptions()
	opts.TimeBudget = req.Budget
	opts.Priority = prio
	opts.EagerPrune = req.EagerPrune

	rep, _, err := job.Run(job.Job{
		Scenario: req.Scenario,
		Options:  opts,
		Seeder:   req.Seeder,
		RNGSeed:  req.RNGSeed,
	}, s.logger, s.recorder)
	if err != nil {
		s.fail(w, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// parseSolve reads the body with gjson, fills defaults from the config and
// validates the result.
func (s *Server) parseSolve(body []byte) (solveRequest, error) {
	if !gjson.ValidBytes(body) {
		return solveRequest{}, fmt.Errorf("%w: invalid JSON", ErrBadRequest)
	}
	root := gjson.ParseBytes(body)

	req := solveRequest{
		Budget:     time.Duration(s.cfg.Solver.Budget),
		Priority:   s.cfg.Solver.Priority,
		Seeder:     s.cfg.Seed.Provider,
		RNGSeed:    s.cfg.Seed.RNGSeed,
		EagerPrune: s.cfg.Solver.EagerPrune,
	}
	if req.Budget > MaxBudget {
		req.Budget = MaxBudget
	}
	if v := root.Get("budget"); v.Exists() {
		d, err := time.ParseDuration(v.String())
		if err != nil {
			return solveRequest{}, fmt.Errorf("%w: budget: %v", ErrBadRequest, err)
		}
		req.Budget = d
	}
	if v := root.Get("priority"); v.Exists() {
		req.Priority = v.String()
	}
	if v := root.Get("seeder"); v.Exists() {
		req.Seeder = v.String()
	}
	if v := root.Get("rng_seed"); v.Exists() {
		req.RNGSeed = v.Int()
	}
	if v := root.Get("eager_prune"); v.Exists() {
		req.EagerPrune = v.Bool()
	}

	var err error
	switch sc, gen := root.Get("scenario"), root.Get("generate"); {
	case sc.IsObject():
		req.Scenario, err = scenario.DecodeJSON([]byte(sc.Raw))
	case gen.IsObject():
		if n := gen.Get("cities").Int(); n > MaxCities {
			return solveRequest{}, fmt.Errorf("%w: %d cities, at most %d", ErrBadRequest, n, MaxCities)
		}
		req.Scenario, err = scenario.Generate(scenario.GenerateOptions{
			Cities:     int(gen.Get("cities").Int()),
			Difficulty: scenario.Difficulty(gen.Get("difficulty").String()),
			Seed:       gen.Get("seed").Int(),
		})
	default:
		err = errors.New(`need a "scenario" or "generate" object`)
	}
	if err != nil {
		return solveRequest{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	req.Cities = req.Scenario.Len()

	if err = validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return solveRequest{}, fmt.Errorf("%w: %s fails %s=%s", ErrBadRequest, verrs[0].Field(), verrs[0].Tag(), verrs[0].Param())
		}
		return solveRequest{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	return req, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, ErrBadRequest) {
		code = http.StatusBadRequest
	}
	s.logger.Warn("request failed", "status", code, "err", err)
	writeJSON(w, code, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
