package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tourbnb/config"
	"github.com/katalvlaran/tourbnb/internal/job"
	"github.com/katalvlaran/tourbnb/scenario"
	"github.com/katalvlaran/tourbnb/seed"
)

// solveFlags are the flags of `tourbnb solve`.
type solveFlags struct {
	scenarioPath string
	cities       int
	difficulty   string
	genSeed      int64

	budget     string
	priority   string
	seeder     string
	rngSeed    int64
	start      int
	eagerPrune bool
	asJSON     bool
}

func (c *CLI) solveCommand() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the cheapest tour of a scenario",
		Long: `Solve a scenario file, or a scenario generated on the fly from
--cities/--difficulty/--seed, with the time-boxed branch-and-bound search.

The search starts from the tour of the configured seed provider and never
returns anything worse. When the budget runs out the best tour so far is
reported.`,
		Example: `  tourbnb solve --scenario city.toml --budget 10s
  tourbnb solve --cities 15 --difficulty hard --seed 7 --seeder best --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSolve(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.scenarioPath, "scenario", "", "scenario file (.toml or .json)")
	fl.IntVar(&f.cities, "cities", 10, "number of cities to generate when --scenario is not given")
	fl.StringVar(&f.difficulty, "difficulty", string(scenario.Normal), "generated difficulty: easy, normal, hard, hard-deterministic")
	fl.Int64Var(&f.genSeed, "seed", 0, "generator seed")
	fl.StringVar(&f.budget, "budget", "", `time budget such as "60s", "0s" or "unlimited" (default from config)`)
	fl.StringVar(&f.priority, "priority", "", "queue priority: bound-per-depth, depth-penalized, pure-bound")
	fl.StringVar(&f.seeder, "seeder", "", fmt.Sprintf("seed provider: %v", seed.Names()))
	fl.Int64Var(&f.rngSeed, "rng-seed", 0, "seed for randomised providers")
	fl.IntVar(&f.start, "start", 0, "city every tour starts from")
	fl.BoolVar(&f.eagerPrune, "eager-prune", false, "drop hopeless children before queueing them")
	fl.BoolVar(&f.asJSON, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("scenario", "cities")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, f solveFlags) error {
	logger := loggerFromContext(cmd.Context())

	s, err := loadOrGenerate(f)
	if err != nil {
		return err
	}

	cfg, err := c.solveConfig(cmd, f)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	rep, _, err := job.Run(job.Job{
		Scenario: s,
		Options:  opts,
		Seeder:   cfg.Seed.Provider,
		RNGSeed:  cfg.Seed.RNGSeed,
	}, logger, nil)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	renderReport(w, rep)

	return nil
}

// solveConfig overlays explicitly set flags on the loaded configuration and
// validates the result.
func (c *CLI) solveConfig(cmd *cobra.Command, f solveFlags) (config.Config, error) {
	cfg := c.Config
	fl := cmd.Flags()

	if fl.Changed("budget") {
		var d config.Duration
		if err := d.UnmarshalText([]byte(f.budget)); err != nil {
			return cfg, fmt.Errorf("--budget: %w", err)
		}
		cfg.Solver.Budget = d
	}
	if fl.Changed("priority") {
		cfg.Solver.Priority = f.priority
	}
	if fl.Changed("seeder") {
		cfg.Seed.Provider = f.seeder
	}
	if fl.Changed("rng-seed") {
		cfg.Seed.RNGSeed = f.rngSeed
	}
	if fl.Changed("start") {
		cfg.Solver.Start = f.start
	}
	if fl.Changed("eager-prune") {
		cfg.Solver.EagerPrune = f.eagerPrune
	}

	return cfg, cfg.Validate()
}

func loadOrGenerate(f solveFlags) (*scenario.Scenario, error) {
	if f.scenarioPath != "" {
		return scenario.Load(f.scenarioPath)
	}
	if f.cities < 1 {
		return nil, errors.New("--cities must be at least 1")
	}

	return scenario.Generate(scenario.GenerateOptions{
		Cities:     f.cities,
		Difficulty: scenario.Difficulty(f.difficulty),
		Seed:       f.genSeed,
	})
}
