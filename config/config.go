// Package config loads tourbnb.toml.
//
//	[solver]
//	budget = "60s"
//	priority = "bound-per-depth"
//	eager_prune = false
//
//	[seed]
//	provider = "greedy"
//	rng_seed = 0
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "info"
//
// Every key is optional; missing keys keep their Default value.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/tourbnb/seed"
	"github.com/katalvlaran/tourbnb/tsp"
)

// ErrInvalid wraps every decoding and validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the decoded configuration file.
type Config struct {
	Solver Solver `toml:"solver"`
	Seed   Seed   `toml:"seed"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Solver configures the search.
type Solver struct {
	// Budget is the wall-clock window; "0s" returns the seed immediately and
	// "unlimited" disables the deadline.
	Budget     Duration `toml:"budget" validate:"gte=0"`
	Priority   string   `toml:"priority" validate:"oneof=bound-per-depth depth-penalized pure-bound"`
	EagerPrune bool     `toml:"eager_prune"`
	Start      int      `toml:"start" validate:"gte=0"`
}

// Seed configures the initial incumbent.
type Seed struct {
	Provider string `toml:"provider" validate:"oneof=none random greedy insertion best"`
	RNGSeed  int64  `toml:"rng_seed"`
}

// Server configures `tourbnb serve`.
type Server struct {
	Addr string `toml:"addr" validate:"required,hostname_port"`
}

// Log configures the charm logger.
type Log struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// Duration is a time.Duration decoded from strings like "1m30s" or "unlimited".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	if string(text) == "unlimited" {
		*d = Duration(tsp.Unlimited)
		return nil
	}
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	if time.Duration(d) == tsp.Unlimited {
		return []byte("unlimited"), nil
	}

	return []byte(time.Duration(d).String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Solver: Solver{
			Budget:   Duration(tsp.DefaultTimeBudget),
			Priority: tsp.BoundPerDepth.String(),
		},
		Seed:   Seed{Provider: seed.NameGreedy},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info"},
	}
}

// Load decodes path over the defaults and validates the result.
// A missing file is not an error: Default() is returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}

	return Decode(data)
}

// Decode parses TOML over the defaults and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Decode(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if extra := md.Undecoded(); len(extra) > 0 {
		return Config{}, fmt.Errorf("%w: unknown keys %v", ErrInvalid, extra)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its tag.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s fails %q", ErrInvalid, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Options converts the solver section to tsp.Options.
func (c Config) Options() (tsp.Options, error) {
	p, err := tsp.ParsePriority(c.Solver.Priority)
	if err != nil {
		return tsp.Options{}, err
	}
	opts := tsp.DefaultOptions()
	opts.TimeBudget = time.Duration(c.Solver.Budget)
	opts.Priority = p
	opts.EagerPrune = c.Solver.EagerPrune
	opts.Start = c.Solver.Start

	return opts, nil
}

// Seeder builds the configured seed provider.
func (c Config) Seeder() (tsp.Seeder, error) {
	return seed.New(c.Seed.Provider, c.Seed.RNGSeed)
}
