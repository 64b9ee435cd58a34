// Package cli implements the tourbnb command-line interface.
//
// # Commands
//
//   - solve:    solve a scenario file or a generated scenario
//   - generate: write a random scenario to a TOML or JSON file
//   - serve:    run the HTTP API
//   - version:  print build information
//
// # Configuration
//
// Defaults come from the --config file (tourbnb.toml, optional); command
// flags override it only when set explicitly.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// surfaces the engine's incumbent updates. Loggers travel through
// context.Context.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tourbnb/config"
)

const (
	appName = "tourbnb"

	// defaultConfigPath is read when --config is not given; it may be absent.
	defaultConfigPath = "tourbnb.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the build information printed by `tourbnb version`,
// typically injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// RootCommand creates the root command with every subcommand registered.
// The persistent pre-run loads the config file and settles the log level.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "tourbnb solves travelling salesman tours by branch and bound",
		Long:         `tourbnb searches for the cheapest closed tour over a set of cities with a time-boxed best-first branch-and-bound, seeded by a heuristic tour.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", defaultConfigPath, "configuration file (TOML, optional)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.configPath, err)
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	return nil
}

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, StyleTitle.Render(appName)+" "+StyleValue.Render(version))
			if commit != "" {
				printKeyValue(w, "commit", commit)
			}
			if date != "" {
				printKeyValue(w, "built", date)
			}
		},
	}
}
