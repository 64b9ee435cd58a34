package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tourbnb/scenario"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		cities     int
		difficulty string
		genSeed    int64
		output     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random scenario to a file",
		Long: `Generate places cities on the plane with random elevations and writes the
scenario as TOML or JSON, chosen by the output extension. Hard difficulties
remove a fifth of the directed edges while keeping at least one tour.`,
		Example: `  tourbnb generate --cities 12 --difficulty hard-deterministic --seed 4 -o hard12.toml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			s, err := scenario.Generate(scenario.GenerateOptions{
				Cities:     cities,
				Difficulty: scenario.Difficulty(difficulty),
				Seed:       genSeed,
			})
			if err != nil {
				return err
			}
			if err = s.Save(output); err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Debug("scenario written", "cities", s.Len(), "removed", len(s.Removed))
			w := cmd.OutOrStdout()
			printSuccess(w, "Generated %s (%d cities, %s)", s.Name, s.Len(), s.Difficulty)
			printFile(w, output)

			return nil
		},
	}

	cmd.Flags().IntVar(&cities, "cities", 10, "number of cities")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(scenario.Normal), "easy, normal, hard, hard-deterministic")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "generator seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.toml or .json)")

	return cmd
}
