package commands

import (
	"fmt"

	"scrapekit/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(harvestCmd)
}

var harvestCmd = &cobra.Command{
	Use:   "harvest [--input file.csv] [--offset N] [--limit N]",
	Short: "Finds review links for the product list, collects the reviews and writes both tables.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		terms, err := app.LoadTerms(cfg.Harvest)
		if err != nil {
			return err
		}

		runner, closeFn, err := newRunner(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		result, err := runner.RunHarvest(cmd.Context(), terms)
		if result != nil {
			for _, f := range []string{result.Discovery.File, result.Review.File} {
				if f != "" {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
			}
		}
		return err
	},
}
