package commands

import (
	"fmt"

	"scrapekit/internal/app"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover [term...]",
	Short: "Finds review page links for the given terms, or for the product list when no terms are given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		terms := args
		if len(terms) == 0 {
			var err error
			if terms, err = app.LoadTerms(cfg.Harvest); err != nil {
				return err
			}
		}

		runner, closeFn, err := newRunner(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		result, err := runner.RunDiscover(cmd.Context(), terms)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.File)
		return nil
	},
}
