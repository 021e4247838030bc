package commands

import (
	"fmt"

	"scrapekit/internal/export"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reviewsCmd)
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews <URL file.csv>",
	Short: "Collects reviews for the links in a file written by discover.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := export.ReadRecords(args[0], cfg.Harvest.Separator)
		if err != nil {
			return err
		}

		runner, closeFn, err := newRunner(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		result, err := runner.RunReviews(cmd.Context(), records)
		if result != nil && result.File != "" {
			fmt.Fprintln(cmd.OutOrStdout(), result.File)
		}
		return err
	},
}
