package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(hitsCmd)
}

var hitsCmd = &cobra.Command{
	Use:   "hits [--top N]",
	Short: "Counts search results for every name on the names page and prints the most popular ones.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, closeFn, err := newRunner(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		_, err = runner.RunHits(cmd.Context(), cmd.OutOrStdout())
		return err
	},
}
