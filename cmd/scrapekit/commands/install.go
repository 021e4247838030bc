package commands

import (
	"scrapekit/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Downloads the playwright driver and the configured browser.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.NewComponentFactory(cfg, log).CreateLauncher().Install(); err != nil {
			return err
		}
		log.Info("Browser installed", zap.String("engine", cfg.Discovery.Browser.Engine))
		return nil
	},
}
