// Package commands содержит команды CLI.
package commands

import (
	"context"
	"fmt"
	"os"

	"scrapekit/internal/app"
	"scrapekit/internal/config"
	"scrapekit/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var overrides struct {
	output   string
	input    string
	offset   int
	limit    int
	workers  int
	headless bool
	top      int
}

var rootCmd = &cobra.Command{
	Use:          "scrapekit",
	Short:        "scrapekit collects search hit counts and beer reviews from public sites.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := applyOverrides(cmd, loaded); err != nil {
			return err
		}
		cfg = loaded

		opts := logger.OptionsFromEnv()
		if opts.Level == "" {
			opts.Level = cfg.LogLevel
		}
		if opts.DataDir == "" {
			opts.DataDir = cfg.AppDataDir
		}
		log = logger.New(opts)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&overrides.output, "output", "o", "", "directory for result files (OUTPUT_DIR)")
	flags.StringVarP(&overrides.input, "input", "i", "", "product list CSV (INPUT_PATH)")
	flags.IntVar(&overrides.offset, "offset", 0, "skip the first N products (INPUT_OFFSET)")
	flags.IntVar(&overrides.limit, "limit", 0, "process at most N products, 0 for all (INPUT_LIMIT)")
	flags.IntVarP(&overrides.workers, "workers", "w", 0, "number of browser workers (DISCOVERY_WORKERS)")
	flags.BoolVar(&overrides.headless, "headless", true, "run the browser without a window (BROWSER_HEADLESS)")
	flags.IntVar(&overrides.top, "top", 0, "number of names in the hit ranking (HITS_TOP_N)")
}

// applyOverrides переносит явно заданные флаги поверх конфигурации из окружения
func applyOverrides(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		c.Harvest.OutputDir = overrides.output
	}
	if flags.Changed("input") {
		c.Harvest.InputPath = overrides.input
	}
	if flags.Changed("offset") {
		c.Harvest.Offset = overrides.offset
	}
	if flags.Changed("limit") {
		c.Harvest.Limit = overrides.limit
	}
	if flags.Changed("workers") {
		c.Discovery.Workers = overrides.workers
	}
	if flags.Changed("headless") {
		c.Discovery.Browser.Headless = overrides.headless
	}
	if flags.Changed("top") {
		c.NameHits.TopN = overrides.top
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// newRunner собирает Runner; close нужно вызвать после завершения команды
func newRunner(ctx context.Context) (*app.Runner, func(), error) {
	return app.NewComponentFactory(cfg, log).CreateRunner(ctx)
}

// ExecuteContext выполняет CLI и завершает процесс с кодом 1 при ошибке
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
