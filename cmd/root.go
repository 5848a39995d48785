package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/unitgen/internal/config"
	"github.com/kamusis/unitgen/internal/logger"
	"github.com/kamusis/unitgen/internal/metrics"
	"github.com/kamusis/unitgen/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:          "unitgen",
	Short:        "Generate dimensioned Go unit types",
	SilenceUsage: true, // don't print usage on operational errors
	Long: heredoc.Doc(`
		unitgen starts from the SI unit tables, combines units under the
		policies in unitgen.yaml until no new unit appears, and writes Go source
		with one type per unit and the multiply and divide methods between them.

		Run 'unitgen init' to write the default configuration.
	`),
}

var flagConfig string

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultFile, "Path to unitgen.yaml")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config at path, applies the UNITGEN_* overrides and
// validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w\nRun 'unitgen init' first.", err)
	}
	if err := config.ApplyEnv(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withLogger builds the configured logger and stores it in ctx. The returned
// func flushes it.
func withLogger(ctx context.Context, cfg *config.Config) (context.Context, func(), error) {
	log, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return ctx, func() {}, err
	}
	return logger.WithContext(ctx, log), func() { _ = log.Sync() }, nil
}

// runPipeline runs the generation described by cfg with the logger from ctx.
func runPipeline(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*pipeline.Result, error) {
	plan, err := cfg.Plan()
	if err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	res, err := pipeline.New(pipeline.WithLogger(log), pipeline.WithMetrics(m)).Run(ctx, plan)
	if err != nil {
		log.Debug("generation failed", zap.Error(err))
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	return res, nil
}
