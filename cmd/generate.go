package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/unitgen/internal/config"
	"github.com/kamusis/unitgen/internal/emit"
	"github.com/kamusis/unitgen/internal/logger"
	"github.com/kamusis/unitgen/internal/metrics"
	"github.com/kamusis/unitgen/internal/version"
)

// generateFlags holds flag values for the `unitgen generate` command.
type generateFlags struct {
	output      string
	dryRun      bool
	metricsFile string
	lockTimeout time.Duration
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the generation and write the Go unit types",
	Long: heredoc.Doc(`
		Run every phase configured in unitgen.yaml and write the generated
		package to the output directory.

		Files are written under a lock on the output directory; files whose
		content did not change are left untouched and generated files that are
		no longer produced are removed.
	`),
	Example: heredoc.Doc(`
		unitgen generate
		unitgen generate --config physics/unitgen.yaml --output ./pkg/units
		unitgen generate --dry-run
	`),
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genFlags.output, "output", "o", "", "Output directory (overrides 'output' in the config)")
	generateCmd.Flags().BoolVar(&genFlags.dryRun, "dry-run", false, "Render the files but do not write them")
	generateCmd.Flags().StringVar(&genFlags.metricsFile, "metrics-file", "", "Write generation metrics in Prometheus text format")
	generateCmd.Flags().DurationVar(&genFlags.lockTimeout, "lock-timeout", 10*time.Second, "How long to wait for another generation writing the same output")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	_, err := generate(cmd.Context(), flagConfig, genFlags)
	return err
}

// generate runs the pipeline, renders the files and writes them unless
// f.dryRun is set. It returns the rendered files.
func generate(ctx context.Context, cfgPath string, f generateFlags) ([]emit.File, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	ctx, flush, err := withLogger(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer flush()
	log := logger.FromContext(ctx)

	m := metrics.New()
	res, err := runPipeline(ctx, cfg, m)
	if err != nil {
		return nil, err
	}

	gen := emit.NewGenerator(emit.Config{
		Package:   cfg.Package,
		TypeNames: cfg.TypeNames,
		Custom:    res.Custom,
		Generator: "unitgen " + version.Version,
	}, log.Named("emit"))
	files, err := gen.Render(ctx, res.Registry)
	if err != nil {
		return nil, fmt.Errorf("cannot render: %w", err)
	}

	counts := res.Registry.Counts()
	printSection("unitgen generate")
	printOK("", fmt.Sprintf("%d units, %d operators, %d math functions", counts.Units, res.Hosted, counts.MathOps))

	out := cfg.Output
	if f.output != "" {
		out = f.output
	}
	dir, err := config.ResolvePath(cfgPath, out)
	if err != nil {
		return nil, err
	}

	if f.dryRun {
		for _, file := range files {
			printInfo(file.Name, fmt.Sprintf("would write %d units, %d bytes", file.Units, len(file.Content)))
		}
		printInfo("", fmt.Sprintf("dry run, nothing written to %s", dir))
		return files, nil
	}

	wr, err := emit.Write(ctx, dir, files, f.lockTimeout, log.Named("emit"))
	if err != nil {
		return nil, err
	}
	for _, name := range wr.Written {
		printOK(name, "written")
	}
	for _, name := range wr.Unchanged {
		printSkip(name, "unchanged")
	}
	for _, name := range wr.Removed {
		printInfo(name, "removed (no longer generated)")
	}
	m.SetFilesWritten(len(wr.Written))
	log.Info("output written",
		zap.String("dir", dir),
		zap.Int("written", len(wr.Written)),
		zap.Int("unchanged", len(wr.Unchanged)),
		zap.Int("removed", len(wr.Removed)),
	)

	metricsFile := cfg.MetricsFile
	if f.metricsFile != "" {
		metricsFile = f.metricsFile
	}
	if metricsFile != "" {
		p, err := config.ResolvePath(cfgPath, metricsFile)
		if err != nil {
			return nil, err
		}
		if err := m.WriteTextfile(p); err != nil {
			return nil, err
		}
		printOK("", fmt.Sprintf("metrics written to %s", p))
	}
	return files, nil
}
