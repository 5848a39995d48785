package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/kamusis/unitgen/internal/config"
	"github.com/kamusis/unitgen/internal/emit"
	"github.com/kamusis/unitgen/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate unitgen.yaml and dry-run the generation",
	Long: heredoc.Doc(`
		Check that unitgen.yaml parses and validates, that the generation runs
		to completion, that every unit gets a distinct Go type name and that
		the output directory is not locked by another generation.

		Run this command after editing the configuration, before 'unitgen generate'.
	`),
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return check(ctx, flagConfig)
}

func check(ctx context.Context, cfgPath string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}
	skipped := func() { printWarn("", "skipped (earlier check failed)") }

	printSection("unitgen check")

	// ── Check 1: config file parses ───────────────────────────────────────────
	printGroup(cfgPath)
	cfg, loadErr := config.Load(cfgPath)
	if loadErr != nil {
		failD("%v", loadErr)
		if errors.Is(loadErr, os.ErrNotExist) {
			printInfo("", "run 'unitgen init' to write the default configuration")
		}
	} else {
		printOK("", fmt.Sprintf("valid YAML: %d block(s), %d final block(s), %d custom unit(s)",
			len(cfg.Blocks), len(cfg.FinalBlocks), len(cfg.CustomUnits)))
	}

	// ── Check 2: environment overrides ────────────────────────────────────────
	printGroup("environment")
	if loadErr == nil {
		if err := config.ApplyEnv(cfgPath, cfg); err != nil {
			failD("%v", err)
		} else {
			printOK("", fmt.Sprintf("logging: env=%s level=%s", cfg.Logging.Env, emptyAsNA(cfg.Logging.Level)))
		}
	} else {
		skipped()
	}

	// ── Check 3: validation ───────────────────────────────────────────────────
	printGroup("validation")
	valid := false
	if loadErr == nil {
		if err := cfg.Validate(); err != nil {
			for _, p := range problems(err) {
				failD("%s", p)
			}
		} else {
			valid = true
			printOK("", "all sections convert")
		}
	} else {
		skipped()
	}

	// ── Check 4: dry run ──────────────────────────────────────────────────────
	printGroup("generation")
	var res *pipeline.Result
	if valid {
		runCtx, flush, err := withLogger(ctx, cfg)
		if err != nil {
			failD("%v", err)
		} else {
			res, err = runPipeline(runCtx, cfg, nil)
			flush()
			if err != nil {
				failD("%v", err)
			}
		}
		if res != nil {
			counts := res.Registry.Counts()
			printOK("", fmt.Sprintf("%d units, %d operators, %d math functions", counts.Units, res.Hosted, counts.MathOps))
			for _, r := range res.Reports {
				if r.Phase == pipeline.PhaseClosure && !r.Stable {
					printWarn("", fmt.Sprintf("closure stopped after %d rounds before a fixed point; raise closure.max_iterations", r.Rounds))
				}
			}
		}
	} else {
		skipped()
	}

	// ── Check 5: Go type names ────────────────────────────────────────────────
	printGroup("type names")
	if res != nil {
		if _, err := emit.NewNamer(res.Registry.Units(), cfg.TypeNames); err != nil {
			failD("%v", err)
		} else {
			printOK("", "every unit maps to a distinct Go type")
		}
		for unit := range cfg.TypeNames {
			if _, ok := res.Registry.Lookup(unit); !ok {
				printWarn("", fmt.Sprintf("type_names.%s names a unit that is not generated", unit))
			}
		}
	} else {
		skipped()
	}

	// ── Check 6: output directory ─────────────────────────────────────────────
	printGroup("output")
	if loadErr == nil {
		dir, err := config.ResolvePath(cfgPath, cfg.Output)
		var busy bool
		if err == nil {
			busy, err = emit.Busy(dir)
		}
		switch {
		case err != nil:
			failD("%v", err)
		case busy:
			failD("%s is locked by another generation", dir)
		default:
			printOK("", dir)
		}
	} else {
		skipped()
	}

	printSummary(allOK,
		"All checks passed. Run 'unitgen generate' to write the files.",
		"One or more checks failed. See details above.")
	if !allOK {
		return errors.New("check found issues")
	}
	return nil
}

// problems splits a validation error into one line per problem.
func problems(err error) []string {
	msg := strings.TrimPrefix(err.Error(), config.ErrInvalid.Error()+": ")
	return strings.Split(msg, "\n")
}
