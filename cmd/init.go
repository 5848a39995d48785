package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/kamusis/unitgen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default unitgen.yaml",
	Long: heredoc.Doc(`
		Write the default configuration to the path given by --config and a
		.env template next to it for the UNITGEN_ENV and UNITGEN_LOG_LEVEL
		overrides.

		The default seeds every SI table, combines the scalar SI units into
		new units of small complexity, connects vectors to existing units and
		adds the inverse of every base unit.
	`),
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagForce bool

func init() {
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	return initConfig(flagConfig, flagForce)
}

func initConfig(cfgPath string, force bool) error {
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat %s: %w", cfgPath, err)
	}

	if dir := filepath.Dir(cfgPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	if err := config.Save(cfgPath, config.Default()); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("config written: %s", cfgPath))

	if err := config.EnsureDotEnvTemplate(cfgPath); err != nil {
		printWarn("", err.Error())
	} else {
		printOK("", fmt.Sprintf("env overrides: %s", config.DotEnvPath(cfgPath)))
	}
	printInfo("", "next: unitgen check && unitgen generate")
	return nil
}
