package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamusis/unitgen/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show unitgen version and build information",
	RunE:  runVersion,
}

var flagVersionYAML bool

func init() {
	versionCmd.Flags().BoolVar(&flagVersionYAML, "yaml", false, "Print build information as YAML")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	info := version.Get()
	if flagVersionYAML {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(info)
	}
	fmt.Printf("Version:    %s\n", info.Version)
	fmt.Printf("Commit:     %s\n", emptyAsNA(info.Commit))
	fmt.Printf("Build Date: %s\n", emptyAsNA(info.BuildDate))
	fmt.Printf("Go Version: %s\n", info.GoVersion)
	fmt.Printf("OS/Arch:    %s\n", info.Platform)
	return nil
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
