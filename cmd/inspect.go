package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/config"
	"github.com/kamusis/unitgen/internal/emit"
	"github.com/kamusis/unitgen/internal/pipeline"
)

// inspectFlags holds flag values for the `unitgen inspect` command.
type inspectFlags struct {
	format string
	tags   []string
	math   bool
}

var insFlags inspectFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect [unit-name]",
	Short: "Show the units and operators a generation produces",
	Long: heredoc.Doc(`
		Run the generation without writing anything and list the resulting
		units: name, Go type, dimension key, number of operators hosted and
		summary. With a unit name, show that unit in detail, including every
		operator it hosts.
	`),
	Example: heredoc.Doc(`
		unitgen inspect
		unitgen inspect --tag auto_derived
		unitgen inspect --format yaml > units.yaml
		unitgen inspect mps2
		unitgen inspect --math
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&insFlags.format, "format", "f", "table", "Output format: table or yaml")
	inspectCmd.Flags().StringSliceVar(&insFlags.tags, "tag", nil, "Only units carrying one of these tags")
	inspectCmd.Flags().BoolVar(&insFlags.math, "math", false, "List the derived math functions instead of units")
	rootCmd.AddCommand(inspectCmd)
}

// unitView is the inspect representation of a unit.
type unitView struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Key     string   `yaml:"key"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
	VecSize int      `yaml:"vec_size"`
	File    string   `yaml:"file,omitempty"`
	Ops     []string `yaml:"ops,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	ctx, flush, err := withLogger(ctx, cfg)
	if err != nil {
		return err
	}
	defer flush()

	res, err := runPipeline(ctx, cfg, nil)
	if err != nil {
		return err
	}
	if insFlags.math {
		return printMathOps(os.Stdout, res.Registry.MathOps())
	}
	views, err := unitViews(cfg, res, insFlags.tags)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		for _, v := range views {
			if v.Name == args[0] {
				printUnitDetail(os.Stdout, v)
				return nil
			}
		}
		return fmt.Errorf("unit %q not found (run 'unitgen inspect' to list units)", args[0])
	}

	switch insFlags.format {
	case "table":
		printUnitTable(os.Stdout, views)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(views)
	}
	return fmt.Errorf("unknown format %q: expected table or yaml", insFlags.format)
}

// unitViews describes the units of res, optionally restricted to tags.
func unitViews(cfg *config.Config, res *pipeline.Result, tags []string) ([]unitView, error) {
	mask := algebra.AllTags
	if len(tags) > 0 {
		var err error
		if mask, err = algebra.ParseTags(tags); err != nil {
			return nil, err
		}
	}
	units := res.Registry.Units()
	namer, err := emit.NewNamer(units, cfg.TypeNames)
	if err != nil {
		return nil, err
	}
	gen := emit.NewGenerator(emit.Config{Package: cfg.Package, TypeNames: cfg.TypeNames, Custom: res.Custom}, nil)

	var views []unitView
	for _, u := range algebra.ByTags(units, mask) {
		v := unitView{
			Name:    u.Name,
			Type:    namer.TypeOf(u),
			Key:     u.Key().String(),
			Summary: u.Summary,
			Tags:    u.Tag.Names(),
			VecSize: u.VecSize(),
		}
		v.File, _ = gen.FileOf(u)
		for _, o := range u.Hosted() {
			v.Ops = append(v.Ops, o.String())
		}
		views = append(views, v)
	}
	return views, nil
}

func printUnitTable(w io.Writer, views []unitView) {
	fmt.Fprintf(w, "%-14s %-14s %-22s %4s  %s\n", "NAME", "TYPE", "KEY", "OPS", "SUMMARY")
	for _, v := range views {
		fmt.Fprintf(w, "%-14s %-14s %-22s %4d  %s\n", v.Name, v.Type, v.Key, len(v.Ops), v.Summary)
	}
	fmt.Fprintf(w, "\n%d unit(s)\n", len(views))
}

func printUnitDetail(w io.Writer, v unitView) {
	fmt.Fprintf(w, "Unit:     %s\n", v.Name)
	fmt.Fprintf(w, "Type:     %s\n", v.Type)
	fmt.Fprintf(w, "Key:      %s\n", v.Key)
	fmt.Fprintf(w, "Summary:  %s\n", v.Summary)
	fmt.Fprintf(w, "Tags:     %s\n", strings.Join(v.Tags, ", "))
	if v.File != "" {
		fmt.Fprintf(w, "File:     %s\n", v.File)
	}
	if len(v.Ops) == 0 {
		fmt.Fprintln(w, "\nHosts no operators.")
		return
	}
	fmt.Fprintf(w, "\nOperators (%d):\n", len(v.Ops))
	for _, o := range v.Ops {
		fmt.Fprintf(w, "  - %s\n", o)
	}
}

func printMathOps(w io.Writer, ops []*algebra.MathOp) error {
	if len(ops) == 0 {
		fmt.Fprintln(w, "No math functions derived.")
		return nil
	}
	for _, m := range ops {
		fmt.Fprintf(w, "  %s(%s) = %s\n", m.Func, m.Operand.Name, m.Result.Name)
	}
	return nil
}
