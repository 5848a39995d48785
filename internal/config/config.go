package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/catalog"
	"github.com/kamusis/unitgen/internal/dimension"
	"github.com/kamusis/unitgen/internal/logger"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "unitgen.yaml"

// ErrInvalid wraps every validation problem.
var ErrInvalid = errors.New("config: invalid")

// Seed selects the catalog tables and filters them before registration.
type Seed struct {
	Tables []string `yaml:"tables,omitempty"`
	Tags   []string `yaml:"tags,omitempty"`
	Bases  []string `yaml:"bases,omitempty"`
}

// CustomUnit is a unit type declared in unitgen.yaml.
type CustomUnit struct {
	Name        string         `yaml:"name,omitempty"`
	Description string         `yaml:"description,omitempty"`
	VarName     string         `yaml:"var_name,omitempty"`
	VecSize     int            `yaml:"vec_size,omitempty"`
	Tags        []string       `yaml:"tags,omitempty"`
	Exponents   map[string]int `yaml:"exponents"`
	AddFields   []string       `yaml:"add_fields,omitempty"`
}

// Rule bounds a block result. Nil complexity fields mean unbounded.
type Rule struct {
	Bases            []string `yaml:"bases,omitempty"`
	Vec              string   `yaml:"vec,omitempty"`
	ComplexityBelow  *int     `yaml:"complexity_below,omitempty"`
	ComplexityOffset *int     `yaml:"complexity_offset,omitempty"`
}

// ResultFilter holds the rules for results that already exist and for
// results that would introduce a new unit.
type ResultFilter struct {
	Existing Rule `yaml:"existing"`
	New      Rule `yaml:"new"`
}

// Block is one operator-synthesis pass.
type Block struct {
	Name   string       `yaml:"name"`
	Tags   []string     `yaml:"tags,omitempty"`
	Bases  []string     `yaml:"bases,omitempty"`
	Vec    string       `yaml:"vec,omitempty"`
	Result ResultFilter `yaml:"result"`
}

// Operation is an explicit "a op b" request.
type Operation struct {
	A  string `yaml:"a"`
	Op string `yaml:"op"`
	B  string `yaml:"b"`
}

// Closure configures the fixed-point derivation.
type Closure struct {
	MaxIterations int `yaml:"max_iterations"`
}

// Logging configures the zap logger.
type Logging struct {
	Env   string `yaml:"env,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// Config is the in-memory representation of unitgen.yaml.
type Config struct {
	Package          string            `yaml:"package"`
	Output           string            `yaml:"output"`
	TypeNames        map[string]string `yaml:"type_names,omitempty"`
	Seed             Seed              `yaml:"seed"`
	CustomUnits      []CustomUnit      `yaml:"custom_units,omitempty"`
	Blocks           []Block           `yaml:"blocks,omitempty"`
	CustomOperations []Operation       `yaml:"custom_operations,omitempty"`
	InverseBaseUnits bool              `yaml:"inverse_base_units"`
	ScalarMultiply   bool              `yaml:"scalar_multiply"`
	Permutations     [][]string        `yaml:"permutations,omitempty"`
	Closure          Closure           `yaml:"closure"`
	FinalBlocks      []Block           `yaml:"final_blocks,omitempty"`
	Logging          Logging           `yaml:"logging"`
	MetricsFile      string            `yaml:"metrics_file,omitempty"`
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// ResolvePath makes p absolute, relative to the directory of the config file.
func ResolvePath(configPath, p string) (string, error) {
	p, err := ExpandPath(p)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	dir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", p, err)
	}
	return filepath.Join(dir, p), nil
}

func intp(v int) *int { return &v }

// Default returns the configuration written by unitgen init: every seed
// table, an SI block that may introduce small new units, a vector block that
// only connects vectors to existing types, and inverse base units.
func Default() *Config {
	return &Config{
		Package:   "units",
		Output:    "./units",
		TypeNames: map[string]string{"s": "Second"},
		Seed: Seed{
			Tables: catalog.Tables(),
			Tags:   []string{"all"},
			Bases:  dimension.AllBases.Symbols(),
		},
		Blocks: []Block{
			{
				Name:  "si",
				Tags:  []string{"base", "special", "coherent", "derived_from_special"},
				Bases: dimension.SIBases.Symbols(),
				Vec:   "no_vectors",
				Result: ResultFilter{
					Existing: Rule{Vec: "no_vectors"},
					New:      Rule{Vec: "no_vectors", ComplexityBelow: intp(3), ComplexityOffset: intp(0)},
				},
			},
			{
				Name: "vectors",
				Tags: []string{"all"},
				Vec:  "all",
				Result: ResultFilter{
					Existing: Rule{Vec: "only_vectors"},
					New:      Rule{ComplexityBelow: intp(0)},
				},
			},
		},
		CustomOperations: []Operation{
			{A: "N", Op: "*", B: "m"},
			{A: "W", Op: "*", B: "s"},
		},
		InverseBaseUnits: true,
		ScalarMultiply:   false,
		Closure:          Closure{MaxIterations: algebra.DefaultMaxIterations},
		Logging:          Logging{Env: logger.EnvDev, Level: "info"},
	}
}

// ApplyDefaults fills zero values that have a sensible default.
func (c *Config) ApplyDefaults() {
	if c.Package == "" {
		c.Package = "units"
	}
	if c.Output == "" {
		c.Output = "./" + c.Package
	}
	if len(c.Seed.Tables) == 0 {
		c.Seed.Tables = catalog.Tables()
	}
	if c.Closure.MaxIterations == 0 {
		c.Closure.MaxIterations = algebra.DefaultMaxIterations
	}
	if c.Logging.Env == "" {
		c.Logging.Env = logger.EnvDev
	}
}

// Load reads and parses the config file at path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Save marshals cfg and writes it to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// Validate converts every symbolic section and reports all problems at once.
// Unit names in operations and permutations are resolved later, against the
// registry.
func (c *Config) Validate() error {
	var errs []error
	add := func(where string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}

	if !token.IsIdentifier(c.Package) {
		add("package", fmt.Errorf("%q is not a Go identifier", c.Package))
	}
	if c.Output == "" {
		add("output", errors.New("empty"))
	}
	for unit, typ := range c.TypeNames {
		if !token.IsIdentifier(typ) || !token.IsExported(typ) {
			add("type_names."+unit, fmt.Errorf("%q is not an exported Go identifier", typ))
		}
	}
	_, err := c.Seed.Filter()
	add("seed", err)
	if _, err := catalog.Units(c.Seed.Tables...); err != nil {
		add("seed.tables", err)
	}
	for i, cu := range c.CustomUnits {
		_, err := cu.Unit()
		add(fmt.Sprintf("custom_units[%d]", i), err)
	}
	for i, b := range c.Blocks {
		_, err := b.Engine()
		add(fmt.Sprintf("blocks[%d]", i), err)
	}
	for i, b := range c.FinalBlocks {
		_, err := b.Engine()
		add(fmt.Sprintf("final_blocks[%d]", i), err)
	}
	for i, o := range c.CustomOperations {
		_, err := algebra.ParseOperator(o.Op)
		add(fmt.Sprintf("custom_operations[%d]", i), err)
	}
	for i, p := range c.Permutations {
		if len(p) > algebra.MaxPermutationUnits {
			add(fmt.Sprintf("permutations[%d]", i), fmt.Errorf("%w: %d units", algebra.ErrPermutationTooLarge, len(p)))
		}
	}
	if c.Closure.MaxIterations < 1 {
		add("closure.max_iterations", fmt.Errorf("must be positive, got %d", c.Closure.MaxIterations))
	}
	if _, err := logger.New(c.Logging.Env, c.Logging.Level); err != nil {
		add("logging", err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Filter converts the seed section.
func (s Seed) Filter() (algebra.SeedFilter, error) {
	bases, err := parseBases(s.Bases)
	if err != nil {
		return algebra.SeedFilter{}, err
	}
	tags, err := parseTags(s.Tags)
	if err != nil {
		return algebra.SeedFilter{}, err
	}
	return algebra.SeedFilter{Bases: bases, Tags: tags}, nil
}

// Unit converts the custom unit.
func (cu CustomUnit) Unit() (*algebra.Unit, error) {
	var tag algebra.Tag
	if len(cu.Tags) > 0 {
		var err error
		if tag, err = algebra.ParseTags(cu.Tags); err != nil {
			return nil, err
		}
	}
	return catalog.Custom{
		Name:      cu.Name,
		Summary:   cu.Description,
		VarName:   cu.VarName,
		VecSize:   cu.VecSize,
		Tag:       tag,
		Exponents: cu.Exponents,
		AddFields: cu.AddFields,
	}.Unit()
}

// Engine converts the block.
func (b Block) Engine() (algebra.Block, error) {
	tags, err := parseTags(b.Tags)
	if err != nil {
		return algebra.Block{}, err
	}
	bases, err := parseBases(b.Bases)
	if err != nil {
		return algebra.Block{}, err
	}
	vec, err := algebra.ParseVecClass(b.Vec)
	if err != nil {
		return algebra.Block{}, err
	}
	existing, err := b.Result.Existing.Engine()
	if err != nil {
		return algebra.Block{}, fmt.Errorf("result.existing: %w", err)
	}
	fresh, err := b.Result.New.Engine()
	if err != nil {
		return algebra.Block{}, fmt.Errorf("result.new: %w", err)
	}
	return algebra.Block{
		Name:   b.Name,
		Tags:   tags,
		Bases:  bases,
		Vec:    vec,
		Result: algebra.ResultFilter{Existing: existing, New: fresh},
	}, nil
}

// Engine converts the rule; unset fields take the open defaults.
func (r Rule) Engine() (algebra.Rule, error) {
	out := algebra.OpenRule
	var err error
	if out.Bases, err = parseBases(r.Bases); err != nil {
		return out, err
	}
	if out.Vec, err = algebra.ParseVecClass(r.Vec); err != nil {
		return out, err
	}
	if r.ComplexityBelow != nil {
		out.ComplexityBelow = *r.ComplexityBelow
	}
	if r.ComplexityOffset != nil {
		out.ComplexityOffset = *r.ComplexityOffset
	}
	return out, nil
}

// Operator parses the op symbol.
func (o Operation) Operator() (algebra.Operator, error) { return algebra.ParseOperator(o.Op) }

func parseBases(symbols []string) (dimension.BaseSet, error) {
	if len(symbols) == 0 {
		return dimension.AllBases, nil
	}
	return dimension.ParseBaseSet(symbols)
}

func parseTags(names []string) (algebra.Tag, error) {
	if len(names) == 0 {
		return algebra.AllTags, nil
	}
	return algebra.ParseTags(names)
}
