// Package emit renders the final unit set of a generation as Go source: one
// defined type per dimensioned unit, operator methods from the operators each
// unit hosts, vector helpers, the extra members of each unit and a math file
// with the derived square roots.
//
// Units are partitioned into files by provenance:
//
//	custom.go                units declared by configuration
//	vectors.go               every 2- and 3-component unit
//	base.go                  SI base units (and rad)
//	special.go               SI derived units with special names
//	coherent.go              coherent derived units
//	derived_from_special.go  units derived from special names
//	auto_derived.go          units discovered by the generator
//	math.go                  square roots and vector length helpers
//
// Rendering is deterministic: files, units and methods follow registry
// order, so identical registries produce byte-identical files.
package emit

import (
	"context"
	"fmt"
	"go/format"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/dimension"
)

// File names, in rendering order.
const (
	FileCustom             = "custom.go"
	FileVectors            = "vectors.go"
	FileBase               = "base.go"
	FileSpecial            = "special.go"
	FileCoherent           = "coherent.go"
	FileDerivedFromSpecial = "derived_from_special.go"
	FileAutoDerived        = "auto_derived.go"
	FileMath               = "math.go"
)

// FileNames lists every file the generator can produce.
func FileNames() []string {
	return []string{
		FileCustom, FileVectors, FileBase, FileSpecial, FileCoherent,
		FileDerivedFromSpecial, FileAutoDerived, FileMath,
	}
}

var tagFiles = []struct {
	tag  algebra.Tag
	file string
}{
	{algebra.Base, FileBase},
	{algebra.Special, FileSpecial},
	{algebra.Coherent, FileCoherent},
	{algebra.DerivedFromSpecial, FileDerivedFromSpecial},
	{algebra.AutoDerived, FileAutoDerived},
}

// File is one rendered source file.
type File struct {
	Name    string
	Content []byte
	// Units is the number of unit types declared in the file.
	Units int
}

// Config controls rendering.
type Config struct {
	// Package is the package clause of every file.
	Package string
	// TypeNames overrides the Go type name of units by unit name.
	TypeNames map[string]string
	// Custom names the units that go to custom.go.
	Custom map[string]bool
	// Generator is written into the generated-code header.
	Generator string
}

// Generator renders registries.
type Generator struct {
	cfg Config
	log *zap.Logger
}

// NewGenerator returns a generator; a nil logger discards output.
func NewGenerator(cfg Config, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Package == "" {
		cfg.Package = "units"
	}
	if cfg.Generator == "" {
		cfg.Generator = "unitgen"
	}
	return &Generator{cfg: cfg, log: log}
}

// FileOf returns the file a unit is declared in; the dimensionless scalar is
// float32 and has none.
func (g *Generator) FileOf(u *algebra.Unit) (string, bool) {
	switch {
	case !u.HasUnit() && u.VecSize() == 1:
		return "", false
	case g.cfg.Custom[u.Name]:
		return FileCustom, true
	case u.VecSize() > 1:
		return FileVectors, true
	}
	for _, tf := range tagFiles {
		if u.Tag.Intersects(tf.tag) {
			return tf.file, true
		}
	}
	return FileAutoDerived, true
}

// Render produces the source files for a distributed registry. Files without
// units are omitted; math.go is always produced.
func (g *Generator) Render(ctx context.Context, reg *algebra.Registry) ([]File, error) {
	if !reg.Distributed() {
		return nil, ErrNotDistributed
	}
	units := reg.Units()
	namer, err := NewNamer(units, g.cfg.TypeNames)
	if err != nil {
		return nil, err
	}

	byFile := make(map[string][]*algebra.Unit)
	scalars := make(map[dimension.Key]*algebra.Unit, len(units))
	for _, u := range units {
		if f, ok := g.FileOf(u); ok {
			byFile[f] = append(byFile[f], u)
		}
		scalars[u.Key()] = u
	}

	names := FileNames()
	out := make([]File, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		if name != FileMath && len(byFile[name]) == 0 {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fg := &fileGen{g: g, namer: namer, scalars: scalars}
			var body []byte
			if name == FileMath {
				body = fg.mathFile(reg.MathOps())
			} else {
				body = fg.unitFile(byFile[name])
			}
			src, err := format.Source(body)
			if err != nil {
				return fmt.Errorf("format %s: %w", name, err)
			}
			out[i] = File{Name: name, Content: src, Units: len(byFile[name])}
			g.log.Debug("rendered file",
				zap.String("file", name),
				zap.Int("units", len(byFile[name])),
				zap.Int("bytes", len(src)),
			)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	files := out[:0]
	for _, f := range out {
		if f.Name != "" {
			files = append(files, f)
		}
	}
	return files, nil
}
