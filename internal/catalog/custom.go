package catalog

import (
	"fmt"
	"slices"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/dimension"
)

// Custom describes a unit supplied by configuration. Name and Summary may be
// left empty to render them from the dimension; Tag defaults to Coherent.
type Custom struct {
	Name      string
	Summary   string
	VarName   string
	VecSize   int
	Tag       algebra.Tag
	Exponents map[string]int
	AddFields []string
}

// Unit builds the registry unit for c.
func (c Custom) Unit() (*algebra.Unit, error) {
	vec := c.VecSize
	if vec == 0 {
		vec = 1
	}
	f, err := dimension.Parse(vec, c.Exponents)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrCustomUnit, c.Name, err)
	}
	if !f.HasUnit() {
		return nil, fmt.Errorf("%w %q: dimensionless", ErrCustomUnit, c.Name)
	}
	tag := c.Tag
	if tag == 0 {
		tag = algebra.Coherent
	}
	if vec > 1 {
		tag |= algebra.Vector
	}
	return &algebra.Unit{
		Name:      c.Name,
		Summary:   c.Summary,
		VarName:   c.VarName,
		Tag:       tag,
		AddFields: slices.Clone(c.AddFields),
		Fraction:  f,
	}, nil
}
