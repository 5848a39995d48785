// Package catalog holds the seed unit tables: the SI base units, the SI
// derived units with special names, coherent derived units, units derived
// from special names, the non-SI angle units and the common 2- and
// 3-component vector units.
//
// Every call returns freshly built units; a registry takes ownership of the
// units it is given.
package catalog

import (
	"fmt"
	"slices"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/dimension"
)

// Table names, in seeding order.
const (
	SIBase             = "si_base"
	SISpecial          = "si_special"
	Coherent           = "coherent"
	DerivedFromSpecial = "derived_from_special"
	NonSI              = "non_si"
	Vectors            = "vectors"
)

type pow struct {
	base dimension.Base
	p    int
}

type entry struct {
	tag     algebra.Tag // overrides the table tag when set
	name    string
	summary string
	varName string
	vec     int
	powers  []pow
	fields  []string
}

type table struct {
	name    string
	tag     algebra.Tag
	entries []entry
}

var tables = []table{
	{SIBase, algebra.Base, siBase},
	{SISpecial, algebra.Special, siSpecial},
	{Coherent, algebra.Coherent, coherent},
	{DerivedFromSpecial, algebra.DerivedFromSpecial, derivedFromSpecial},
	{NonSI, 0, nonSI},
	{Vectors, algebra.Vector, vectors},
}

// Tables returns every table name in seeding order.
func Tables() []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.name
	}
	return out
}

// Units builds the units of the named tables, in seeding order regardless of
// the order of names. No names means every table.
func Units(names ...string) ([]*algebra.Unit, error) {
	for _, n := range names {
		if !slices.ContainsFunc(tables, func(t table) bool { return t.name == n }) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTable, n)
		}
	}
	var out []*algebra.Unit
	for _, t := range tables {
		if len(names) > 0 && !slices.Contains(names, t.name) {
			continue
		}
		for _, e := range t.entries {
			u, err := e.unit(t.tag)
			if err != nil {
				return nil, fmt.Errorf("catalog %s: %w", t.name, err)
			}
			out = append(out, u)
		}
	}
	return out, nil
}

func (e entry) unit(tag algebra.Tag) (*algebra.Unit, error) {
	f, err := dimension.New(e.vec)
	if err != nil {
		return nil, err
	}
	for _, p := range e.powers {
		if f, err = f.With(p.base, p.p); err != nil {
			return nil, fmt.Errorf("%s: %w", e.name, err)
		}
	}
	if e.tag != 0 {
		tag = e.tag
	}
	return &algebra.Unit{
		Name:      e.name,
		Summary:   e.summary,
		VarName:   e.varName,
		Tag:       tag,
		AddFields: slices.Clone(e.fields),
		Fraction:  f,
	}, nil
}
