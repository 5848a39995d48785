package algebra

import (
	"fmt"
	"strings"
)

// Tag is a bit set of provenance labels. Tags drive input filtering and file
// partitioning only; they carry no algebraic meaning.
type Tag uint32

const (
	// AutoDerived marks units discovered by the closure.
	AutoDerived Tag = 1 << iota
	// Base marks the SI base units (and rad).
	Base
	// Special marks SI derived units with special names (N, J, W, ...).
	Special
	// Coherent marks coherent derived units without special names (m², m/s, ...).
	Coherent
	// DerivedFromSpecial marks units derived from special names (N/m, J/K, ...).
	DerivedFromSpecial
	// Vector marks seeded 2- and 3-component units.
	Vector
	// Dimensionless marks the plain float scalar and vector types.
	Dimensionless

	// AllTags matches every unit.
	AllTags Tag = 1<<iota - 1
)

var tagNames = []struct {
	tag  Tag
	name string
}{
	{AutoDerived, "auto_derived"},
	{Base, "base"},
	{Special, "special"},
	{Coherent, "coherent"},
	{DerivedFromSpecial, "derived_from_special"},
	{Vector, "vector"},
	{Dimensionless, "dimensionless"},
}

// ParseTag resolves a single tag name; "all" yields AllTags.
func ParseTag(name string) (Tag, error) {
	if name == "all" {
		return AllTags, nil
	}
	for _, tn := range tagNames {
		if tn.name == name {
			return tn.tag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTag, name)
}

// ParseTags ORs together the named tags.
func ParseTags(names []string) (Tag, error) {
	var t Tag
	for _, n := range names {
		tag, err := ParseTag(n)
		if err != nil {
			return 0, err
		}
		t |= tag
	}
	return t, nil
}

// Has reports whether every bit of o is set in t.
func (t Tag) Has(o Tag) bool { return t&o == o }

// Intersects reports whether t and o share a bit.
func (t Tag) Intersects(o Tag) bool { return t&o != 0 }

// Names lists the set tags in declaration order.
func (t Tag) Names() []string {
	var out []string
	for _, tn := range tagNames {
		if t&tn.tag != 0 {
			out = append(out, tn.name)
		}
	}
	return out
}

func (t Tag) String() string {
	if t == 0 {
		return "none"
	}
	return strings.Join(t.Names(), "|")
}
