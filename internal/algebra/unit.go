package algebra

import "github.com/kamusis/unitgen/internal/dimension"

// Unit is a named physical unit type wrapping a dimension.
//
// Name and Summary default to the fraction's rendering when left empty.
// Hosted operators are attached only by Distribute.
type Unit struct {
	Name      string
	Summary   string
	VarName   string
	Tag       Tag
	AddFields []string
	Fraction  dimension.Fraction

	hosted []*Op
}

// Key is the dimension identity of the unit.
func (u *Unit) Key() dimension.Key { return u.Fraction.Key() }

// VecSize is the vector width of the unit.
func (u *Unit) VecSize() int { return u.Fraction.VecSize() }

// Complexity is the dimensional complexity of the unit.
func (u *Unit) Complexity() int { return u.Fraction.Complexity() }

// HasUnit reports whether the unit is dimensioned.
func (u *Unit) HasUnit() bool { return u.Fraction.HasUnit() }

// Hosted returns the operators this unit emits, in distribution order.
func (u *Unit) Hosted() []*Op {
	out := make([]*Op, len(u.hosted))
	copy(out, u.hosted)
	return out
}

func (u *Unit) String() string { return u.Name }

// init fills in the rendered defaults.
func (u *Unit) init() {
	if u.Name == "" {
		u.Name = u.Fraction.Name()
	}
	if u.Summary == "" {
		u.Summary = u.Fraction.Description()
	}
}
