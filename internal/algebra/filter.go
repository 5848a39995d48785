package algebra

import (
	"fmt"

	"github.com/kamusis/unitgen/internal/dimension"
)

// VecClass selects scalars, vectors or both.
type VecClass uint8

const (
	AllVectors VecClass = iota
	NoVectors
	OnlyVectors
)

var vecClassNames = [...]string{
	AllVectors:  "all",
	NoVectors:   "no_vectors",
	OnlyVectors: "only_vectors",
}

// ParseVecClass resolves "all", "no_vectors" or "only_vectors"; empty is "all".
func ParseVecClass(s string) (VecClass, error) {
	if s == "" {
		return AllVectors, nil
	}
	for i, n := range vecClassNames {
		if n == s {
			return VecClass(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVecClass, s)
}

func (v VecClass) String() string {
	if int(v) < len(vecClassNames) {
		return vecClassNames[v]
	}
	return fmt.Sprintf("VecClass(%d)", uint8(v))
}

// Fit reports whether a vector width belongs to the class.
func (v VecClass) Fit(vecSize int) bool {
	switch v {
	case NoVectors:
		return vecSize == 1
	case OnlyVectors:
		return vecSize > 1
	}
	return true
}

// HasOnly reports whether every nonzero base of f is in set.
func HasOnly(f dimension.Fraction, set dimension.BaseSet) bool { return f.OnlyBases(set) }

// ByTags keeps units sharing at least one tag with tags.
func ByTags(units []*Unit, tags Tag) []*Unit {
	var out []*Unit
	for _, u := range units {
		if u.Tag.Intersects(tags) {
			out = append(out, u)
		}
	}
	return out
}

// ByBases keeps units whose dimension uses only bases in set.
func ByBases(units []*Unit, set dimension.BaseSet) []*Unit {
	var out []*Unit
	for _, u := range units {
		if HasOnly(u.Fraction, set) {
			out = append(out, u)
		}
	}
	return out
}

// ByVec keeps units whose width fits v.
func ByVec(units []*Unit, v VecClass) []*Unit {
	var out []*Unit
	for _, u := range units {
		if v.Fit(u.VecSize()) {
			out = append(out, u)
		}
	}
	return out
}

// Rule accepts a candidate result when its bases and width fit and its
// complexity does not exceed
//
//	min(ComplexityBelow, max(input complexities) - ComplexityOffset)
type Rule struct {
	Bases            dimension.BaseSet
	Vec              VecClass
	ComplexityBelow  int
	ComplexityOffset int
}

// OpenRule accepts everything within a complexity of 100.
var OpenRule = Rule{
	Bases:            dimension.AllBases,
	Vec:              AllVectors,
	ComplexityBelow:  100,
	ComplexityOffset: -100,
}

// Limit is the effective complexity ceiling for the given input complexity.
func (r Rule) Limit(inputComplexity int) int {
	return min(r.ComplexityBelow, inputComplexity-r.ComplexityOffset)
}

// Allows applies the rule to a candidate.
func (r Rule) Allows(inputComplexity int, f dimension.Fraction) bool {
	if f.Complexity() > r.Limit(inputComplexity) {
		return false
	}
	return HasOnly(f, r.Bases) && r.Vec.Fit(f.VecSize())
}

// ResultFilter applies Existing when the candidate dimension is already a
// registered unit and New when accepting it would create one.
type ResultFilter struct {
	Existing Rule
	New      Rule
}

// DefaultResultFilter accepts everything within a complexity of 100.
func DefaultResultFilter() ResultFilter {
	return ResultFilter{Existing: OpenRule, New: OpenRule}
}

// Drop is a DropFunc.
func (rf ResultFilter) Drop(r *Registry, a, b *Unit, f dimension.Fraction) bool {
	in := max(a.Complexity(), b.Complexity())
	rule := rf.New
	if _, ok := r.LookupKey(f.Key()); ok {
		rule = rf.Existing
	}
	return !rule.Allows(in, f)
}
