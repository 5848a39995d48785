package algebra

import "github.com/kamusis/unitgen/internal/dimension"

// Block is one operator-synthesis pass: it selects candidate units by tag,
// bases and width, then tries every ordered pair of candidates under Result.
// The pass is quadratic in the candidate count, so the input selection is
// the main control over how much it produces.
type Block struct {
	Name   string
	Tags   Tag
	Bases  dimension.BaseSet
	Vec    VecClass
	Result ResultFilter
}

// Candidates returns the units this block combines, in registration order.
func (b Block) Candidates(r *Registry) []*Unit {
	return ByVec(ByBases(ByTags(r.Units(), b.Tags), b.Bases), b.Vec)
}

// Generate runs the block and returns the number of candidates used.
func (b Block) Generate(r *Registry) (int, error) {
	units := b.Candidates(r)
	return len(units), r.GenerateOperators(units, b.Result.Drop)
}

// SeedFilter restricts which seed units are registered.
type SeedFilter struct {
	Bases dimension.BaseSet
	Tags  Tag
}

// Apply keeps seed units that use only allowed bases and carry an allowed tag.
func (s SeedFilter) Apply(units []*Unit) []*Unit {
	return ByTags(ByBases(units, s.Bases), s.Tags)
}
