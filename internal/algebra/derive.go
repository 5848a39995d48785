package algebra

import (
	"fmt"

	"github.com/kamusis/unitgen/internal/dimension"
)

// MaxPermutationUnits bounds a permutation group; a group of n units
// enumerates 2^n sign choices times n! orderings.
const MaxPermutationUnits = 6

// InverseBaseUnits registers 1/x for every fundamental SI scalar base unit x
// whose inverse dimension is not yet known, tagged DerivedFromSpecial, and
// adds the operator float / x.
func InverseBaseUnits(r *Registry) error {
	for _, u := range r.UnitsWhere(func(u *Unit) bool { return u.Tag.Intersects(Base) }) {
		f := u.Fraction
		if !f.IsSI() || !f.IsFundamental() || f.VecSize() > 1 {
			continue
		}
		inv := f.Inverse()
		if _, ok := r.LookupKey(inv.Key()); ok {
			continue
		}
		if err := r.AddUnit(&Unit{Tag: DerivedFromSpecial, Fraction: inv}); err != nil {
			return err
		}
		if _, err := r.AddOp(nil, Divide, u, nil); err != nil {
			return err
		}
	}
	return nil
}

// ScalarMultiply adds float * u for every registered unit.
func ScalarMultiply(r *Registry) error {
	for _, u := range r.Units() {
		if _, err := r.AddOp(nil, Multiply, u, nil); err != nil {
			return err
		}
	}
	return nil
}

type term struct {
	unit     *Unit
	multiply bool
}

// Permute exhaustively chains the named units: for every assignment of
// '*' or '/' to each unit and every ordering of the resulting terms, it folds
// the chain left to right, adding each intermediate operator. The operator of
// the first term in an ordering is ignored.
func Permute(r *Registry, names []string) error {
	if len(names) > MaxPermutationUnits {
		return fmt.Errorf("%w: %d units (max %d)", ErrPermutationTooLarge, len(names), MaxPermutationUnits)
	}
	if len(names) < 2 {
		return nil
	}
	units := make([]*Unit, len(names))
	for i, n := range names {
		u, ok := r.Lookup(n)
		if !ok {
			return fmt.Errorf("permutation: %w: %q", ErrUnknownUnit, n)
		}
		units[i] = u
	}

	for mask := 0; mask < 1<<len(units); mask++ {
		eq := make([]term, len(units))
		for j, u := range units {
			eq[j] = term{unit: u, multiply: mask&(1<<j) != 0}
		}
		var err error
		permutations(eq, func(p []term) bool {
			err = fold(r, p)
			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func fold(r *Registry, p []term) error {
	prev := p[0].unit
	for _, t := range p[1:] {
		op := Divide
		if t.multiply {
			op = Multiply
		}
		if _, err := r.AddOp(prev, op, t.unit, nil); err != nil {
			return err
		}
		next, err := r.ToUnit(dimension.Combine(prev.Fraction, t.multiply, t.unit.Fraction))
		if err != nil {
			return err
		}
		prev = next
	}
	return nil
}

// permutations calls yield with every ordering of terms, choosing each
// position in index order. Iteration stops when yield returns false.
func permutations(terms []term, yield func([]term) bool) {
	var rec func(prefix, rest []term) bool
	rec = func(prefix, rest []term) bool {
		if len(rest) == 0 {
			return yield(prefix)
		}
		for i := range rest {
			remaining := make([]term, 0, len(rest)-1)
			remaining = append(remaining, rest[:i]...)
			remaining = append(remaining, rest[i+1:]...)
			if !rec(append(prefix[:len(prefix):len(prefix)], rest[i]), remaining) {
				return false
			}
		}
		return true
	}
	rec(nil, terms)
}
