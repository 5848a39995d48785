package algebra

// DefaultMaxIterations caps UntilStable.
const DefaultMaxIterations = 10

// StepFunc is one round of derivation over the registry.
type StepFunc func(r *Registry) error

// Counts is a size snapshot of the registry.
type Counts struct {
	Units   int
	Ops     int
	MathOps int
}

// Counts returns the current sizes.
func (r *Registry) Counts() Counts {
	return Counts{Units: len(r.units), Ops: len(r.ops), MathOps: len(r.mathOps)}
}

// Since returns what was added after c was taken. Collections only grow
// until Distribute, so the additions are the tails of each collection.
func (r *Registry) Since(c Counts) (units []*Unit, ops []*Op, math []*MathOp) {
	units = append(units, r.units[min(c.Units, len(r.units)):]...)
	ops = append(ops, r.ops[min(c.Ops, len(r.ops)):]...)
	math = append(math, r.mathOps[min(c.MathOps, len(r.mathOps)):]...)
	return units, ops, math
}

// UntilStable repeats step until a full round adds no unit, op or math op,
// or until maxIter rounds ran. It returns the rounds run and whether the
// registry reached a fixed point.
func (r *Registry) UntilStable(maxIter int, step StepFunc) (rounds int, stable bool, err error) {
	for rounds < maxIter {
		before := r.Counts()
		if err := step(r); err != nil {
			return rounds, false, err
		}
		rounds++
		if r.Counts() == before {
			return rounds, true, nil
		}
	}
	return rounds, false, nil
}

// SqrtStep derives, for every dimensioned unit whose exponents are all even,
// the unit with halved exponents and records sqrt(unit) = half.
func SqrtStep(r *Registry) error {
	for _, u := range r.Units() {
		half, ok := u.Fraction.Half()
		if !ok {
			continue
		}
		res, err := r.ToUnit(half)
		if err != nil {
			return err
		}
		r.AddMathOp("sqrt", u, res)
	}
	return nil
}
