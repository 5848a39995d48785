// Package algebra is the unit-algebra engine: a registry of unit types keyed
// by dimension, operator synthesis between them under filter policies, the
// fixed-point closure that derives new units, and the distribution of
// operators to their hosting types.
//
// A Registry is owned by a single generation run and is not safe for
// concurrent mutation. Every collection is kept in insertion order so that
// identical input produces identical output.
package algebra

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kamusis/unitgen/internal/dimension"
)

// DropFunc decides whether a candidate operation is discarded. It receives
// the operands and the would-be result dimension.
type DropFunc func(r *Registry, a, b *Unit, result dimension.Fraction) bool

// Registry owns every known unit and operator of a generation run.
type Registry struct {
	units  []*Unit
	byKey  map[dimension.Key]*Unit
	byName map[string]*Unit

	ops     []*Op
	opIndex map[opKey]*Op

	mathOps   []*MathOp
	mathIndex map[string]*MathOp

	distributed bool
	log         *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byKey:     make(map[dimension.Key]*Unit),
		byName:    make(map[string]*Unit),
		opIndex:   make(map[opKey]*Op),
		mathIndex: make(map[string]*MathOp),
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// dimensionlessNames names the float types per vector width.
var dimensionlessNames = [dimension.MaxVecSize + 1]struct{ name, varName string }{
	1: {"float", "f"},
	2: {"float2", "v"},
	3: {"float3", "v"},
}

// Scalar returns the dimensionless unit of the given width, registering it on
// first use.
func (r *Registry) Scalar(vecSize int) (*Unit, error) {
	f, err := dimension.New(vecSize)
	if err != nil {
		return nil, err
	}
	if u, ok := r.byKey[f.Key()]; ok {
		return u, nil
	}
	n := dimensionlessNames[vecSize]
	u := &Unit{Name: n.name, VarName: n.varName, Summary: "dimensionless", Tag: Dimensionless, Fraction: f}
	if err := r.AddUnit(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ToUnit returns the unit for a dimension, creating an AutoDerived unit the
// first time a dimension is seen. Dimensionless fractions resolve to the float
// unit of their width.
func (r *Registry) ToUnit(f dimension.Fraction) (*Unit, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !f.HasUnit() {
		return r.Scalar(f.VecSize())
	}
	if u, ok := r.byKey[f.Key()]; ok {
		return u, nil
	}
	u := &Unit{Fraction: f, Tag: AutoDerived}
	if err := r.AddUnit(u); err != nil {
		return nil, err
	}
	r.log.Debug("derived unit", zap.String("unit", u.Name), zap.Stringer("key", u.Key()))
	return u, nil
}

// AddUnit registers u. It fails with a *CollisionError wrapping
// ErrDuplicateIdentity or ErrDuplicateName when another unit already holds
// the dimension or the name.
func (r *Registry) AddUnit(u *Unit) error {
	if err := u.Fraction.Validate(); err != nil {
		return fmt.Errorf("unit %q: %w", u.Name, err)
	}
	u.init()
	if c, ok := r.byKey[u.Key()]; ok {
		return &CollisionError{Kind: ErrDuplicateIdentity, Unit: u, Existing: c}
	}
	if u.Name == "" {
		return fmt.Errorf("%w: %s", ErrUnnamedUnit, u.Key())
	}
	if c, ok := r.byName[u.Name]; ok {
		return &CollisionError{Kind: ErrDuplicateName, Unit: u, Existing: c}
	}
	r.units = append(r.units, u)
	r.byKey[u.Key()] = u
	r.byName[u.Name] = u
	return nil
}

// AddUnits registers units in order, stopping at the first error.
func (r *Registry) AddUnits(units []*Unit) error {
	for _, u := range units {
		if err := r.AddUnit(u); err != nil {
			return err
		}
	}
	return nil
}

// AddOp synthesizes a op b. A nil a stands for the dimensionless scalar.
//
// It returns false without changing state when the operands are vectors of
// different widths, when both are dimensionless, when drop rejects the
// candidate, or when the op already exists.
func (r *Registry) AddOp(a *Unit, op Operator, b *Unit, drop DropFunc) (bool, error) {
	if r.distributed {
		return false, ErrDistributed
	}
	if !op.valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownOperator, rune(op))
	}
	if b == nil {
		return false, ErrNilOperand
	}
	if a == nil {
		var err error
		if a, err = r.Scalar(1); err != nil {
			return false, err
		}
	}
	if a.VecSize() != b.VecSize() && a.VecSize() != 1 && b.VecSize() != 1 {
		return false, nil
	}
	if !a.HasUnit() && !b.HasUnit() {
		return false, nil
	}

	frac := dimension.Combine(a.Fraction, op == Multiply, b.Fraction)
	if drop != nil && drop(r, a, b, frac) {
		return false, nil
	}
	res, err := r.ToUnit(frac)
	if err != nil {
		return false, fmt.Errorf("%s %s %s: %w", a.Name, op, b.Name, err)
	}
	o := newOp(a, op, b, res)
	k := o.key()
	if _, ok := r.opIndex[k]; ok {
		return false, nil
	}
	r.opIndex[k] = o
	r.ops = append(r.ops, o)
	return true, nil
}

// AddOperation is AddOp by unit names, without a drop filter.
func (r *Registry) AddOperation(nameA string, op Operator, nameB string) (bool, error) {
	a, ok := r.byName[nameA]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownUnit, nameA)
	}
	b, ok := r.byName[nameB]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownUnit, nameB)
	}
	return r.AddOp(a, op, b, nil)
}

// AddMathOp records fn(operand) = result once per function and operand.
func (r *Registry) AddMathOp(fn string, operand, result *Unit) bool {
	m := &MathOp{Func: fn, Operand: operand, Result: result}
	if _, ok := r.mathIndex[m.Key()]; ok {
		return false
	}
	r.mathIndex[m.Key()] = m
	r.mathOps = append(r.mathOps, m)
	return true
}

// GenerateOperators attempts a/b and a*b for every ordered pair of units,
// including a unit with itself.
func (r *Registry) GenerateOperators(units []*Unit, drop DropFunc) error {
	for _, a := range units {
		for _, b := range units {
			if _, err := r.AddOp(a, Divide, b, drop); err != nil {
				return err
			}
			if _, err := r.AddOp(a, Multiply, b, drop); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup finds a unit by name.
func (r *Registry) Lookup(name string) (*Unit, bool) {
	u, ok := r.byName[name]
	return u, ok
}

// LookupKey finds a unit by dimension identity.
func (r *Registry) LookupKey(k dimension.Key) (*Unit, bool) {
	u, ok := r.byKey[k]
	return u, ok
}

// Units returns every unit in registration order.
func (r *Registry) Units() []*Unit {
	out := make([]*Unit, len(r.units))
	copy(out, r.units)
	return out
}

// UnitsWhere returns the units accepted by take, in registration order.
func (r *Registry) UnitsWhere(take func(*Unit) bool) []*Unit {
	var out []*Unit
	for _, u := range r.units {
		if take(u) {
			out = append(out, u)
		}
	}
	return out
}

// Ops returns the undistributed operators in insertion order.
func (r *Registry) Ops() []*Op {
	out := make([]*Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// MathOps returns the derived math operations in insertion order.
func (r *Registry) MathOps() []*MathOp {
	out := make([]*MathOp, len(r.mathOps))
	copy(out, r.mathOps)
	return out
}

// Distributed reports whether Distribute has run.
func (r *Registry) Distributed() bool { return r.distributed }
