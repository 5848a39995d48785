package algebra

import (
	"fmt"

	"github.com/kamusis/unitgen/internal/dimension"
)

// Operator is a binary operator between unit types.
type Operator byte

const (
	Multiply Operator = '*'
	Divide   Operator = '/'
)

// ParseOperator resolves "*" or "/".
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "*":
		return Multiply, nil
	case "/":
		return Divide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

func (o Operator) valid() bool { return o == Multiply || o == Divide }

func (o Operator) String() string { return string(rune(o)) }

// Op is a synthesized operator A op B = Result.
//
// Multiply is commutative: operands are stored lower identity key first, so
// a*b and b*a are the same Op. Divide keeps its operand order.
type Op struct {
	A, B     *Unit
	Operator Operator
	Result   *Unit
}

type opKey struct {
	a, b dimension.Key
	op   Operator
}

func newOp(a *Unit, op Operator, b *Unit, res *Unit) *Op {
	if op == Multiply && b.Key().Less(a.Key()) {
		a, b = b, a
	}
	return &Op{A: a, B: b, Operator: op, Result: res}
}

func (o *Op) key() opKey {
	return opKey{a: o.A.Key(), b: o.B.Key(), op: o.Operator}
}

// Equal reports whether o and p combine the same operands with the same operator.
func (o *Op) Equal(p *Op) bool { return o.key() == p.key() }

// Host picks the operand that emits this operator:
//  1. the operand with the larger vector size;
//  2. else the dimensioned operand when the other is dimensionless;
//  3. else the operand with lower complexity, then lower identity key.
func (o *Op) Host() *Unit {
	a, b := o.A, o.B
	if a.VecSize() != b.VecSize() {
		if a.VecSize() > b.VecSize() {
			return a
		}
		return b
	}
	if !a.HasUnit() {
		return b
	}
	if !b.HasUnit() {
		return a
	}
	if ca, cb := a.Complexity(), b.Complexity(); ca != cb {
		if ca < cb {
			return a
		}
		return b
	}
	if b.Key().Less(a.Key()) {
		return b
	}
	return a
}

func (o *Op) String() string {
	return fmt.Sprintf("%s %s %s = %s", o.A.Name, o.Operator, o.B.Name, o.Result.Name)
}

// MathOp is a derived unary math function, e.g. sqrt(m2) = m.
type MathOp struct {
	Func    string
	Operand *Unit
	Result  *Unit
}

// Key identifies the math op by function and operand name.
func (m *MathOp) Key() string { return m.Func + "(" + m.Operand.Name + ")" }

func (m *MathOp) String() string {
	v := m.Operand.VarName
	if v == "" {
		v = "x"
	}
	return fmt.Sprintf("%s %s(%s %s)", m.Result.Name, m.Func, m.Operand.Name, v)
}
