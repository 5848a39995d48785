// Package dimension models physical dimensions as small integer exponent
// vectors over the base units, tagged with a vector width.
//
// A Fraction is a plain comparable value. Its Key is the identity used by the
// unit registry: two fractions describe the same dimension iff their keys are
// equal. Exponents are always stored in reduced form; a cancelled base simply
// has exponent zero and never appears in names or descriptions.
package dimension

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxExponent bounds the magnitude of every exponent of a registered unit.
	MaxExponent = 7

	// MaxVecSize is the widest supported vector.
	MaxVecSize = 3
)

// Exponents holds one signed exponent per base, indexed by Base.
type Exponents [NumBases]int8

// Key is the identity of a dimension. It is comparable and totally ordered.
type Key struct {
	VecSize uint8
	Exp     Exponents
}

// Compare orders keys by vector size, then by exponents in base order.
func (k Key) Compare(o Key) int {
	if k.VecSize != o.VecSize {
		if k.VecSize < o.VecSize {
			return -1
		}
		return 1
	}
	for i := range k.Exp {
		if k.Exp[i] != o.Exp[i] {
			if k.Exp[i] < o.Exp[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether k orders before o.
func (k Key) Less(o Key) bool { return k.Compare(o) < 0 }

// String renders the key for diagnostics, e.g. "1:kg*m/s2".
func (k Key) String() string {
	id := Fraction{vec: k.VecSize, exp: k.Exp}.id()
	if id == "" {
		id = "1"
	}
	return strconv.Itoa(int(k.VecSize)) + ":" + id
}

// Fraction is a dimension: an exponent vector plus a vector width.
// The zero value is invalid; use New.
type Fraction struct {
	vec uint8
	exp Exponents
}

// New returns a dimensionless fraction of the given vector width.
func New(vecSize int) (Fraction, error) {
	if vecSize < 1 || vecSize > MaxVecSize {
		return Fraction{}, fmt.Errorf("%w: %d", ErrVecSize, vecSize)
	}
	return Fraction{vec: uint8(vecSize)}, nil
}

// MustNew is New for statically known widths.
func MustNew(vecSize int) Fraction {
	f, err := New(vecSize)
	if err != nil {
		panic(err)
	}
	return f
}

// With returns a copy of f with power added to the exponent of b.
// A zero power is a no-op.
func (f Fraction) With(b Base, power int) (Fraction, error) {
	if int(b) >= NumBases {
		return f, fmt.Errorf("%w: %v", ErrUnknownBase, b)
	}
	if power == 0 {
		return f, nil
	}
	p := int(f.exp[b]) + power
	if p < -MaxExponent || p > MaxExponent {
		return f, fmt.Errorf("%w: %s^%d", ErrExponentRange, b, p)
	}
	f.exp[b] = int8(p)
	return f, nil
}

// MustWith is With for statically known tables.
func (f Fraction) MustWith(b Base, power int) Fraction {
	r, err := f.With(b, power)
	if err != nil {
		panic(err)
	}
	return r
}

// Parse builds a fraction from a symbol → power map.
func Parse(vecSize int, powers map[string]int) (Fraction, error) {
	f, err := New(vecSize)
	if err != nil {
		return f, err
	}
	// Map iteration order does not matter: each base is set independently.
	for sym, p := range powers {
		b, err := ParseBase(sym)
		if err != nil {
			return f, err
		}
		if f, err = f.With(b, p); err != nil {
			return f, err
		}
	}
	return f, nil
}

// Combine multiplies or divides two dimensions. Exponents add for multiply and
// subtract for divide; the vector width is the larger of the two.
//
// The result is not range checked. Inputs within ±MaxExponent yield at most
// twice that, which Validate reports before the fraction is registered.
func Combine(a Fraction, multiply bool, b Fraction) Fraction {
	r := Fraction{vec: max(a.vec, b.vec), exp: a.exp}
	for i, p := range b.exp {
		if multiply {
			r.exp[i] += p
		} else {
			r.exp[i] -= p
		}
	}
	return r
}

// Validate checks the vector width and the exponent range.
func (f Fraction) Validate() error {
	if f.vec < 1 || f.vec > MaxVecSize {
		return fmt.Errorf("%w: %d", ErrVecSize, f.vec)
	}
	for i, p := range f.exp {
		if p < -MaxExponent || p > MaxExponent {
			return fmt.Errorf("%w: %s^%d in %s", ErrExponentRange, Base(i), p, f.Key())
		}
	}
	return nil
}

// Key returns the identity of f.
func (f Fraction) Key() Key { return Key{VecSize: f.vec, Exp: f.exp} }

// ScalarKey returns the identity of the same exponents with vector width 1.
func (f Fraction) ScalarKey() Key { return Key{VecSize: 1, Exp: f.exp} }

// Scalar returns f with vector width 1.
func (f Fraction) Scalar() Fraction {
	f.vec = 1
	return f
}

// VecSize is the vector width (1 for scalars).
func (f Fraction) VecSize() int { return int(f.vec) }

// Exponent returns the power of b.
func (f Fraction) Exponent(b Base) int { return int(f.exp[b]) }

// Exponents returns a copy of the exponent vector.
func (f Fraction) Exponents() Exponents { return f.exp }

// NumSize is the sum of positive exponents.
func (f Fraction) NumSize() int {
	n := 0
	for _, p := range f.exp {
		if p > 0 {
			n += int(p)
		}
	}
	return n
}

// DenSize is the sum of magnitudes of negative exponents.
func (f Fraction) DenSize() int {
	n := 0
	for _, p := range f.exp {
		if p < 0 {
			n -= int(p)
		}
	}
	return n
}

// Complexity is the sum of absolute exponents.
func (f Fraction) Complexity() int { return f.NumSize() + f.DenSize() }

// HasUnit reports whether f is dimensioned.
func (f Fraction) HasUnit() bool { return f.exp != Exponents{} }

// IsSI reports whether f is dimensioned and every nonzero exponent is on an
// SI base.
func (f Fraction) IsSI() bool {
	return f.HasUnit() && f.OnlyBases(SIBases)
}

// Bases returns the set of bases with a nonzero exponent.
func (f Fraction) Bases() BaseSet {
	var s BaseSet
	for i, p := range f.exp {
		if p != 0 {
			s |= 1 << i
		}
	}
	return s
}

// OnlyBases reports whether every nonzero exponent is on a base in set.
// A dimensionless fraction trivially qualifies.
func (f Fraction) OnlyBases(set BaseSet) bool {
	return f.Bases()&^set == 0
}

// IsFundamental reports whether f is a single base to the first power.
func (f Fraction) IsFundamental() bool {
	seen := false
	for _, p := range f.exp {
		switch {
		case p == 0:
		case p == 1 && !seen:
			seen = true
		default:
			return false
		}
	}
	return seen
}

// Half returns the fraction with every exponent halved. ok is false when f is
// dimensionless or any exponent is odd.
func (f Fraction) Half() (h Fraction, ok bool) {
	if !f.HasUnit() {
		return f, false
	}
	h = f
	for i, p := range f.exp {
		if p%2 != 0 {
			return f, false
		}
		h.exp[i] = p / 2
	}
	return h, true
}

// Inverse negates every exponent.
func (f Fraction) Inverse() Fraction {
	for i := range f.exp {
		f.exp[i] = -f.exp[i]
	}
	return f
}

// id renders "num/den" with '*' between terms, "1" for an empty numerator and
// the magnitude appended to every exponent other than ±1.
func (f Fraction) id() string {
	var num, den []string
	for _, b := range renderOrder {
		p := int(f.exp[b])
		if p == 0 {
			continue
		}
		term := b.String()
		mag := p
		if mag < 0 {
			mag = -mag
		}
		if mag > 1 {
			term += strconv.Itoa(mag)
		}
		if p > 0 {
			num = append(num, term)
		} else {
			den = append(den, term)
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return ""
	}
	id := "1"
	if len(num) > 0 {
		id = strings.Join(num, "*")
	}
	if len(den) > 0 {
		id += "/" + strings.Join(den, "*")
	}
	return id
}

// Name renders an identifier-safe name: terms concatenated, "p" for "per",
// a leading "_1" when there is no numerator, and a "_v<N>" suffix for vectors.
// Dimensionless fractions have an empty name.
//
//	m/s2 -> mps2   kg*m2/s2 -> kgm2ps2   1/s -> _1ps   m (3-vector) -> m_v3
func (f Fraction) Name() string {
	id := f.id()
	if id == "" {
		return ""
	}
	if strings.HasPrefix(id, "1/") {
		id = "_" + id
	}
	name := strings.ReplaceAll(strings.ReplaceAll(id, "/", "p"), "*", "")
	if f.vec > 1 {
		name += "_v" + strconv.Itoa(int(f.vec))
	}
	return name
}

var superscripts = strings.NewReplacer(
	"2", "²", "3", "³", "4", "⁴", "5", "⁵", "6", "⁶", "7", "⁷",
)

// Description renders a human-readable form with superscript powers and
// "·" between terms, e.g. "m/s²" or "kg·m²/s²". A denominator with more than
// one term is parenthesised. Dimensionless fractions render as "".
func (f Fraction) Description() string {
	id := f.id()
	if id == "" {
		return ""
	}
	num, den, _ := strings.Cut(id, "/")
	if strings.Contains(den, "*") {
		den = "(" + den + ")"
	}
	out := num
	if den != "" {
		out += "/" + den
	}
	return superscripts.Replace(strings.ReplaceAll(out, "*", "·"))
}

// String is the diagnostic form used in logs.
func (f Fraction) String() string { return f.Key().String() }
