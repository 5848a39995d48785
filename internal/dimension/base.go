package dimension

import (
	"fmt"
	"sort"
	"strings"
)

// Base is one of the fixed physical base dimensions.
type Base uint8

// Base dimensions, in exponent-vector order.
const (
	S   Base = iota // second, time
	Kg              // kilogram, mass
	M               // metre, length
	A               // ampere, electric current
	K               // kelvin, thermodynamic temperature
	Mol             // mole, amount of substance
	Cd              // candela, luminous intensity
	Rad             // radian, plane angle

	NumBases = 8
)

var baseSymbols = [NumBases]string{"s", "kg", "m", "A", "K", "mol", "cd", "rad"}

// renderOrder lists bases by ordinal order of their symbols. Names and
// descriptions emit terms in this order.
var renderOrder = func() [NumBases]Base {
	var order [NumBases]Base
	for i := range order {
		order[i] = Base(i)
	}
	sort.Slice(order[:], func(i, j int) bool {
		return baseSymbols[order[i]] < baseSymbols[order[j]]
	})
	return order
}()

// String returns the SI symbol of the base.
func (b Base) String() string {
	if int(b) >= NumBases {
		return fmt.Sprintf("Base(%d)", uint8(b))
	}
	return baseSymbols[b]
}

// IsSI reports whether b is one of the seven SI base units (rad is not).
func (b Base) IsSI() bool { return b < Rad }

// ParseBase resolves a base symbol such as "kg" or "rad".
func ParseBase(symbol string) (Base, error) {
	for i, s := range baseSymbols {
		if s == symbol {
			return Base(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBase, symbol)
}

// BaseSet is a bitmask of base dimensions.
type BaseSet uint8

const (
	// AllBases contains every base dimension.
	AllBases BaseSet = 1<<NumBases - 1
	// SIBases contains the seven SI base dimensions.
	SIBases = AllBases &^ (1 << Rad)
)

// NewBaseSet builds a set from the given bases.
func NewBaseSet(bases ...Base) BaseSet {
	var s BaseSet
	for _, b := range bases {
		s |= 1 << b
	}
	return s
}

// ParseBaseSet builds a set from base symbols.
func ParseBaseSet(symbols []string) (BaseSet, error) {
	var s BaseSet
	for _, sym := range symbols {
		b, err := ParseBase(sym)
		if err != nil {
			return 0, err
		}
		s |= 1 << b
	}
	return s, nil
}

// Has reports whether b is in the set.
func (s BaseSet) Has(b Base) bool { return s&(1<<b) != 0 }

// Symbols lists the set members in exponent-vector order.
func (s BaseSet) Symbols() []string {
	var out []string
	for b := Base(0); b < NumBases; b++ {
		if s.Has(b) {
			out = append(out, b.String())
		}
	}
	return out
}

func (s BaseSet) String() string {
	return "{" + strings.Join(s.Symbols(), ",") + "}"
}
