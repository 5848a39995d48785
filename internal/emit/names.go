package emit

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kamusis/unitgen/internal/algebra"
)

// floatType is the Go type of the dimensionless scalar.
const floatType = "float32"

// Namer maps unit names to Go type names.
type Namer struct {
	types map[string]string
}

// NewNamer assigns a Go type name to every unit: the override when one is
// given, otherwise the title-cased unit name with "_1p" spelled "Per" and a
// vector suffix "_vN" spelled "VN". Two units may not share a type name.
func NewNamer(units []*algebra.Unit, overrides map[string]string) (*Namer, error) {
	title := cases.Title(language.Und, cases.NoLower)
	n := &Namer{types: make(map[string]string, len(units))}
	owner := make(map[string]string, len(units))

	for _, u := range units {
		typ, ok := overrides[u.Name]
		switch {
		case ok:
		case !u.HasUnit() && u.VecSize() == 1:
			typ = floatType
		default:
			typ = goName(title, u.Name)
		}
		if typ != floatType && (!token.IsIdentifier(typ) || !token.IsExported(typ)) {
			return nil, fmt.Errorf("%w: unit %s maps to %q", ErrTypeName, u.Name, typ)
		}
		if prev, ok := owner[typ]; ok {
			return nil, fmt.Errorf("%w: units %s and %s both map to %s; set type_names for one of them",
				ErrTypeNameCollision, u.Name, prev, typ)
		}
		owner[typ] = u.Name
		n.types[u.Name] = typ
	}
	return n, nil
}

func goName(title cases.Caser, name string) string {
	var suffix string
	if i := strings.LastIndex(name, "_v"); i > 0 {
		name, suffix = name[:i], "V"+name[i+2:]
	}
	if rest, ok := strings.CutPrefix(name, "_1p"); ok {
		return "Per" + title.String(rest) + suffix
	}
	return title.String(name) + suffix
}

// Type returns the Go type of the named unit.
func (n *Namer) Type(unit string) (string, bool) {
	t, ok := n.types[unit]
	return t, ok
}

// TypeOf returns the Go type of u, which must have been named.
func (n *Namer) TypeOf(u *algebra.Unit) string { return n.types[u.Name] }

// suffix is the type name as used inside method names.
func (n *Namer) suffix(u *algebra.Unit) string {
	if t := n.TypeOf(u); t != floatType {
		return t
	}
	return "Float"
}
