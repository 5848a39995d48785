package emit

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/dimension"
)

// fileGen holds the state of one file being rendered.
type fileGen struct {
	g       *Generator
	namer   *Namer
	scalars map[dimension.Key]*algebra.Unit
	buf     bytes.Buffer
}

// Printf appends formatted output.
func (f *fileGen) Printf(format string, args ...any) {
	fmt.Fprintf(&f.buf, format, args...)
}

func (f *fileGen) header(imports ...string) {
	f.Printf("// Code generated by %s. DO NOT EDIT.\n\n", f.g.cfg.Generator)
	f.Printf("package %s\n\n", f.g.cfg.Package)
	for _, imp := range imports {
		f.Printf("import %q\n", imp)
	}
}

func (f *fileGen) unitFile(units []*algebra.Unit) []byte {
	f.header("fmt")
	for _, u := range units {
		f.unit(u)
	}
	return f.buf.Bytes()
}

func (f *fileGen) unit(u *algebra.Unit) {
	typ := f.namer.TypeOf(u)
	f.Printf("\n// %s is %s.\n", typ, describe(u))
	if n := u.VecSize(); n > 1 {
		f.Printf("type %s [%d]float32\n", typ, n)
		f.vector(u, typ)
	} else {
		f.Printf("type %s float32\n", typ)
		f.Printf("\nfunc (a %s) String() string { return fmt.Sprintf(%q, float32(a)) }\n", typ, "%g "+u.Fraction.Description())
	}
	for _, o := range u.Hosted() {
		f.op(o)
	}
	f.fields(u, typ)
}

func describe(u *algebra.Unit) string {
	s := u.Summary
	if d := u.Fraction.Description(); d != "" && !strings.Contains(s, d) {
		s += " [" + d + "]"
	}
	if n := u.VecSize(); n > 1 {
		s += fmt.Sprintf(", %d components", n)
	}
	return s
}

var axes = [...]string{"X", "Y", "Z"}

func (f *fileGen) vector(u *algebra.Unit, typ string) {
	n := u.VecSize()
	verbs := strings.TrimSuffix(strings.Repeat("%g, ", n), ", ")
	args := make([]string, n)
	for i := range args {
		args[i] = fmt.Sprintf("a[%d]", i)
	}
	layout := "(" + verbs + ")"
	if d := u.Fraction.Description(); d != "" {
		layout += " " + d
	}
	f.Printf("\nfunc (a %s) String() string { return fmt.Sprintf(%q, %s) }\n", typ, layout, strings.Join(args, ", "))

	for _, m := range []struct{ name, doc, op string }{
		{"Add", "sum", "+"},
		{"Sub", "difference", "-"},
	} {
		f.Printf("\n// %s returns the component-wise %s of a and b.\n", m.name, m.doc)
		f.Printf("func (a %[1]s) %[2]s(b %[1]s) %[1]s {\n\tvar r %[1]s\n\tfor i := range r {\n\t\tr[i] = a[i] %[3]s b[i]\n\t}\n\treturn r\n}\n", typ, m.name, m.op)
	}
	f.Printf("\n// Neg returns -a.\n")
	f.Printf("func (a %[1]s) Neg() %[1]s {\n\tvar r %[1]s\n\tfor i := range r {\n\t\tr[i] = -a[i]\n\t}\n\treturn r\n}\n", typ)
	f.Printf("\n// Scale returns a with every component multiplied by s.\n")
	f.Printf("func (a %[1]s) Scale(s float32) %[1]s {\n\tvar r %[1]s\n\tfor i := range r {\n\t\tr[i] = a[i] * s\n\t}\n\treturn r\n}\n", typ)

	sc, ok := f.scalars[u.Fraction.ScalarKey()]
	if !ok {
		return
	}
	st := f.namer.TypeOf(sc)
	for i := 0; i < n; i++ {
		f.Printf("\nfunc (a %s) %s() %s { return %s }\n", typ, axes[i], st, convert(st, fmt.Sprintf("a[%d]", i)))
	}
}

// op emits a hosted operator as a method on its left operand. The
// dimensionless scalar has no methods: float * b becomes a method on b and
// float / b a package function.
func (f *fileGen) op(o *algebra.Op) {
	ta, tb := f.namer.TypeOf(o.A), f.namer.TypeOf(o.B)
	verb := "Mul"
	if o.Operator == algebra.Divide {
		verb = "Div"
	}

	switch {
	case ta == floatType && o.Operator == algebra.Multiply:
		f.method(verb+"Float", o.B, o.A, o.Result, o.Operator)
	case ta == floatType:
		f.function(verb+"Float"+f.namer.suffix(o.B), o.A, o.B, o.Result, o.Operator)
	default:
		f.method(verb+f.namer.suffix(o.B), o.A, o.B, o.Result, o.Operator)
		if o.Operator == algebra.Multiply && tb != floatType && ta != tb {
			f.Printf("\n// %s%s returns a * b.\n", verb, f.namer.suffix(o.A))
			f.Printf("func (a %s) %s%s(b %s) %s { return b.%s%s(a) }\n",
				tb, verb, f.namer.suffix(o.A), ta, f.namer.TypeOf(o.Result), verb, f.namer.suffix(o.B))
		}
	}
}

func (f *fileGen) method(name string, recv, arg, res *algebra.Unit, op algebra.Operator) {
	f.Printf("\n// %s returns a %s b.\n", name, op)
	f.Printf("func (a %s) %s(b %s) %s {\n", f.namer.TypeOf(recv), name, f.namer.TypeOf(arg), f.namer.TypeOf(res))
	f.body(recv, arg, res, op)
	f.Printf("}\n")
}

func (f *fileGen) function(name string, left, right, res *algebra.Unit, op algebra.Operator) {
	f.Printf("\n// %s returns a %s b.\n", name, op)
	f.Printf("func %s(a %s, b %s) %s {\n", name, f.namer.TypeOf(left), f.namer.TypeOf(right), f.namer.TypeOf(res))
	f.body(left, right, res, op)
	f.Printf("}\n")
}

func (f *fileGen) body(left, right, res *algebra.Unit, op algebra.Operator) {
	expr := fmt.Sprintf("%s %s %s", f.component(left, "a"), op, f.component(right, "b"))
	rt := f.namer.TypeOf(res)
	if res.VecSize() == 1 {
		f.Printf("\treturn %s\n", convert(rt, expr))
		return
	}
	f.Printf("\tvar r %s\n\tfor i := range r {\n\t\tr[i] = %s\n\t}\n\treturn r\n", rt, expr)
}

// component is the float32 expression for operand v, indexed when it is a vector.
func (f *fileGen) component(u *algebra.Unit, v string) string {
	if u.VecSize() > 1 {
		return v + "[i]"
	}
	if f.namer.TypeOf(u) == floatType {
		return v
	}
	return "float32(" + v + ")"
}

// convert wraps expr in a conversion to typ unless typ is float32.
func convert(typ, expr string) string {
	if typ == floatType {
		return expr
	}
	return typ + "(" + expr + ")"
}

// fieldData is the template data of an extra member.
type fieldData struct {
	Type    string
	Name    string
	VarName string
}

// fields renders the extra members of u. A member referring to a unit that is
// not generated is skipped.
func (f *fileGen) fields(u *algebra.Unit, typ string) {
	funcs := template.FuncMap{
		"type": func(name string) (string, error) {
			t, ok := f.namer.Type(name)
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
			}
			return t, nil
		},
	}
	data := fieldData{Type: typ, Name: u.Name, VarName: u.VarName}
	for i, src := range u.AddFields {
		tmpl, err := template.New(fmt.Sprintf("%s.%d", u.Name, i)).Funcs(funcs).Parse(src)
		var out bytes.Buffer
		if err == nil {
			err = tmpl.Execute(&out, data)
		}
		if err != nil {
			lvl := zap.ErrorLevel
			if errors.Is(err, ErrUnknownType) {
				lvl = zap.WarnLevel
			}
			f.g.log.Log(lvl, "skipped extra member", zap.String("unit", u.Name), zap.Int("index", i), zap.Error(err))
			continue
		}
		f.Printf("\n%s\n", out.String())
	}
}

func (f *fileGen) mathFile(ops []*algebra.MathOp) []byte {
	f.header("math")
	title := cases.Title(language.Und)
	for _, m := range ops {
		name := title.String(m.Func) + f.namer.suffix(m.Operand)
		ot, rt := f.namer.TypeOf(m.Operand), f.namer.TypeOf(m.Result)
		call := fmt.Sprintf("math.%s(float64(%%s))", title.String(m.Func))
		f.Printf("\n// %s returns %s(x) as %s.\n", name, m.Func, rt)
		if m.Result.VecSize() == 1 {
			f.Printf("func %s(x %s) %s { return %s(%s) }\n", name, ot, rt, rt, fmt.Sprintf(call, "x"))
			continue
		}
		f.Printf("func %s(x %s) %s {\n\tvar r %s\n\tfor i := range r {\n\t\tr[i] = float32(%s)\n\t}\n\treturn r\n}\n",
			name, ot, rt, rt, fmt.Sprintf(call, "x[i]"))
	}
	f.Printf(`
// length is the Euclidean norm of v.
func length(v []float32) float32 { return float32(math.Sqrt(float64(lengthSq(v)))) }

// lengthSq is the squared Euclidean norm of v.
func lengthSq(v []float32) float32 {
	var s float32
	for _, c := range v {
		s += c * c
	}
	return s
}
`)
	return f.buf.Bytes()
}
