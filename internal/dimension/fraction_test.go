package dimension

import (
	"errors"
	"math/rand"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFuzzer fills Fractions with in-range exponents and a valid width.
func newFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.New().NilChance(0).RandSource(rand.NewSource(seed)).Funcs(
		func(f *Fraction, c fuzz.Continue) {
			f.vec = uint8(1 + c.Intn(MaxVecSize))
			for i := range f.exp {
				f.exp[i] = int8(c.Intn(2*MaxExponent+1) - MaxExponent)
			}
		},
	)
}

func mustParse(t *testing.T, vec int, powers map[string]int) Fraction {
	t.Helper()
	f, err := Parse(vec, powers)
	require.NoError(t, err)
	return f
}

func TestCombine_RoundTrip(t *testing.T) {
	f := newFuzzer(42)
	for i := 0; i < 500; i++ {
		var a, b Fraction
		f.Fuzz(&a)
		f.Fuzz(&b)
		if b.vec > a.vec {
			b.vec = a.vec
		}
		got := Combine(Combine(a, true, b), false, b)
		require.Equal(t, a.Key(), got.Key(), "a=%s b=%s", a, b)
	}
}

func TestCombine_MultiplyCommutes(t *testing.T) {
	f := newFuzzer(7)
	for i := 0; i < 500; i++ {
		var a, b Fraction
		f.Fuzz(&a)
		f.Fuzz(&b)
		assert.Equal(t, Combine(a, true, b).Key(), Combine(b, true, a).Key())
	}
}

func TestCombine_VecSizeIsMax(t *testing.T) {
	a := MustNew(1).MustWith(M, 1)
	b := MustNew(3).MustWith(S, 1)
	assert.Equal(t, 3, Combine(a, false, b).VecSize())
	assert.Equal(t, 3, Combine(b, true, a).VecSize())
}

func TestCombine_CancelDropsBase(t *testing.T) {
	m := mustParse(t, 1, map[string]int{"m": 1})
	r := Combine(m, false, m)
	assert.False(t, r.HasUnit())
	assert.Equal(t, "", r.Name())
	assert.Equal(t, "", r.Description())
	assert.Equal(t, BaseSet(0), r.Bases())
}

func TestWith_ZeroIsNoop(t *testing.T) {
	f := MustNew(1)
	g, err := f.With(Kg, 0)
	require.NoError(t, err)
	assert.Equal(t, f.Key(), g.Key())
	assert.False(t, g.HasUnit())
}

func TestWith_RangeEnforced(t *testing.T) {
	f := MustNew(1).MustWith(M, MaxExponent)
	_, err := f.With(M, 1)
	assert.True(t, errors.Is(err, ErrExponentRange))

	_, err = MustNew(1).With(S, -MaxExponent-1)
	assert.True(t, errors.Is(err, ErrExponentRange))
}

func TestNew_VecSize(t *testing.T) {
	for _, v := range []int{0, 4, -1} {
		_, err := New(v)
		assert.ErrorIs(t, err, ErrVecSize, "vecSize %d", v)
	}
	for _, v := range []int{1, 2, 3} {
		f, err := New(v)
		require.NoError(t, err)
		assert.Equal(t, v, f.VecSize())
	}
}

func TestValidate_CatchesCombinedOverflow(t *testing.T) {
	a := MustNew(1).MustWith(S, 4)
	r := Combine(a, true, a)
	assert.Equal(t, 8, r.Exponent(S))
	assert.ErrorIs(t, r.Validate(), ErrExponentRange)
	assert.NoError(t, a.Validate())
}

func TestParse_UnknownBase(t *testing.T) {
	_, err := Parse(1, map[string]int{"ft": 1})
	assert.ErrorIs(t, err, ErrUnknownBase)
}

func TestDerivedAttributes(t *testing.T) {
	j := mustParse(t, 1, map[string]int{"kg": 1, "m": 2, "s": -2})
	assert.Equal(t, 3, j.NumSize())
	assert.Equal(t, 2, j.DenSize())
	assert.Equal(t, 5, j.Complexity())
	assert.True(t, j.HasUnit())
	assert.True(t, j.IsSI())
	assert.False(t, j.IsFundamental())

	sr := mustParse(t, 1, map[string]int{"rad": 2})
	assert.False(t, sr.IsSI())

	assert.False(t, MustNew(1).IsSI())
	assert.True(t, mustParse(t, 1, map[string]int{"mol": 1}).IsFundamental())
	assert.False(t, mustParse(t, 1, map[string]int{"s": -1}).IsFundamental())
}

func TestScalarKey(t *testing.T) {
	v := mustParse(t, 3, map[string]int{"m": 1, "s": -1})
	s := mustParse(t, 1, map[string]int{"m": 1, "s": -1})
	assert.NotEqual(t, s.Key(), v.Key())
	assert.Equal(t, s.Key(), v.ScalarKey())
	assert.Equal(t, s.Key(), v.Scalar().Key())
}

func TestNameAndDescription(t *testing.T) {
	tests := []struct {
		powers map[string]int
		vec    int
		name   string
		desc   string
	}{
		{map[string]int{"m": 1, "s": -1}, 1, "mps", "m/s"},
		{map[string]int{"m": 1, "s": -2}, 1, "mps2", "m/s²"},
		{map[string]int{"m": 2}, 1, "m2", "m²"},
		{map[string]int{"kg": 1, "m": 2, "s": -2}, 1, "kgm2ps2", "kg·m²/s²"},
		{map[string]int{"s": -1}, 1, "_1ps", "1/s"},
		{map[string]int{"kg": 1, "m": -1, "s": -1}, 1, "kgpms", "kg/(m·s)"},
		{map[string]int{"A": 1, "s": 1}, 1, "As", "A·s"},
		{map[string]int{"m": 1}, 3, "m_v3", "m"},
		{map[string]int{"s": 4, "A": 2, "kg": -1, "m": -2}, 1, "A2s4pkgm2", "A²·s⁴/(kg·m²)"},
	}
	for _, tc := range tests {
		f := mustParse(t, tc.vec, tc.powers)
		assert.Equal(t, tc.name, f.Name())
		assert.Equal(t, tc.desc, f.Description())
	}
}

func TestHalf(t *testing.T) {
	h, ok := mustParse(t, 1, map[string]int{"m": 2, "s": -2}).Half()
	require.True(t, ok)
	assert.Equal(t, mustParse(t, 1, map[string]int{"m": 1, "s": -1}).Key(), h.Key())

	_, ok = mustParse(t, 1, map[string]int{"m": 1}).Half()
	assert.False(t, ok)

	_, ok = MustNew(1).Half()
	assert.False(t, ok)
}

func TestKeyCompare(t *testing.T) {
	scalar := MustNew(1)
	m := MustNew(1).MustWith(M, 1)
	len3 := MustNew(3).MustWith(M, 1)

	assert.True(t, scalar.Key().Less(m.Key()))
	assert.True(t, m.Key().Less(len3.Key()))
	assert.Equal(t, 0, m.Key().Compare(m.Key()))
	assert.Equal(t, 1, len3.Key().Compare(scalar.Key()))
}

func TestBaseSet(t *testing.T) {
	set, err := ParseBaseSet([]string{"s", "m"})
	require.NoError(t, err)
	assert.True(t, set.Has(S))
	assert.False(t, set.Has(Kg))
	assert.Equal(t, []string{"s", "m"}, set.Symbols())

	mps := mustParse(t, 1, map[string]int{"m": 1, "s": -1})
	assert.True(t, mps.OnlyBases(set))
	assert.False(t, mustParse(t, 1, map[string]int{"kg": 1}).OnlyBases(set))
	assert.True(t, MustNew(1).OnlyBases(0))
	assert.False(t, SIBases.Has(Rad))
	assert.True(t, AllBases.Has(Rad))
}
