package algebra_test

import (
	"math/rand"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/dimension"
)

func TestHost(t *testing.T) {
	s := newUnit(t, "s", algebra.Base, 1, map[string]int{"s": 1})
	m := newUnit(t, "m", algebra.Base, 1, map[string]int{"m": 1})
	mps := newUnit(t, "mps", algebra.Coherent, 1, map[string]int{"m": 1, "s": -1})
	len3 := newUnit(t, "len3", algebra.Vector, 3, map[string]int{"m": 1})
	r := seed(t, s, m, mps, len3)

	host := func(a *algebra.Unit, op algebra.Operator, b *algebra.Unit) string {
		t.Helper()
		before := r.Counts()
		_, err := r.AddOp(a, op, b, nil)
		require.NoError(t, err)
		_, ops, _ := r.Since(before)
		require.Len(t, ops, 1)
		return ops[0].Host().Name
	}

	assert.Equal(t, "len3", host(s, algebra.Multiply, len3), "wider operand")
	assert.Equal(t, "s", host(nil, algebra.Divide, s), "dimensioned operand")
	assert.Equal(t, "m", host(mps, algebra.Multiply, m), "lower complexity")
	assert.Equal(t, "m", host(s, algebra.Multiply, m), "lower key")
	assert.Equal(t, "m", host(s, algebra.Divide, m), "lower key regardless of operand order")
}

func TestDistribute(t *testing.T) {
	r := seed(t,
		newUnit(t, "s", algebra.Base, 1, map[string]int{"s": 1}),
		newUnit(t, "m", algebra.Base, 1, map[string]int{"m": 1}),
		newUnit(t, "kg", algebra.Base, 1, map[string]int{"kg": 1}),
		newUnit(t, "len3", algebra.Vector, 3, map[string]int{"m": 1}),
	)
	require.NoError(t, r.GenerateOperators(r.Units(), nil))
	ops := r.Ops()
	require.NotEmpty(t, ops)

	r.Distribute()
	assert.True(t, r.Distributed())
	assert.Empty(t, r.Ops())

	hosted := map[*algebra.Op]int{}
	for _, u := range r.Units() {
		for _, o := range u.Hosted() {
			hosted[o]++
			assert.True(t, o.A == u || o.B == u, "%s hosted by non-operand %s", o, u)
		}
	}
	assert.Len(t, hosted, len(ops))
	for _, o := range ops {
		assert.Equal(t, 1, hosted[o], "%s", o)
	}

	snapshot := map[string]int{}
	for _, u := range r.Units() {
		snapshot[u.Name] = len(u.Hosted())
	}
	r.Distribute()
	for _, u := range r.Units() {
		assert.Equal(t, snapshot[u.Name], len(u.Hosted()), "second distribute moved ops on %s", u)
	}

	s, _ := r.Lookup("s")
	_, err := r.AddOp(s, algebra.Multiply, s, nil)
	assert.ErrorIs(t, err, algebra.ErrDistributed)
}

func TestInverseBaseUnits(t *testing.T) {
	r := seed(t,
		newUnit(t, "s", algebra.Base, 1, map[string]int{"s": 1}),
		newUnit(t, "m", algebra.Base, 1, map[string]int{"m": 1}),
		newUnit(t, "rad", algebra.Base, 1, map[string]int{"rad": 1}),
		newUnit(t, "Hz", algebra.Special, 1, map[string]int{"s": -1}),
		newUnit(t, "len3", algebra.Vector, 3, map[string]int{"m": 1}),
	)
	require.NoError(t, algebra.InverseBaseUnits(r))

	perM, ok := r.Lookup("_1pm")
	require.True(t, ok)
	assert.Equal(t, algebra.DerivedFromSpecial, perM.Tag)

	_, ok = r.Lookup("_1ps")
	assert.False(t, ok, "1/s is already Hz")
	_, ok = r.Lookup("_1prad")
	assert.False(t, ok, "rad is not an SI base")

	var got []string
	for _, o := range r.Ops() {
		got = append(got, o.String())
	}
	assert.Equal(t, []string{"float / m = _1pm"}, got)
}

func TestScalarMultiply(t *testing.T) {
	r := seed(t,
		newUnit(t, "m", algebra.Base, 1, map[string]int{"m": 1}),
		newUnit(t, "len3", algebra.Vector, 3, map[string]int{"m": 1}),
	)
	require.NoError(t, algebra.ScalarMultiply(r))

	var got []string
	for _, o := range r.Ops() {
		got = append(got, o.String())
	}
	// float orders before m by key and before len3 by width.
	assert.Equal(t, []string{"float * m = m", "float * len3 = len3"}, got)
}

func TestPermute(t *testing.T) {
	r := seed(t,
		newUnit(t, "m", algebra.Base, 1, map[string]int{"m": 1}),
		newUnit(t, "s", algebra.Base, 1, map[string]int{"s": 1}),
	)
	require.NoError(t, algebra.Permute(r, []string{"m", "s"}))

	var got []string
	for _, o := range r.Ops() {
		got = append(got, o.String())
	}
	assert.ElementsMatch(t, []string{"m / s = mps", "s / m = spm", "m * s = ms"}, got)
}

func TestPermute_Chain(t *testing.T) {
	r := seed(t,
		newUnit(t, "kg", algebra.Base, 1, map[string]int{"kg": 1}),
		newUnit(t, "m", algebra.Base, 1, map[string]int{"m": 1}),
		newUnit(t, "s", algebra.Base, 1, map[string]int{"s": 1}),
	)
	require.NoError(t, algebra.Permute(r, []string{"kg", "m", "s"}))

	// kg * m / s folds through kg*m.
	kgm, ok := r.Lookup("kgm")
	require.True(t, ok)
	var found bool
	for _, o := range r.Ops() {
		if o.A == kgm && o.Operator == algebra.Divide && o.B.Name == "s" {
			found = true
			assert.Equal(t, "kgmps", o.Result.Name)
		}
	}
	assert.True(t, found)
}

func TestPermute_Errors(t *testing.T) {
	r := seed(t, newUnit(t, "m", algebra.Base, 1, map[string]int{"m": 1}))

	err := algebra.Permute(r, []string{"a", "b", "c", "d", "e", "f", "g"})
	assert.ErrorIs(t, err, algebra.ErrPermutationTooLarge)

	err = algebra.Permute(r, []string{"m", "parsec"})
	assert.ErrorIs(t, err, algebra.ErrUnknownUnit)

	require.NoError(t, algebra.Permute(r, []string{"m"}))
	assert.Empty(t, r.Ops())
}

// exponents is fuzzed into an in-range scalar dimension.
type exponents [dimension.NumBases]int

func fuzzFraction(fz *fuzz.Fuzzer) dimension.Fraction {
	var e exponents
	fz.Fuzz(&e)
	f := dimension.MustNew(1)
	for i, p := range e {
		f = f.MustWith(dimension.Base(i), p)
	}
	return f
}

func TestMultiplyCommutesUnderFuzz(t *testing.T) {
	fz := fuzz.New().NilChance(0).RandSource(rand.NewSource(3)).Funcs(
		func(e *exponents, c fuzz.Continue) {
			for i := range e {
				e[i] = c.Intn(2*dimension.MaxExponent+1) - dimension.MaxExponent
			}
		},
	)
	for range 200 {
		a, b := fuzzFraction(fz), fuzzFraction(fz)
		if a.Key() == b.Key() || !a.HasUnit() || !b.HasUnit() {
			continue
		}
		r := algebra.NewRegistry()
		ua := &algebra.Unit{Name: "a", Tag: algebra.Coherent, Fraction: a}
		ub := &algebra.Unit{Name: "b", Tag: algebra.Coherent, Fraction: b}
		require.NoError(t, r.AddUnits([]*algebra.Unit{ua, ub}))

		first, err1 := r.AddOp(ua, algebra.Multiply, ub, nil)
		second, err2 := r.AddOp(ub, algebra.Multiply, ua, nil)
		if err1 != nil {
			// Product out of the exponent range; the mirrored op fails the same way.
			assert.ErrorIs(t, err1, dimension.ErrExponentRange)
			assert.ErrorIs(t, err2, dimension.ErrExponentRange)
			continue
		}
		require.NoError(t, err2)
		assert.True(t, first)
		assert.False(t, second)
		require.Len(t, r.Ops(), 1)
	}
}
