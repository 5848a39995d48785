package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/dimension"
	"github.com/kamusis/unitgen/internal/metrics"
)

func base(name string, b dimension.Base) *algebra.Unit {
	return &algebra.Unit{Name: name, Tag: algebra.Base, Fraction: dimension.MustNew(1).MustWith(b, 1)}
}

func smallPlan() Plan {
	siOnly := dimension.AllBases &^ dimension.NewBaseSet(dimension.Rad)
	return Plan{
		Seed:       []*algebra.Unit{base("s", dimension.S), base("m", dimension.M), base("rad", dimension.Rad)},
		SeedFilter: algebra.SeedFilter{Bases: siOnly, Tags: algebra.AllTags},
		Custom: []*algebra.Unit{{
			Name: "kg", Tag: algebra.Base, Fraction: dimension.MustNew(1).MustWith(dimension.Kg, 1),
		}},
		Blocks: []algebra.Block{{
			Name:   "si",
			Tags:   algebra.Base,
			Bases:  siOnly,
			Vec:    algebra.NoVectors,
			Result: algebra.DefaultResultFilter(),
		}},
		Operations:       []Operation{{A: "m", Op: algebra.Multiply, B: "m"}},
		InverseBaseUnits: true,
		Permutations:     [][]string{{"m", "s"}},
	}
}

func TestRun_Phases(t *testing.T) {
	res, err := New().Run(context.Background(), smallPlan())
	require.NoError(t, err)

	var phases []string
	for _, r := range res.Reports {
		phases = append(phases, r.Phase)
	}
	assert.Equal(t, []string{
		PhaseSeed, PhaseBlocks, PhaseCustomOps, PhaseInverse, PhasePermutations, PhaseClosure, PhaseDistribute,
	}, phases)

	seed := res.Reports[0]
	assert.Equal(t, 3, seed.UnitsAdded(), "rad is filtered out of the seed")

	block := res.Reports[1]
	assert.Equal(t, "si", block.Step)
	assert.Equal(t, 3, block.Candidates)
	assert.Positive(t, block.OpsAdded())

	closure := res.Reports[5]
	assert.True(t, closure.Stable)
	assert.Positive(t, closure.Rounds)
	assert.Positive(t, closure.MathOpsAdded(), "m2 has a square root")

	assert.Zero(t, res.Reports[6].OpsAdded(), "distribution never reports added ops")
}

func TestRun_Result(t *testing.T) {
	res, err := New().Run(context.Background(), smallPlan())
	require.NoError(t, err)
	r := res.Registry

	_, ok := r.Lookup("rad")
	assert.False(t, ok)
	assert.Equal(t, map[string]bool{"kg": true}, res.Custom)

	inv, ok := r.Lookup("_1ps")
	require.True(t, ok)
	assert.Equal(t, algebra.DerivedFromSpecial, inv.Tag)

	assert.True(t, r.Distributed())
	assert.Empty(t, r.Ops())
	hosted := 0
	for _, u := range r.Units() {
		hosted += len(u.Hosted())
	}
	assert.Equal(t, res.Hosted, hosted)
	assert.Positive(t, hosted)
}

func TestRun_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	res, err := New(WithLogger(zap.New(core))).Run(context.Background(), smallPlan())
	require.NoError(t, err)

	assert.Len(t, logs.FilterMessage("phase done").All(), len(res.Reports))
	require.Len(t, logs.FilterMessage("generation done").All(), 1)

	diffs := logs.FilterMessage("phase diff").FilterField(zap.String("phase", PhaseSeed)).All()
	require.Len(t, diffs, 1)
	added, ok := diffs[0].ContextMap()["added"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, added, "unit s 1:s (base)")

	assert.Empty(t, logs.FilterMessage("closure stopped before a fixed point").All())
}

func TestRun_ClosureCapWarns(t *testing.T) {
	plan := smallPlan()
	plan.Seed = append(plan.Seed, &algebra.Unit{
		Name: "m16", Tag: algebra.Coherent, Fraction: dimension.MustNew(1).MustWith(dimension.M, 4),
	})
	plan.MaxIterations = 1

	core, logs := observer.New(zapcore.WarnLevel)
	res, err := New(WithLogger(zap.New(core))).Run(context.Background(), plan)
	require.NoError(t, err)
	assert.False(t, res.Reports[5].Stable)
	assert.Len(t, logs.FilterMessage("closure stopped before a fixed point").All(), 1)
}

func TestRun_Metrics(t *testing.T) {
	m := metrics.New()
	res, err := New(WithMetrics(m)).Run(context.Background(), smallPlan())
	require.NoError(t, err)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if len(metric.GetLabel()) == 0 {
				values[f.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, float64(res.Hosted), values["unitgen_hosted_ops"])
	assert.Equal(t, float64(1), values["unitgen_closure_stable"])
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Plan)
		want   error
		phase  string
	}{
		{
			name:   "unknown unit in custom operation",
			modify: func(p *Plan) { p.Operations = []Operation{{A: "m", Op: algebra.Divide, B: "ft"}} },
			want:   algebra.ErrUnknownUnit,
			phase:  PhaseCustomOps,
		},
		{
			name: "custom unit collides with seed",
			modify: func(p *Plan) {
				p.Custom = []*algebra.Unit{{Name: "m", Fraction: dimension.MustNew(1).MustWith(dimension.K, 1)}}
			},
			want:  algebra.ErrDuplicateName,
			phase: PhaseSeed,
		},
		{
			name:   "permutation too large",
			modify: func(p *Plan) { p.Permutations = [][]string{{"s", "m", "kg", "s", "m", "kg", "s"}} },
			want:   algebra.ErrPermutationTooLarge,
			phase:  PhasePermutations,
		},
		{
			name:   "unknown unit in permutation",
			modify: func(p *Plan) { p.Permutations = [][]string{{"m", "ft"}} },
			want:   algebra.ErrUnknownUnit,
			phase:  PhasePermutations,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := smallPlan()
			tt.modify(&plan)
			res, err := New().Run(context.Background(), plan)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.phase)
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Run(ctx, smallPlan())
	assert.True(t, errors.Is(err, context.Canceled))
}
