package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/unitgen/internal/config"
	"github.com/kamusis/unitgen/internal/pipeline"
)

func runDefault(t *testing.T) *pipeline.Result {
	t.Helper()
	plan, err := config.Default().Plan()
	require.NoError(t, err)
	res, err := pipeline.New().Run(context.Background(), plan)
	require.NoError(t, err)
	return res
}

func TestRun_DefaultConfig(t *testing.T) {
	res := runDefault(t)
	r := res.Registry

	for _, name := range []string{"mps", "mps2", "m2ps2", "_1pm", "len3", "float"} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}
	last := res.Reports[len(res.Reports)-1]
	assert.Equal(t, pipeline.PhaseDistribute, last.Phase)
	for _, rep := range res.Reports {
		if rep.Phase == pipeline.PhaseClosure {
			assert.True(t, rep.Stable, "default closure reaches a fixed point")
		}
	}
	assert.NotEmpty(t, r.MathOps())
	assert.Positive(t, res.Hosted)
}

func TestRun_Reproducible(t *testing.T) {
	snapshot := func(res *pipeline.Result) []string {
		var out []string
		for _, u := range res.Registry.Units() {
			out = append(out, u.Name+" "+u.Key().String())
			for _, o := range u.Hosted() {
				out = append(out, "  "+o.String())
			}
		}
		for _, m := range res.Registry.MathOps() {
			out = append(out, m.String())
		}
		return out
	}
	assert.Equal(t, snapshot(runDefault(t)), snapshot(runDefault(t)))
}
