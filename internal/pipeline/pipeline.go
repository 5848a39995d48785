// Package pipeline runs a generation: it seeds one registry and drives it
// through the fixed phase sequence
//
//	seed → blocks → custom operations → inverse base units → scalar multiply
//	→ permutations → closure → final blocks → distribute
//
// logging and measuring every phase.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/metrics"
)

// Phase names.
const (
	PhaseSeed         = "seed"
	PhaseBlocks       = "blocks"
	PhaseCustomOps    = "custom_operations"
	PhaseInverse      = "inverse_base_units"
	PhaseScalar       = "scalar_multiply"
	PhasePermutations = "permutations"
	PhaseClosure      = "closure"
	PhaseFinalBlocks  = "final_blocks"
	PhaseDistribute   = "distribute"
)

// Operation is an explicit a op b between named units.
type Operation struct {
	A  string
	Op algebra.Operator
	B  string
}

func (o Operation) String() string { return fmt.Sprintf("%s %s %s", o.A, o.Op, o.B) }

// Plan is everything a run needs, already converted to engine values.
type Plan struct {
	Seed             []*algebra.Unit
	SeedFilter       algebra.SeedFilter
	Custom           []*algebra.Unit
	Blocks           []algebra.Block
	Operations       []Operation
	InverseBaseUnits bool
	ScalarMultiply   bool
	Permutations     [][]string
	MaxIterations    int
	FinalBlocks      []algebra.Block
}

// Report describes one executed phase step.
type Report struct {
	Phase      string
	Step       string
	Candidates int
	Before     algebra.Counts
	After      algebra.Counts
	Duration   time.Duration
	Rounds     int
	Stable     bool
}

// UnitsAdded is the number of units the step registered.
func (r Report) UnitsAdded() int { return r.After.Units - r.Before.Units }

// OpsAdded is the number of operators the step synthesized.
func (r Report) OpsAdded() int { return max(r.After.Ops-r.Before.Ops, 0) }

// MathOpsAdded is the number of math ops the step derived.
func (r Report) MathOpsAdded() int { return r.After.MathOps - r.Before.MathOps }

// Result is the outcome of a run.
type Result struct {
	Registry *algebra.Registry
	Reports  []Report
	// Custom holds the names of units declared by configuration.
	Custom map[string]bool
	// Hosted is the number of operators handed to host units.
	Hosted int
}

// Pipeline runs plans.
type Pipeline struct {
	log     *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; the registry logs through it as well.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records phase statistics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New returns a pipeline with a no-op logger and no metrics.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{log: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes plan against a fresh registry. Any configuration error aborts
// the run; ctx is checked between steps.
func (p *Pipeline) Run(ctx context.Context, plan Plan) (*Result, error) {
	if plan.MaxIterations <= 0 {
		plan.MaxIterations = algebra.DefaultMaxIterations
	}
	reg := algebra.NewRegistry(algebra.WithLogger(p.log.Named("algebra")))
	res := &Result{Registry: reg, Custom: make(map[string]bool, len(plan.Custom))}

	steps := p.steps(plan, res)
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.phase, err)
		}
		if err := p.run(res, s); err != nil {
			if s.name != "" {
				return nil, fmt.Errorf("%s %s: %w", s.phase, s.name, err)
			}
			return nil, fmt.Errorf("%s: %w", s.phase, err)
		}
	}
	p.summarize(res)
	return res, nil
}

// step is one unit of work inside a phase. exec may fill in the block and
// closure details of the report.
type step struct {
	phase string
	name  string
	exec  func(r *algebra.Registry, rep *Report) error
}

func (p *Pipeline) steps(plan Plan, res *Result) []step {
	var out []step
	add := func(phase, name string, exec func(*algebra.Registry, *Report) error) {
		out = append(out, step{phase: phase, name: name, exec: exec})
	}

	add(PhaseSeed, "", func(r *algebra.Registry, _ *Report) error {
		if err := r.AddUnits(plan.SeedFilter.Apply(plan.Seed)); err != nil {
			return err
		}
		for _, u := range plan.Custom {
			if err := r.AddUnit(u); err != nil {
				return fmt.Errorf("custom unit: %w", err)
			}
			res.Custom[u.Name] = true
		}
		return nil
	})
	for i, b := range plan.Blocks {
		add(PhaseBlocks, blockName(b, i), blockExec(b))
	}
	if len(plan.Operations) > 0 {
		add(PhaseCustomOps, "", func(r *algebra.Registry, _ *Report) error {
			for _, o := range plan.Operations {
				if _, err := r.AddOperation(o.A, o.Op, o.B); err != nil {
					return fmt.Errorf("%s: %w", o, err)
				}
			}
			return nil
		})
	}
	if plan.InverseBaseUnits {
		add(PhaseInverse, "", func(r *algebra.Registry, _ *Report) error { return algebra.InverseBaseUnits(r) })
	}
	if plan.ScalarMultiply {
		add(PhaseScalar, "", func(r *algebra.Registry, _ *Report) error { return algebra.ScalarMultiply(r) })
	}
	for _, names := range plan.Permutations {
		add(PhasePermutations, fmt.Sprint(names), func(r *algebra.Registry, _ *Report) error {
			return algebra.Permute(r, names)
		})
	}
	add(PhaseClosure, "sqrt", func(r *algebra.Registry, rep *Report) error {
		rounds, stable, err := r.UntilStable(plan.MaxIterations, algebra.SqrtStep)
		rep.Rounds, rep.Stable = rounds, stable
		p.metrics.ObserveClosure(rounds, stable)
		if err == nil && !stable {
			p.log.Warn("closure stopped before a fixed point", zap.Int("max_iterations", plan.MaxIterations))
		}
		return err
	})
	for i, b := range plan.FinalBlocks {
		add(PhaseFinalBlocks, blockName(b, i), blockExec(b))
	}
	add(PhaseDistribute, "", func(r *algebra.Registry, _ *Report) error {
		res.Hosted = len(r.Ops())
		r.Distribute()
		return nil
	})
	return out
}

func blockName(b algebra.Block, i int) string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("#%d", i)
}

func blockExec(b algebra.Block) func(*algebra.Registry, *Report) error {
	return func(r *algebra.Registry, rep *Report) error {
		n, err := b.Generate(r)
		rep.Candidates = n
		return err
	}
}

func (p *Pipeline) run(res *Result, s step) error {
	reg := res.Registry
	rep := Report{Phase: s.phase, Step: s.name, Before: reg.Counts()}
	start := time.Now()
	err := s.exec(reg, &rep)
	rep.Duration = time.Since(start)
	rep.After = reg.Counts()
	if err != nil {
		return err
	}
	res.Reports = append(res.Reports, rep)

	label := s.phase
	if s.name != "" {
		label += "/" + s.name
		if s.phase == PhaseBlocks || s.phase == PhaseFinalBlocks {
			p.metrics.ObserveBlock(s.name, rep.Candidates)
		}
	}
	p.metrics.ObservePhase(label, rep.Duration, rep.UnitsAdded(), rep.OpsAdded(), rep.MathOpsAdded())

	fields := []zap.Field{
		zap.String("phase", s.phase),
		zap.Int("units", rep.After.Units),
		zap.Int("units_added", rep.UnitsAdded()),
		zap.Int("ops_added", rep.OpsAdded()),
		zap.Int("math_ops_added", rep.MathOpsAdded()),
		zap.Duration("took", rep.Duration),
	}
	if s.name != "" {
		fields = append(fields, zap.String("step", s.name))
	}
	if rep.Candidates > 0 {
		fields = append(fields, zap.Int("candidates", rep.Candidates))
	}
	if s.phase == PhaseClosure {
		fields = append(fields, zap.Int("rounds", rep.Rounds), zap.Bool("stable", rep.Stable))
	}
	p.log.Info("phase done", fields...)

	if ce := p.log.Check(zap.DebugLevel, "phase diff"); ce != nil && s.phase != PhaseDistribute {
		ce.Write(zap.String("phase", s.phase), zap.Strings("added", diff(reg, rep.Before)))
	}
	return nil
}

// diff lists what was added since c, one entry per unit, op and math op.
func diff(r *algebra.Registry, c algebra.Counts) []string {
	units, ops, math := r.Since(c)
	out := make([]string, 0, len(units)+len(ops)+len(math))
	for _, u := range units {
		out = append(out, fmt.Sprintf("unit %s %s (%s)", u.Name, u.Key(), u.Tag))
	}
	for _, o := range ops {
		out = append(out, "op "+o.String())
	}
	for _, m := range math {
		out = append(out, "math "+m.String())
	}
	return out
}

func (p *Pipeline) summarize(res *Result) {
	byTag := map[string]int{}
	for _, u := range res.Registry.Units() {
		for _, n := range u.Tag.Names() {
			byTag[n]++
		}
	}
	for tag, n := range byTag {
		p.metrics.SetUnits(tag, n)
	}
	p.metrics.SetHostedOps(res.Hosted)
	p.log.Info("generation done",
		zap.Int("units", res.Registry.Counts().Units),
		zap.Int("hosted_ops", res.Hosted),
		zap.Int("math_ops", res.Registry.Counts().MathOps),
	)
}
