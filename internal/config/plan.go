package config

import (
	"fmt"

	"github.com/kamusis/unitgen/internal/algebra"
	"github.com/kamusis/unitgen/internal/catalog"
	"github.com/kamusis/unitgen/internal/pipeline"
)

// Plan converts the configuration into a pipeline plan. It fails on the
// first section that does not convert; Validate reports all of them.
func (c *Config) Plan() (pipeline.Plan, error) {
	var plan pipeline.Plan

	seed, err := catalog.Units(c.Seed.Tables...)
	if err != nil {
		return plan, fmt.Errorf("seed.tables: %w", err)
	}
	filter, err := c.Seed.Filter()
	if err != nil {
		return plan, fmt.Errorf("seed: %w", err)
	}
	plan.Seed, plan.SeedFilter = seed, filter

	for i, cu := range c.CustomUnits {
		u, err := cu.Unit()
		if err != nil {
			return plan, fmt.Errorf("custom_units[%d]: %w", i, err)
		}
		plan.Custom = append(plan.Custom, u)
	}
	if plan.Blocks, err = engineBlocks("blocks", c.Blocks); err != nil {
		return plan, err
	}
	if plan.FinalBlocks, err = engineBlocks("final_blocks", c.FinalBlocks); err != nil {
		return plan, err
	}
	for i, o := range c.CustomOperations {
		op, err := o.Operator()
		if err != nil {
			return plan, fmt.Errorf("custom_operations[%d]: %w", i, err)
		}
		plan.Operations = append(plan.Operations, pipeline.Operation{A: o.A, Op: op, B: o.B})
	}
	plan.InverseBaseUnits = c.InverseBaseUnits
	plan.ScalarMultiply = c.ScalarMultiply
	plan.Permutations = c.Permutations
	plan.MaxIterations = c.Closure.MaxIterations
	return plan, nil
}

func engineBlocks(section string, blocks []Block) ([]algebra.Block, error) {
	out := make([]algebra.Block, 0, len(blocks))
	for i, b := range blocks {
		eb, err := b.Engine()
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		out = append(out, eb)
	}
	return out, nil
}
