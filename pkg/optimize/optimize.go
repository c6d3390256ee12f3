// Package optimize implements the coordinate-descent outer loop that picks
// a FillingConfig's tunable parameters: three progressively finer passes
// over (starting-point separation, repulsion, collision radius), each
// crossed with a seed range and evaluated in parallel, followed by a final
// widened-seed-range pass.
package optimize

import (
	"math"
	"runtime"
	"sync"

	"github.com/fieldprint/slicer/pkg/common"
	"github.com/fieldprint/slicer/pkg/config"
	"github.com/fieldprint/slicer/pkg/fill"
	"github.com/fieldprint/slicer/pkg/pattern"
	"github.com/fieldprint/slicer/pkg/quantify"
	"github.com/fieldprint/slicer/pkg/seed"
)

// PassSpec describes one coordinate-descent pass's step size and count for
// each of the three tuned parameters.
type PassSpec struct {
	DeltaSeparation int
	StepsSeparation int
	DeltaRepulsion  float64
	StepsRepulsion  int
	DeltaCollision  int
	StepsCollision  int
}

// Passes is the three-pass schedule from spec.md section 4.8.
var Passes = []PassSpec{
	{DeltaSeparation: 8, StepsSeparation: 8, DeltaRepulsion: 0.5, StepsRepulsion: 4, DeltaCollision: 4, StepsCollision: 4},
	{DeltaSeparation: 4, StepsSeparation: 4, DeltaRepulsion: 0.25, StepsRepulsion: 4, DeltaCollision: 2, StepsCollision: 4},
	{DeltaSeparation: 2, StepsSeparation: 2, DeltaRepulsion: 0.125, StepsRepulsion: 4, DeltaCollision: 1, StepsCollision: 4},
}

// Optimiser coordinate-descends over a FillingConfig template to minimise
// the Quantifier cost of the resulting fill.
type Optimiser struct {
	Desired   *pattern.DesiredPattern
	Base      config.FillingConfig
	SeedMin   uint32
	SeedMax   uint32
	Weights   quantify.Weights
	Exponents quantify.Exponents
	// Workers bounds concurrent fill evaluations; 0 means runtime.NumCPU().
	Workers int
}

// Result is the best candidate found by Run.
type Result struct {
	Config    config.FillingConfig
	Pattern   *pattern.FilledPattern
	Breakdown quantify.Breakdown
}

type evaluation struct {
	cfg   config.FillingConfig
	fp    *pattern.FilledPattern
	score quantify.Breakdown
}

func evaluate(desired *pattern.DesiredPattern, cfg config.FillingConfig, w quantify.Weights, e quantify.Exponents) evaluation {
	fp := pattern.NewFilledPattern(desired, cfg)
	fill.Run(fp, seed.New(cfg.Method))
	return evaluation{cfg: cfg, fp: fp, score: quantify.Evaluate(fp, w, e)}
}

// sweep evaluates every candidate config concurrently (bounded by workers)
// and reduces to the argmin via a single-writer scan over the collected
// scalars -- the only synchronisation point in the whole sweep.
func (o *Optimiser) sweep(candidates []config.FillingConfig) evaluation {
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	results := make([]evaluation, len(candidates))

	for i, cfg := range candidates {
		i, cfg := i, cfg
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = evaluate(o.Desired, cfg, o.Weights, o.Exponents)
		}()
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.score.Cost < best.score.Cost {
			best = r
		}
	}
	return best
}

func seedRange(min, max uint32) []uint32 {
	if max < min {
		min, max = max, min
	}
	seeds := make([]uint32, 0, max-min+1)
	for s := min; s <= max; s++ {
		seeds = append(seeds, s)
	}
	return seeds
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// sweepSeparation builds the candidate set for one separation pass: every
// offset in [-steps,steps]*delta around base, crossed with the seed range.
func sweepSeparation(base config.FillingConfig, delta, steps int, seeds []uint32) []config.FillingConfig {
	var out []config.FillingConfig
	for k := -steps; k <= steps; k++ {
		sep := clampNonNegative(base.StartingPointSeparation + k*delta)
		for _, s := range seeds {
			cfg := base
			cfg.StartingPointSeparation = sep
			cfg.Seed = s
			out = append(out, cfg)
		}
	}
	return out
}

func sweepRepulsion(base config.FillingConfig, delta float64, steps int, seeds []uint32) []config.FillingConfig {
	var out []config.FillingConfig
	for k := -steps; k <= steps; k++ {
		rep := base.Repulsion + float64(k)*delta
		for _, s := range seeds {
			cfg := base
			cfg.Repulsion = rep
			cfg.Seed = s
			out = append(out, cfg)
		}
	}
	return out
}

// sweepCollision builds the candidate set for a collision-radius pass,
// skipping any candidate whose resulting radius is <= 0.
func sweepCollision(base config.FillingConfig, delta, steps int, seeds []uint32) []config.FillingConfig {
	var out []config.FillingConfig
	for k := -steps; k <= steps; k++ {
		col := base.CollisionRadius + k*delta
		if col <= 0 {
			continue
		}
		for _, s := range seeds {
			cfg := base
			cfg.CollisionRadius = col
			cfg.Seed = s
			out = append(out, cfg)
		}
	}
	return out
}

// Run executes the three-pass coordinate descent followed by the final
// 10x-seed-range seed-only pass, returning the best fill found.
func (o *Optimiser) Run() Result {
	best := o.Base
	bestCost := math.Inf(1)
	var bestFP *pattern.FilledPattern
	var bestScore quantify.Breakdown

	seeds := seedRange(o.SeedMin, o.SeedMax)

	consider := func(cands []config.FillingConfig) {
		if len(cands) == 0 {
			return
		}
		e := o.sweep(cands)
		if e.score.Cost < bestCost {
			bestCost = e.score.Cost
			best = e.cfg
			bestFP = e.fp
			bestScore = e.score
		}
	}

	for passIdx, pass := range Passes {
		common.Verbose("optimiser pass %d/%d: best cost so far %.6f", passIdx+1, len(Passes), bestCost)
		consider(sweepSeparation(best, pass.DeltaSeparation, pass.StepsSeparation, seeds))
		consider(sweepRepulsion(best, pass.DeltaRepulsion, pass.StepsRepulsion, seeds))
		consider(sweepCollision(best, pass.DeltaCollision, pass.StepsCollision, seeds))
	}

	consider(sweepSeedOnly(best, widenedSeedRange(o.SeedMin, o.SeedMax)))

	return Result{Config: best, Pattern: bestFP, Breakdown: bestScore}
}

// widenedSeedRange returns the seed range for the final seed-only pass:
// the same lower bound, but an upper bound of 10x the original seed_max
// (not 10x the original span), per spec.md 4.8.
func widenedSeedRange(min, max uint32) []uint32 {
	return seedRange(min, 10*max)
}

// sweepSeedOnly builds the candidate set for a pass that only varies seed.
func sweepSeedOnly(base config.FillingConfig, seeds []uint32) []config.FillingConfig {
	out := make([]config.FillingConfig, 0, len(seeds))
	for _, s := range seeds {
		cfg := base
		cfg.Seed = s
		out = append(out, cfg)
	}
	return out
}
