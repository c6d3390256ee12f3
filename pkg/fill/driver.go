// Package fill implements the filler driver: repeatedly pull a seed from
// the starting-point policy and grow a path from it until the shape is
// saturated.
package fill

import (
	"github.com/fieldprint/slicer/pkg/grower"
	"github.com/fieldprint/slicer/pkg/pattern"
	"github.com/fieldprint/slicer/pkg/seed"
)

// Run drains policy against fp, appending a two-sided path for every seed
// returned until the policy signals Sentinel.
func Run(fp *pattern.FilledPattern, policy *seed.Policy) {
	g := grower.New(fp)
	for {
		s := policy.NextSeed(fp)
		if s == seed.Sentinel {
			return
		}
		g.TwoSidedGrow(s)
	}
}
