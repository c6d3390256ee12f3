// Package seed implements the starting-point policy: repeatedly choosing
// the next seed cell a path should grow from, with a bounded-probe rescan
// fallback when the candidate list has gone stale.
package seed

import (
	"github.com/fieldprint/slicer/pkg/config"
	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/fieldprint/slicer/pkg/pattern"
)

// MaxProbe bounds the number of consecutive misses (a candidate that looked
// fillable but no longer is) tolerated before the policy calls
// RefineFillable and, failing progress there, gives up.
const MaxProbe = 100

// Sentinel is returned when no further seed can be found.
var Sentinel = geometry.Pt{I: -1, J: -1}

// Policy drives seed selection for one of the four FillingConfig methods.
type Policy struct {
	method      config.Method
	consecIdx   int
	initialized bool
}

// New returns a policy for the given method.
func New(method config.Method) *Policy {
	return &Policy{method: method}
}

func (p *Policy) candidateList(fp *pattern.FilledPattern) []geometry.Pt {
	switch p.method {
	case config.ConsecutivePerimeter, config.RandomPerimeter:
		return fp.Desired.Perimeter
	default:
		return fp.Fillable()
	}
}

func (p *Policy) pick(fp *pattern.FilledPattern) (geometry.Pt, bool) {
	list := p.candidateList(fp)
	if len(list) == 0 {
		return geometry.Pt{}, false
	}
	switch p.method {
	case config.ConsecutivePerimeter, config.ConsecutiveRadial:
		idx := p.consecIdx % len(list)
		p.consecIdx += fp.Config.StartingPointSeparation
		return list[idx], true
	default:
		idx := fp.Rand().Intn(len(list))
		return list[idx], true
	}
}

// NextSeed returns the next seed to grow a path from, or Sentinel once the
// shape is saturated. Radial methods draw from fp's fillable set (computed
// lazily on first use); perimeter methods walk the desired pattern's
// perimeter tour, relying on the collision check below to skip cells that
// are no longer viable.
func (p *Policy) NextSeed(fp *pattern.FilledPattern) geometry.Pt {
	if !p.initialized {
		fp.SearchAllFillable()
		p.initialized = true
	}

	for {
		misses := 0
		for misses < MaxProbe {
			cand, ok := p.pick(fp)
			if !ok {
				return Sentinel
			}
			if fp.IsCollisionFree(cand, fp.Config.CollisionRadius) {
				return cand
			}
			misses++
		}

		before := len(fp.Fillable())
		fp.RefineFillable()
		if len(fp.Fillable()) == before {
			return Sentinel
		}
	}
}
