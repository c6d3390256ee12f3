// Package grower implements the two-sided greedy path-growing algorithm:
// from a seed point and a preferred direction, extend a path by repeatedly
// probing candidate steps, applying repulsion from already-filled cells,
// and committing whenever the forward neighbourhood is collision-free.
package grower

import (
	"math"

	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/fieldprint/slicer/pkg/pattern"
	"github.com/golang/geo/r2"
)

// Grower extends paths within a single FilledPattern.
type Grower struct {
	Pattern *pattern.FilledPattern
}

// New returns a Grower bound to fp.
func New(fp *pattern.FilledPattern) *Grower {
	return &Grower{Pattern: fp}
}

func roundPt(v r2.Vector) geometry.Pt {
	return geometry.Pt{I: int(math.Round(v.X)), J: int(math.Round(v.Y))}
}

// tryStep attempts a single probe of length L from pos along the preferred
// direction (continuing prevStep's sense), applying repulsion and the
// collision test. On success it fills the swept segment, appends the new
// vertex to path, advances pos and prevStep, and returns true.
func (g *Grower) tryStep(path *pattern.Path, pos *r2.Vector, prevStep *r2.Vector, length float64) bool {
	fp := g.Pattern
	base := fp.Desired.PreferredDirReal(*pos, length)
	if base.Dot(*prevStep) < 0 {
		base = base.Mul(-1)
	}

	candidate := pos.Add(base)
	q := roundPt(candidate)
	repulsion := fp.RepulsionVector(q, fp.Config.Repulsion)
	candidate = candidate.Sub(repulsion)
	q = roundPt(candidate)

	prevVertex := roundPt(*pos)
	if q == prevVertex {
		// A zero preferred direction (field singularity, or L shrunk to 0)
		// produced no displacement; this is not progress, so don't commit a
		// duplicate vertex or double-count its coverage.
		return false
	}

	if !fp.IsCollisionFree(q, fp.Config.CollisionRadius) {
		return false
	}

	step := r2.Vector{X: float64(q.I - prevVertex.I), Y: float64(q.J - prevVertex.J)}
	cells := geometry.SegmentFill(prevVertex, q, fp.Config.PrintRadius)
	fp.FillCells(cells, step)

	path.Points = append(path.Points, q)
	*pos = candidate
	*prevStep = base
	return true
}

// growFrom starts a one-vertex path at seed and extends it in the direction
// of seedStep using a shrinking step-length schedule: at each length L from
// step_length down to print_radius, tryStep is repeated until it fails,
// then L is decremented. If no step ever succeeds, disc(print_radius)+seed
// is filled as a lone blob so the seed is never re-selected.
func (g *Grower) growFrom(seed geometry.Pt, seedStep r2.Vector) pattern.Path {
	fp := g.Pattern
	path := pattern.Path{Points: []geometry.Pt{seed}}
	pos := r2.Vector{X: float64(seed.I), Y: float64(seed.J)}
	prevStep := seedStep
	succeeded := false

	for length := fp.Config.StepLength; length >= fp.Config.PrintRadius; length-- {
		for g.tryStep(&path, &pos, &prevStep, float64(length)) {
			succeeded = true
		}
	}

	if !succeeded {
		fp.FillDiscAt(seed, seedStep)
	}
	return path
}

// TwoSidedGrow assembles a full path through seed: a backward extension
// (reversed) followed by a forward extension sharing the seed vertex. After
// assembly, a half-disc end cap is filled around each endpoint, oriented
// away from the path's second-to-last vertex, for every path of length >= 2
// (the driver always applies the cap, per spec.md's Open Question
// resolution).
func (g *Grower) TwoSidedGrow(seed geometry.Pt) pattern.Path {
	fp := g.Pattern
	v0 := fp.Desired.PreferredDirInt(seed, float64(fp.Config.StepLength))
	v0f := r2.Vector{X: float64(v0.I), Y: float64(v0.J)}

	forward := g.growFrom(seed, v0f)
	backward := g.growFrom(seed, v0f.Mul(-1))

	rev := backward.Reversed()
	points := make([]geometry.Pt, 0, len(rev.Points)+len(forward.Points)-1)
	points = append(points, rev.Points...)
	points = append(points, forward.Points[1:]...)
	path := pattern.Path{Points: points}

	if len(path.Points) >= 2 {
		g.capEnd(path.Points[0], path.Points[1])
		last := len(path.Points) - 1
		g.capEnd(path.Points[last], path.Points[last-1])
	}

	fp.AddPath(path)
	return path
}

// capEnd fills the half of disc(printRadius) around end that lies away from
// prev, so the line cap does not intrude on neighbouring paths.
func (g *Grower) capEnd(end, prev geometry.Pt) {
	away := r2.Vector{X: float64(end.I - prev.I), Y: float64(end.J - prev.J)}
	if away.Norm() == 0 {
		return
	}
	disc := geometry.DiscOffsets(g.Pattern.Config.PrintRadius)
	var cells []geometry.Pt
	for _, d := range disc {
		dv := r2.Vector{X: float64(d.I), Y: float64(d.J)}
		if dv.Dot(away) >= 0 {
			cells = append(cells, end.Add(d))
		}
	}
	g.Pattern.FillCells(cells, away)
}
