package pattern

import (
	"math/rand"

	"github.com/fieldprint/slicer/pkg/config"
	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/golang/geo/r2"
)

// FilledPattern is the mutable state of a single in-progress fill: a
// coverage-count grid, a realised-direction grid, and the growing list of
// paths that produced them. It owns its PRNG so a seeded config reproduces
// byte-identical results regardless of how many fills run concurrently
// (spec.md's determinism-under-parallel-reduction requirement).
type FilledPattern struct {
	Desired *DesiredPattern
	Config  config.FillingConfig

	FilledCount []uint32
	RealisedX   []float64
	RealisedY   []float64
	Paths       []Path

	fillable []geometry.Pt

	rng *rand.Rand
}

// NewFilledPattern allocates a fresh, empty fill for the given desired
// pattern and config. Each call owns an independent PRNG stream seeded from
// config.Seed, so parallel optimiser workers never share RNG state.
func NewFilledPattern(desired *DesiredPattern, cfg config.FillingConfig) *FilledPattern {
	n := desired.W * desired.H
	return &FilledPattern{
		Desired:     desired,
		Config:      cfg,
		FilledCount: make([]uint32, n),
		RealisedX:   make([]float64, n),
		RealisedY:   make([]float64, n),
		rng:         rand.New(rand.NewSource(int64(cfg.Seed))),
	}
}

// Rand exposes the owned PRNG to the starting-point policy, which must draw
// from the same deterministic stream to keep a config's fill reproducible.
func (f *FilledPattern) Rand() *rand.Rand {
	return f.rng
}

func (f *FilledPattern) idx(p geometry.Pt) int {
	return p.I*f.Desired.H + p.J
}

func (f *FilledPattern) inBounds(p geometry.Pt) bool {
	return p.I >= 0 && p.I < f.Desired.W && p.J >= 0 && p.J < f.Desired.H
}

// CountAt returns the coverage count at p, or 0 out of bounds.
func (f *FilledPattern) CountAt(p geometry.Pt) uint32 {
	if !f.inBounds(p) {
		return 0
	}
	return f.FilledCount[f.idx(p)]
}

// IsCollisionFree reports whether p is interior and unfilled, and every
// in-bounds cell of ring(collisionRadius) translated by p is still unfilled.
func (f *FilledPattern) IsCollisionFree(p geometry.Pt, collisionRadius int) bool {
	if !f.Desired.Shape(p.I, p.J) {
		return false
	}
	if f.FilledCount[f.idx(p)] != 0 {
		return false
	}
	for _, d := range geometry.RingOffsets(collisionRadius) {
		q := p.Add(d)
		if !f.inBounds(q) {
			continue
		}
		if f.FilledCount[f.idx(q)] != 0 {
			return false
		}
	}
	return true
}

// RepulsionVector returns -rho * (sum of offsets to still-empty cells in
// disc(printRadius) around p) / (count of those cells). For rho > 0 the
// result points away from the empty cells; the caller subtracts it from the
// next candidate position, so the net effect moves the probe toward emptier
// neighbourhoods, away from already-filled cells.
func (f *FilledPattern) RepulsionVector(p geometry.Pt, rho float64) r2.Vector {
	var sum r2.Vector
	count := 0
	for _, d := range geometry.DiscOffsets(f.Config.PrintRadius) {
		q := p.Add(d)
		if !f.inBounds(q) {
			continue
		}
		if f.FilledCount[f.idx(q)] != 0 {
			continue
		}
		sum.X += float64(d.I)
		sum.Y += float64(d.J)
		count++
	}
	if count == 0 {
		return r2.Vector{}
	}
	return sum.Mul(-rho / float64(count))
}

// canonicalStep returns the unit vector of step, sign-flipped so the first
// non-zero component is positive. Antiparallel steps accumulate
// constructively when compared against a headless director field.
func canonicalStep(step r2.Vector) r2.Vector {
	norm := step.Norm()
	if norm == 0 {
		return r2.Vector{}
	}
	unit := step.Mul(1 / norm)
	if unit.X > 0 || (unit.X == 0 && unit.Y > 0) {
		return unit
	}
	return unit.Mul(-1)
}

// FillCells increments filled_count and accumulates the canonicalised step
// direction on every in-bounds cell of cells.
func (f *FilledPattern) FillCells(cells []geometry.Pt, step r2.Vector) {
	unit := canonicalStep(step)
	for _, c := range cells {
		if !f.inBounds(c) {
			continue
		}
		k := f.idx(c)
		f.FilledCount[k]++
		f.RealisedX[k] += unit.X
		f.RealisedY[k] += unit.Y
	}
}

// FillDiscAt fills every in-bounds cell of disc(printRadius) translated by p.
func (f *FilledPattern) FillDiscAt(p geometry.Pt, step r2.Vector) {
	disc := geometry.DiscOffsets(f.Config.PrintRadius)
	cells := make([]geometry.Pt, len(disc))
	for i, d := range disc {
		cells[i] = p.Add(d)
	}
	f.FillCells(cells, step)
}

// AddPath appends a completed path to the sequence.
func (f *FilledPattern) AddPath(p Path) {
	f.Paths = append(f.Paths, p)
}

// SearchAllFillable recomputes the fillable set by scanning the whole grid,
// retaining every interior cell that is currently collision-free.
func (f *FilledPattern) SearchAllFillable() {
	f.fillable = f.fillable[:0]
	for i := 0; i < f.Desired.W; i++ {
		for j := 0; j < f.Desired.H; j++ {
			p := geometry.Pt{I: i, J: j}
			if f.IsCollisionFree(p, f.Config.CollisionRadius) {
				f.fillable = append(f.fillable, p)
			}
		}
	}
}

// RefineFillable recomputes the fillable set by rescanning only the
// previous candidate list, dropping cells that are no longer collision-free.
func (f *FilledPattern) RefineFillable() {
	kept := f.fillable[:0]
	for _, p := range f.fillable {
		if f.IsCollisionFree(p, f.Config.CollisionRadius) {
			kept = append(kept, p)
		}
	}
	f.fillable = kept
}

// Fillable returns the current candidate seed set.
func (f *FilledPattern) Fillable() []geometry.Pt {
	return f.fillable
}
