// Package geometry provides the lattice stencils and rasterisation routines
// shared by the pattern, grower and ordering packages: discs and rings of
// grid offsets around a radius, and the rectangle rasterisation between two
// points that a nozzle of given radius sweeps over.
package geometry

import (
	"math"
	"sync"
)

// Pt is an integer lattice index (i, j).
type Pt struct {
	I, J int
}

// Add returns p+q.
func (p Pt) Add(q Pt) Pt {
	return Pt{p.I + q.I, p.J + q.J}
}

// Sub returns p-q.
func (p Pt) Sub(q Pt) Pt {
	return Pt{p.I - q.I, p.J - q.J}
}

var (
	discCacheMu sync.Mutex
	discCache   = map[int][]Pt{}

	ringCacheMu sync.Mutex
	ringCache   = map[int][]Pt{}
)

// DiscOffsets returns every lattice offset (di,dj) with di²+dj² <= r².
// Results are cached per radius since they are pure functions of r and are
// shared, read-only, across optimiser workers.
func DiscOffsets(r int) []Pt {
	if r < 0 {
		return nil
	}
	discCacheMu.Lock()
	defer discCacheMu.Unlock()
	if cached, ok := discCache[r]; ok {
		return cached
	}
	offsets := make([]Pt, 0, (2*r+1)*(2*r+1))
	r2 := r * r
	for di := -r; di <= r; di++ {
		for dj := -r; dj <= r; dj++ {
			if di*di+dj*dj <= r2 {
				offsets = append(offsets, Pt{di, dj})
			}
		}
	}
	discCache[r] = offsets
	return offsets
}

// RingOffsets returns every lattice offset (di,dj) with ceil(sqrt(di²+dj²)) == r,
// the collision halo used by is_collision_free.
func RingOffsets(r int) []Pt {
	if r < 0 {
		return nil
	}
	ringCacheMu.Lock()
	defer ringCacheMu.Unlock()
	if cached, ok := ringCache[r]; ok {
		return cached
	}
	offsets := make([]Pt, 0, 8*r)
	for di := -r; di <= r; di++ {
		for dj := -r; dj <= r; dj++ {
			dist := math.Sqrt(float64(di*di + dj*dj))
			if int(math.Ceil(dist)) == r {
				offsets = append(offsets, Pt{di, dj})
			}
		}
	}
	ringCache[r] = offsets
	return offsets
}

// SegmentFill rasterises the lattice cells inside the rectangle of
// half-width r+1 centred on segment p-q: the nozzle footprint swept along a
// single committed step. A degenerate p==q returns disc(r) translated by p.
func SegmentFill(p, q Pt, r int) []Pt {
	if p == q {
		disc := DiscOffsets(r)
		out := make([]Pt, len(disc))
		for i, d := range disc {
			out[i] = p.Add(d)
		}
		return out
	}

	px, py := float64(p.I), float64(p.J)
	qx, qy := float64(q.I), float64(q.J)
	dx, dy := qx-px, qy-py
	length := math.Hypot(dx, dy)
	ux, uy := dx/length, dy/length
	// rot90 of the unit direction, scaled to half-width r+1.
	hw := float64(r + 1)
	rx, ry := -uy*hw, ux*hw

	corners := [4][2]float64{
		{px + rx, py + ry},
		{px - rx, py - ry},
		{qx + rx, qy + ry},
		{qx - rx, qy - ry},
	}

	minX, maxX := corners[0][0], corners[0][0]
	minY, maxY := corners[0][1], corners[0][1]
	for _, c := range corners[1:] {
		if c[0] < minX {
			minX = c[0]
		}
		if c[0] > maxX {
			maxX = c[0]
		}
		if c[1] < minY {
			minY = c[1]
		}
		if c[1] > maxY {
			maxY = c[1]
		}
	}

	// insideRect: four "strictly left of edge" half-plane tests, walking
	// the rectangle's actual perimeter (corners[0]->corners[1]->corners[3]->
	// corners[2]->corners[0]), oriented so an interior point satisfies all four.
	insideRect := func(x, y float64) bool {
		edges := [4][2][2]float64{
			{corners[0], corners[1]},
			{corners[1], corners[3]},
			{corners[3], corners[2]},
			{corners[2], corners[0]},
		}
		for _, e := range edges {
			ax, ay := e[0][0], e[0][1]
			bx, by := e[1][0], e[1][1]
			cross := (bx-ax)*(y-ay) - (by-ay)*(x-ax)
			if cross < 0 {
				return false
			}
		}
		return true
	}

	var out []Pt
	iMin, iMax := int(math.Floor(minX)), int(math.Ceil(maxX))
	for i := iMin; i <= iMax; i++ {
		jTop := int(math.Ceil(maxY))
		jBot := int(math.Floor(minY))
		for j := jTop; j >= jBot; j-- {
			if insideRect(float64(i), float64(j)) {
				out = append(out, Pt{i, j})
			}
		}
	}
	return out
}
