package pattern

import (
	"fmt"
	"math"

	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/golang/geo/r2"
)

// DesiredPattern is the immutable shape mask plus preferred direction field
// the filler is asked to cover. Both shape and field are defined over the
// same W x H lattice; field components are only meaningful where shape is
// interior.
type DesiredPattern struct {
	W, H int

	shape  []bool
	fieldX []float64
	fieldY []float64

	// Perimeter is the nearest-neighbour-chained tour over interior cells
	// with at least one non-interior 8-neighbour, used by the perimeter
	// seeding methods.
	Perimeter []geometry.Pt
}

// NewDesiredPattern validates dimensions and builds the perimeter tour once.
func NewDesiredPattern(w, h int, shape []bool, fieldX, fieldY []float64) (*DesiredPattern, error) {
	n := w * h
	if len(shape) != n {
		return nil, fmt.Errorf("shape has %d cells, want %d (%dx%d)", len(shape), n, w, h)
	}
	if len(fieldX) != n || len(fieldY) != n {
		return nil, fmt.Errorf("field dimensions (%d,%d) do not match shape grid %dx%d", len(fieldX), len(fieldY), w, h)
	}
	dp := &DesiredPattern{W: w, H: h, shape: shape, fieldX: fieldX, fieldY: fieldY}
	dp.Perimeter = dp.sortedPerimeter()
	return dp, nil
}

func (d *DesiredPattern) idx(i, j int) int {
	return i*d.H + j
}

func (d *DesiredPattern) inBounds(i, j int) bool {
	return i >= 0 && i < d.W && j >= 0 && j < d.H
}

// Shape reports whether cell (i,j) is interior. Out-of-bounds is treated as
// non-interior.
func (d *DesiredPattern) Shape(i, j int) bool {
	if !d.inBounds(i, j) {
		return false
	}
	return d.shape[d.idx(i, j)]
}

// FieldAt returns the raw (unnormalised) preferred direction at cell (i,j).
func (d *DesiredPattern) FieldAt(i, j int) (float64, float64) {
	if !d.inBounds(i, j) {
		return 0, 0
	}
	k := d.idx(i, j)
	return d.fieldX[k], d.fieldY[k]
}

// Contains reports whether the cell floor(pos) is interior.
func (d *DesiredPattern) Contains(pos r2.Vector) bool {
	return d.Shape(int(math.Floor(pos.X)), int(math.Floor(pos.Y)))
}

// PreferredDirInt returns (round(L*fieldX[p]), round(L*fieldY[p])), the
// integer-scaled direction used to pick the first two-sided step.
func (d *DesiredPattern) PreferredDirInt(p geometry.Pt, length float64) geometry.Pt {
	fx, fy := d.FieldAt(p.I, p.J)
	return geometry.Pt{
		I: int(math.Round(length * fx)),
		J: int(math.Round(length * fy)),
	}
}

// PreferredDirReal bilinearly interpolates the field at a real-valued
// position and rescales the result to length L. If the interpolated vector
// is (numerically) zero -- a field singularity -- it falls back to the raw
// field sample at (floor(x)-1, floor(y)).
func (d *DesiredPattern) PreferredDirReal(pos r2.Vector, length float64) r2.Vector {
	x0 := math.Floor(pos.X)
	y0 := math.Floor(pos.Y)
	i0, j0 := int(x0), int(y0)
	tx := pos.X - x0
	ty := pos.Y - y0

	x00, y00 := d.FieldAt(i0, j0)
	x10, y10 := d.FieldAt(i0+1, j0)
	x01, y01 := d.FieldAt(i0, j0+1)
	x11, y11 := d.FieldAt(i0+1, j0+1)

	fx := bilerp(x00, x10, x01, x11, tx, ty)
	fy := bilerp(y00, y10, y01, y11, tx, ty)
	v := r2.Vector{X: fx, Y: fy}

	if v.Norm() == 0 {
		fbx, fby := d.FieldAt(i0-1, j0)
		v = r2.Vector{X: fbx, Y: fby}
		if v.Norm() == 0 {
			return r2.Vector{}
		}
	}
	return v.Normalize().Mul(length)
}

func bilerp(v00, v10, v01, v11, tx, ty float64) float64 {
	top := v00*(1-tx) + v10*tx
	bottom := v01*(1-tx) + v11*tx
	return top*(1-ty) + bottom*ty
}

// sortedPerimeter finds every interior edge cell (interior with at least
// one non-interior 8-neighbour) and orders them by repeatedly chaining to
// the nearest unvisited edge cell, starting from the first one found.
func (d *DesiredPattern) sortedPerimeter() []geometry.Pt {
	var edge []geometry.Pt
	for i := 0; i < d.W; i++ {
		for j := 0; j < d.H; j++ {
			if !d.Shape(i, j) {
				continue
			}
			if d.isEdgeCell(i, j) {
				edge = append(edge, geometry.Pt{I: i, J: j})
			}
		}
	}
	if len(edge) == 0 {
		return nil
	}

	ordered := make([]geometry.Pt, 0, len(edge))
	used := make([]bool, len(edge))
	ordered = append(ordered, edge[0])
	used[0] = true

	for len(ordered) < len(edge) {
		cur := ordered[len(ordered)-1]
		best := -1
		bestDist := math.Inf(1)
		for k, p := range edge {
			if used[k] {
				continue
			}
			dist := math.Hypot(float64(p.I-cur.I), float64(p.J-cur.J))
			if dist < bestDist {
				bestDist = dist
				best = k
			}
		}
		used[best] = true
		ordered = append(ordered, edge[best])
	}
	return ordered
}

var eightNeighbours = [8]geometry.Pt{
	{I: -1, J: -1}, {I: -1, J: 0}, {I: -1, J: 1},
	{I: 0, J: -1}, {I: 0, J: 1},
	{I: 1, J: -1}, {I: 1, J: 0}, {I: 1, J: 1},
}

func (d *DesiredPattern) isEdgeCell(i, j int) bool {
	for _, n := range eightNeighbours {
		if !d.Shape(i+n.I, j+n.J) {
			return true
		}
	}
	return false
}
