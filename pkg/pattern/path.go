package pattern

import "github.com/fieldprint/slicer/pkg/geometry"

// Path is an ordered sequence of lattice cells a single nozzle stroke
// visits, length >= 1.
type Path struct {
	Points []geometry.Pt
}

// Start returns the first vertex.
func (p Path) Start() geometry.Pt {
	return p.Points[0]
}

// End returns the last vertex.
func (p Path) End() geometry.Pt {
	return p.Points[len(p.Points)-1]
}

// Reversed returns a copy of p with its vertex order reversed.
func (p Path) Reversed() Path {
	out := make([]geometry.Pt, len(p.Points))
	for i, v := range p.Points {
		out[len(p.Points)-1-i] = v
	}
	return Path{Points: out}
}
