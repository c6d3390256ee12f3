// Package order implements the greedy nearest-neighbour path orderer: given
// the set of finished paths, pick a visiting order (with per-path
// orientation) that minimises idle travel before emission.
package order

import (
	"math"

	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/fieldprint/slicer/pkg/pattern"
	"github.com/katalvlaran/lvlath/tsp"
)

// Ordered is a single path in the emission order, already reversed in
// place if its End endpoint was the closer one.
type Ordered struct {
	Path     pattern.Path
	Reversed bool
}

// Order returns paths in the visiting order with the smallest idle travel
// found across several trial starting corners.
func Order(paths []pattern.Path) ([]Ordered, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	minI, minJ, maxI, maxJ := boundingBox(paths)
	var best []Ordered
	var bestPerm []int
	bestIdle := math.Inf(1)

	for _, start := range trialStarts(minI, minJ, maxI, maxJ) {
		order, perm, idle := greedyTour(paths, start)
		if idle < bestIdle {
			bestIdle = idle
			best = order
			bestPerm = perm
		}
	}

	if err := tsp.ValidatePermutation(bestPerm, len(paths)); err != nil {
		return nil, err
	}
	return best, nil
}

func boundingBox(paths []pattern.Path) (minI, minJ, maxI, maxJ int) {
	minI, minJ = math.MaxInt32, math.MaxInt32
	maxI, maxJ = math.MinInt32, math.MinInt32
	for _, p := range paths {
		for _, v := range p.Points {
			if v.I < minI {
				minI = v.I
			}
			if v.I > maxI {
				maxI = v.I
			}
			if v.J < minJ {
				minJ = v.J
			}
			if v.J > maxJ {
				maxJ = v.J
			}
		}
	}
	return
}

// trialStarts returns the four bounding-rectangle corners plus the
// four edge midpoints as evenly-spaced perimeter points.
func trialStarts(minI, minJ, maxI, maxJ int) []geometry.Pt {
	midI := (minI + maxI) / 2
	midJ := (minJ + maxJ) / 2
	return []geometry.Pt{
		{I: minI, J: minJ}, {I: minI, J: maxJ}, {I: maxI, J: minJ}, {I: maxI, J: maxJ},
		{I: midI, J: minJ}, {I: midI, J: maxJ}, {I: minI, J: midJ}, {I: maxI, J: midJ},
	}
}

func dist(a, b geometry.Pt) float64 {
	return math.Hypot(float64(a.I-b.I), float64(a.J-b.J))
}

// greedyTour repeatedly picks the unvisited (path, orientation) whose start
// is closest to the current pen position, first in iteration order on
// ties, appends it (reversing if its End was the closer endpoint), and
// moves the pen to the chosen orientation's end.
func greedyTour(paths []pattern.Path, start geometry.Pt) ([]Ordered, []int, float64) {
	n := len(paths)
	used := make([]bool, n)
	order := make([]Ordered, 0, n)
	perm := make([]int, 0, n)
	pen := start
	idle := 0.0

	for visited := 0; visited < n; visited++ {
		bestIdx := -1
		bestReversed := false
		bestDist := math.Inf(1)

		for idx, p := range paths {
			if used[idx] {
				continue
			}
			if d := dist(pen, p.Start()); d < bestDist {
				bestDist = d
				bestIdx = idx
				bestReversed = false
			}
			if d := dist(pen, p.End()); d < bestDist {
				bestDist = d
				bestIdx = idx
				bestReversed = true
			}
		}

		used[bestIdx] = true
		chosen := paths[bestIdx]
		if bestReversed {
			chosen = chosen.Reversed()
		}
		idle += bestDist
		order = append(order, Ordered{Path: chosen, Reversed: bestReversed})
		perm = append(perm, bestIdx)
		pen = chosen.End()
	}

	return order, perm, idle
}
