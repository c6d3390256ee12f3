// Package quantify computes the scalar cost the optimiser minimises: a
// weighted combination of empty-cell fraction, mean overlap, directional
// mismatch and path-count density.
package quantify

import (
	"math"

	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/fieldprint/slicer/pkg/pattern"
	"gonum.org/v1/gonum/floats"
)

// Weights scales each metric after it has been raised to its Exponents power.
type Weights struct {
	Empty, Overlap, Director, PathCount float64
}

// Exponents is applied to each metric before weighting.
type Exponents struct {
	Empty, Overlap, Director, PathCount float64
}

// DefaultWeights matches the non-obsolete optimiser call site in the
// reference implementation.
func DefaultWeights() Weights {
	return Weights{Empty: 10, Overlap: 8, Director: 100, PathCount: 10}
}

// DefaultExponents matches the non-obsolete optimiser call site.
func DefaultExponents() Exponents {
	return Exponents{Empty: 1, Overlap: 1, Director: 2, PathCount: 2}
}

// Breakdown reports every named metric alongside the combined cost, so
// callers can print a disagreement report without recomputing anything.
type Breakdown struct {
	Empty            float64
	Overlap          float64
	DirectorMismatch float64
	PathDensity      float64
	Cost             float64
}

// Evaluate scores a finished (or partial) fill against its desired pattern.
func Evaluate(fp *pattern.FilledPattern, w Weights, e Exponents) Breakdown {
	dp := fp.Desired

	var interiorCount, emptyCount float64
	var totalFilled float64
	var alignmentSum float64
	var alignmentCount float64

	for i := 0; i < dp.W; i++ {
		for j := 0; j < dp.H; j++ {
			if !dp.Shape(i, j) {
				continue
			}
			interiorCount++
			p := geometry.Pt{I: i, J: j}
			count := fp.CountAt(p)
			totalFilled += float64(count)
			if count == 0 {
				emptyCount++
				continue
			}

			k := i*dp.H + j
			fx, fy := fp.RealisedX[k], fp.RealisedY[k]
			dx, dy := dp.FieldAt(i, j)
			fNorm := math.Hypot(fx, fy)
			dNorm := math.Hypot(dx, dy)
			if fNorm == 0 || dNorm == 0 {
				continue
			}
			cos := (fx*dx + fy*dy) / (fNorm * dNorm)
			alignmentSum += math.Abs(cos)
			alignmentCount++
		}
	}

	var empty, overlap, directorMismatch float64
	if interiorCount > 0 {
		empty = emptyCount / interiorCount
		overlap = totalFilled/interiorCount - 1 + empty
	}
	if alignmentCount > 0 {
		directorMismatch = 1 - alignmentSum/alignmentCount
	} else {
		directorMismatch = 1
	}

	maxDim := dp.W
	if dp.H > maxDim {
		maxDim = dp.H
	}
	pathDensity := 0.0
	if maxDim > 0 {
		pathDensity = float64(len(fp.Paths)) / float64(maxDim)
	}

	metrics := []float64{empty, overlap, directorMismatch, pathDensity}
	weights := []float64{w.Empty, w.Overlap, w.Director, w.PathCount}
	exps := []float64{e.Empty, e.Overlap, e.Director, e.PathCount}
	terms := make([]float64, len(metrics))
	for idx := range metrics {
		terms[idx] = weights[idx] * math.Pow(metrics[idx], exps[idx])
	}

	return Breakdown{
		Empty:            empty,
		Overlap:          overlap,
		DirectorMismatch: directorMismatch,
		PathDensity:      pathDensity,
		Cost:             floats.Sum(terms),
	}
}
