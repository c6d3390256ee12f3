package pattern

import (
	"testing"

	"github.com/fieldprint/slicer/pkg/config"
	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/golang/geo/r2"
)

func testConfig() config.FillingConfig {
	return config.FillingConfig{
		Method:                  config.ConsecutiveRadial,
		CollisionRadius:         1,
		StepLength:              2,
		PrintRadius:             0,
		Repulsion:               0.5,
		StartingPointSeparation: 1,
		Seed:                    7,
	}
}

func TestContainmentInvariant(t *testing.T) {
	dp := uniformSquare(5)
	fp := NewFilledPattern(dp, testConfig())
	fp.FillDiscAt(geometry.Pt{I: 2, J: 2}, r2.Vector{X: 1, Y: 0})
	for i := 0; i < dp.W; i++ {
		for j := 0; j < dp.H; j++ {
			p := geometry.Pt{I: i, J: j}
			if fp.CountAt(p) > 0 && !dp.Shape(i, j) {
				t.Fatalf("filled cell (%d,%d) outside shape", i, j)
			}
		}
	}
}

func TestFillCellsMonotonic(t *testing.T) {
	dp := uniformSquare(5)
	fp := NewFilledPattern(dp, testConfig())
	p := geometry.Pt{I: 2, J: 2}
	before := fp.CountAt(p)
	fp.FillCells([]geometry.Pt{p}, r2.Vector{X: 1, Y: 0})
	after := fp.CountAt(p)
	if after != before+1 {
		t.Fatalf("FilledCount not monotonic: before=%d after=%d", before, after)
	}
}

func TestCanonicalisationAntiparallel(t *testing.T) {
	dp := uniformSquare(5)
	fpA := NewFilledPattern(dp, testConfig())
	fpB := NewFilledPattern(dp, testConfig())
	p := geometry.Pt{I: 2, J: 2}

	fpA.FillCells([]geometry.Pt{p}, r2.Vector{X: 1, Y: 0})
	fpB.FillCells([]geometry.Pt{p}, r2.Vector{X: -1, Y: 0})

	k := fpA.idx(p)
	if fpA.RealisedX[k] != fpB.RealisedX[k] || fpA.RealisedY[k] != fpB.RealisedY[k] {
		t.Fatalf("antiparallel steps should canonicalise identically: %v vs %v",
			r2.Vector{X: fpA.RealisedX[k], Y: fpA.RealisedY[k]},
			r2.Vector{X: fpB.RealisedX[k], Y: fpB.RealisedY[k]})
	}
}

func TestIsCollisionFreeRespectsRing(t *testing.T) {
	dp := uniformSquare(7)
	fp := NewFilledPattern(dp, testConfig())
	center := geometry.Pt{I: 3, J: 3}
	fp.FillCells([]geometry.Pt{center}, r2.Vector{X: 1, Y: 0})
	if fp.IsCollisionFree(geometry.Pt{I: 4, J: 3}, 1) {
		t.Fatal("neighbour of a filled cell within ring(1) should not be collision free")
	}
	if !fp.IsCollisionFree(geometry.Pt{I: 6, J: 6}, 1) {
		t.Fatal("cell far from any fill should be collision free")
	}
}

func TestRepulsionVectorPullsTowardsEmpty(t *testing.T) {
	dp := uniformSquare(9)
	cfg := testConfig()
	cfg.PrintRadius = 2
	fp := NewFilledPattern(dp, cfg)
	// Fill the entire left half of the disc around (4,4) so the empty
	// cells are concentrated to the right (+I).
	for di := -2; di <= 0; di++ {
		for dj := -2; dj <= 2; dj++ {
			p := geometry.Pt{I: 4 + di, J: 4 + dj}
			if dp.Shape(p.I, p.J) {
				fp.FillCells([]geometry.Pt{p}, r2.Vector{X: 1, Y: 0})
			}
		}
	}
	// The returned vector points away from the empty cells (-I); the grower
	// subtracts it, which moves the probe toward the emptier (+I) side.
	rv := fp.RepulsionVector(geometry.Pt{I: 4, J: 4}, 1.0)
	if rv.X >= 0 {
		t.Fatalf("expected the repulsion vector to point away from the emptier (+I) side, got %v", rv)
	}
}

func TestSearchAllFillableExcludesFilled(t *testing.T) {
	dp := uniformSquare(5)
	fp := NewFilledPattern(dp, testConfig())
	fp.FillCells([]geometry.Pt{{I: 2, J: 2}}, r2.Vector{X: 1, Y: 0})
	fp.SearchAllFillable()
	for _, p := range fp.Fillable() {
		if p == (geometry.Pt{I: 2, J: 2}) {
			t.Fatal("filled cell should not be fillable under collision radius 1")
		}
	}
}

func TestRefineFillableShrinksAfterFill(t *testing.T) {
	dp := uniformSquare(5)
	fp := NewFilledPattern(dp, testConfig())
	fp.SearchAllFillable()
	total := len(fp.Fillable())
	fp.FillCells([]geometry.Pt{{I: 2, J: 2}}, r2.Vector{X: 1, Y: 0})
	fp.RefineFillable()
	if len(fp.Fillable()) >= total {
		t.Fatalf("RefineFillable should shrink the candidate set after a fill, got %d vs %d", len(fp.Fillable()), total)
	}
}
