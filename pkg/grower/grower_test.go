package grower

import (
	"testing"

	"github.com/fieldprint/slicer/pkg/config"
	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/fieldprint/slicer/pkg/pattern"
)

func uniformSquare(n int) *pattern.DesiredPattern {
	shape := make([]bool, n*n)
	fx := make([]float64, n*n)
	fy := make([]float64, n*n)
	for i := range shape {
		shape[i] = true
		fx[i] = 1
		fy[i] = 0
	}
	dp, err := pattern.NewDesiredPattern(n, n, shape, fx, fy)
	if err != nil {
		panic(err)
	}
	return dp
}

func TestOneByOneSinglePath(t *testing.T) {
	shape := []bool{true}
	fx := []float64{1}
	fy := []float64{0}
	dp, err := pattern.NewDesiredPattern(1, 1, shape, fx, fy)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.FillingConfig{
		Method: config.ConsecutiveRadial, CollisionRadius: 0, StepLength: 1,
		PrintRadius: 0, Repulsion: 0, StartingPointSeparation: 1, Seed: 1,
	}
	fp := pattern.NewFilledPattern(dp, cfg)
	g := New(fp)
	path := g.TwoSidedGrow(geometry.Pt{I: 0, J: 0})
	if len(path.Points) != 1 {
		t.Fatalf("expected a length-1 path, got %d points", len(path.Points))
	}
	if fp.CountAt(geometry.Pt{I: 0, J: 0}) == 0 {
		t.Fatal("seed cell must be filled")
	}
}

func TestHorizontalSpanOnUniformField(t *testing.T) {
	dp := uniformSquare(5)
	cfg := config.FillingConfig{
		Method: config.ConsecutiveRadial, CollisionRadius: 2, StepLength: 3,
		PrintRadius: 1, Repulsion: 0, StartingPointSeparation: 3, Seed: 1,
	}
	fp := pattern.NewFilledPattern(dp, cfg)
	g := New(fp)
	path := g.TwoSidedGrow(geometry.Pt{I: 2, J: 2})
	if len(path.Points) < 2 {
		t.Fatalf("expected the path to grow beyond the seed, got %d points", len(path.Points))
	}
	minI, maxI := path.Points[0].I, path.Points[0].I
	for _, p := range path.Points {
		if p.J != 2 {
			t.Fatalf("uniform horizontal field should produce a horizontal path, found vertex %v", p)
		}
		if p.I < minI {
			minI = p.I
		}
		if p.I > maxI {
			maxI = p.I
		}
	}
	if maxI-minI == 0 {
		t.Fatal("path should span more than a single column")
	}
}

func TestTwoSidedGrowKeepsFillInsideShape(t *testing.T) {
	dp := uniformSquare(9)
	cfg := config.FillingConfig{
		Method: config.ConsecutiveRadial, CollisionRadius: 2, StepLength: 2,
		PrintRadius: 0, Repulsion: 0, StartingPointSeparation: 1, Seed: 3,
	}
	fp := pattern.NewFilledPattern(dp, cfg)
	g := New(fp)
	g.TwoSidedGrow(geometry.Pt{I: 4, J: 4})

	for i := 0; i < dp.W; i++ {
		for j := 0; j < dp.H; j++ {
			p := geometry.Pt{I: i, J: j}
			if fp.CountAt(p) > 0 && !dp.Shape(i, j) {
				t.Fatalf("containment violated at %v", p)
			}
		}
	}
}
