package quantify

import (
	"testing"

	"github.com/fieldprint/slicer/pkg/config"
	"github.com/fieldprint/slicer/pkg/fill"
	"github.com/fieldprint/slicer/pkg/pattern"
	"github.com/fieldprint/slicer/pkg/seed"
)

func uniformSquare(n int) *pattern.DesiredPattern {
	shape := make([]bool, n*n)
	fx := make([]float64, n*n)
	fy := make([]float64, n*n)
	for i := range shape {
		shape[i] = true
		fx[i] = 1
	}
	dp, err := pattern.NewDesiredPattern(n, n, shape, fx, fy)
	if err != nil {
		panic(err)
	}
	return dp
}

func TestEvaluateEmptyPatternHasMaxEmpty(t *testing.T) {
	dp := uniformSquare(3)
	cfg := config.FillingConfig{
		Method: config.ConsecutiveRadial, CollisionRadius: 1, StepLength: 1,
		PrintRadius: 0, Repulsion: 0, StartingPointSeparation: 1, Seed: 1,
	}
	fp := pattern.NewFilledPattern(dp, cfg)
	b := Evaluate(fp, DefaultWeights(), DefaultExponents())
	if b.Empty != 1 {
		t.Fatalf("empty metric of an untouched pattern should be 1, got %v", b.Empty)
	}
}

func TestEvaluateGoodFillHasLowDirectorMismatch(t *testing.T) {
	dp := uniformSquare(5)
	cfg := config.FillingConfig{
		Method: config.ConsecutiveRadial, CollisionRadius: 2, StepLength: 3,
		PrintRadius: 1, Repulsion: 0.5, StartingPointSeparation: 3, Seed: 1,
	}
	fp := pattern.NewFilledPattern(dp, cfg)
	fill.Run(fp, seed.New(cfg.Method))
	b := Evaluate(fp, DefaultWeights(), DefaultExponents())
	if b.DirectorMismatch > 0.05 {
		t.Fatalf("director mismatch on a uniform field should be small, got %v", b.DirectorMismatch)
	}
}

func TestEvaluateCostIsNonNegative(t *testing.T) {
	dp := uniformSquare(5)
	cfg := config.FillingConfig{
		Method: config.ConsecutiveRadial, CollisionRadius: 2, StepLength: 3,
		PrintRadius: 1, Repulsion: 0.5, StartingPointSeparation: 3, Seed: 1,
	}
	fp := pattern.NewFilledPattern(dp, cfg)
	fill.Run(fp, seed.New(cfg.Method))
	b := Evaluate(fp, DefaultWeights(), DefaultExponents())
	if b.Cost < 0 {
		t.Fatalf("cost should never be negative, got %v", b.Cost)
	}
}
