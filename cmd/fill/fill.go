// Package fill wires the fill subcommand: load a desired pattern and base
// config from a directory, run the optimiser, order the winning fill's
// paths, and write the results back to the same directory.
package fill

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fieldprint/slicer/pkg/common"
	"github.com/fieldprint/slicer/pkg/config"
	"github.com/fieldprint/slicer/pkg/ioformat"
	"github.com/fieldprint/slicer/pkg/optimize"
	"github.com/fieldprint/slicer/pkg/order"
	"github.com/fieldprint/slicer/pkg/pattern"
	"github.com/fieldprint/slicer/pkg/quantify"
	"github.com/fieldprint/slicer/pkg/ui"
)

var (
	seedMin    uint32
	seedMax    uint32
	splitPaths bool
)

// GetCommand returns the fill subcommand. workers reports the resolved
// --workers value from the root command's persistent flag.
func GetCommand(workers func() int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill <directory>",
		Short: "Optimise and order a path fill for a shape and direction field",
		Long: `fill reads shape.csv, xField.csv, yField.csv and config.txt from the
given directory, runs the coordinate-descent optimiser over the starting
config, orders the winning fill's paths, and writes
number_of_times_filled.csv, best_paths.csv and best_config.txt back to the
same directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(args[0], workers())
		},
	}

	cmd.Flags().Uint32Var(&seedMin, "seed-min", 0, "inclusive lower bound of the seed sweep")
	cmd.Flags().Uint32Var(&seedMax, "seed-max", 7, "inclusive upper bound of the seed sweep")
	cmd.Flags().BoolVar(&splitPaths, "split-paths", false, "also write x_best_paths.csv/y_best_paths.csv")

	return cmd
}

func runFill(dir string, workers int) error {
	desired, base, err := loadInputs(dir)
	if err != nil {
		return fmt.Errorf("loading inputs from %s: %w", dir, err)
	}

	spin := ui.NewSpinner("optimising fill")
	spin.Start()

	o := &optimize.Optimiser{
		Desired:   desired,
		Base:      base,
		SeedMin:   seedMin,
		SeedMax:   seedMax,
		Weights:   quantify.DefaultWeights(),
		Exponents: quantify.DefaultExponents(),
		Workers:   workers,
	}
	result := o.Run()

	spin.Stop()
	common.Info("best cost %.6f (empty=%.4f overlap=%.4f director=%.4f density=%.4f)",
		result.Breakdown.Cost, result.Breakdown.Empty, result.Breakdown.Overlap,
		result.Breakdown.DirectorMismatch, result.Breakdown.PathDensity)

	ordered, err := order.Order(result.Pattern.Paths)
	if err != nil {
		return fmt.Errorf("ordering paths: %w", err)
	}

	if err := writeOutputs(dir, result, ordered); err != nil {
		return fmt.Errorf("writing outputs to %s: %w", dir, err)
	}
	return nil
}

func loadInputs(dir string) (*pattern.DesiredPattern, config.FillingConfig, error) {
	w, h, shape, err := ioformat.ReadShapeFile(filepath.Join(dir, "shape.csv"))
	if err != nil {
		return nil, config.FillingConfig{}, err
	}
	xw, xh, fieldX, err := ioformat.ReadFieldFile(filepath.Join(dir, "xField.csv"))
	if err != nil {
		return nil, config.FillingConfig{}, err
	}
	yw, yh, fieldY, err := ioformat.ReadFieldFile(filepath.Join(dir, "yField.csv"))
	if err != nil {
		return nil, config.FillingConfig{}, err
	}
	if xw != w || xh != h || yw != w || yh != h {
		return nil, config.FillingConfig{}, fmt.Errorf(
			"field dimensions (%dx%d, %dx%d) do not match shape grid %dx%d", xw, xh, yw, yh, w, h)
	}

	desired, err := pattern.NewDesiredPattern(w, h, shape, fieldX, fieldY)
	if err != nil {
		return nil, config.FillingConfig{}, err
	}

	base, err := config.ParseFile(filepath.Join(dir, "config.txt"))
	if err != nil {
		return nil, config.FillingConfig{}, err
	}

	return desired, base, nil
}

func writeOutputs(dir string, result optimize.Result, ordered []order.Ordered) error {
	if err := ioformat.WriteCoverageFile(
		filepath.Join(dir, "number_of_times_filled.csv"),
		result.Pattern.Desired.W, result.Pattern.Desired.H, result.Pattern.FilledCount,
	); err != nil {
		return err
	}

	if err := ioformat.WritePathsFile(filepath.Join(dir, "best_paths.csv"), ordered); err != nil {
		return err
	}

	if splitPaths {
		if err := ioformat.WritePathsSplitFiles(
			filepath.Join(dir, "x_best_paths.csv"), filepath.Join(dir, "y_best_paths.csv"), ordered,
		); err != nil {
			return err
		}
	}

	return result.Config.WriteFile(filepath.Join(dir, "best_config.txt"))
}
