// Package main provides the slicer CLI: an offline path planner for
// direction-field-driven extrusion printing.
//
// # Overview
//
// Given a binary shape mask and a 2D preferred-direction field over the
// same grid, slicer grows a set of nozzle paths that cover the shape with
// minimal gaps and overlap while tracking the field as closely as
// possible, picks the lowest-cost parameter set for that growth by
// coordinate descent, and orders the resulting paths into a single
// low-idle-travel emission sequence.
//
// # Installation & Building
//
//	go build
//	./slicer fill --help
//
// # Commands
//
// ## fill
//
// Read shape.csv, xField.csv, yField.csv and config.txt from a directory,
// run the optimiser, and write number_of_times_filled.csv, best_paths.csv
// and best_config.txt back to the same directory.
//
// Examples:
//
//	# Optimise a fill with the default seed sweep
//	slicer fill ./job
//
//	# Widen the seed sweep and also emit split x/y path files
//	slicer fill ./job --seed-min 0 --seed-max 63 --split-paths
//
// Flags:
//
//	--seed-min     inclusive lower bound of the seed sweep (default 0)
//	--seed-max     inclusive upper bound of the seed sweep (default 7)
//	--split-paths  also write x_best_paths.csv/y_best_paths.csv
//
// # Architecture
//
// Package layout, leaves first:
//
//	pkg/geometry  - disc/ring stencils, segment rasterisation
//	pkg/config    - FillingConfig and its config.txt round-trip
//	pkg/pattern   - DesiredPattern (shape + field) and FilledPattern (coverage/direction grids)
//	pkg/grower    - two-sided greedy path growth from a seed
//	pkg/seed      - starting-point selection with the rescan fallback
//	pkg/fill      - the filler driver loop
//	pkg/quantify  - the scalar fill-quality cost
//	pkg/optimize  - the coordinate-descent outer loop
//	pkg/order     - the greedy nearest-neighbour path orderer
//	pkg/ioformat  - the shape/field/coverage/paths CSV boundary
//	pkg/common    - shared logging
//	pkg/ui        - progress spinner
//	cmd/          - cobra command implementations
//
// # Global Flags (available for all commands)
//
//	-v, --verbose              enable verbose output for debugging
//	-j, --workers string       number of concurrent workers (integer, 'half', or 'full')
//	-w, --working-dir string   working directory to resolve relative paths against
package main
