// Package ioformat reads and writes the plain-CSV boundary this tool
// exchanges with the rest of a print pipeline: headerless W x H numeric
// matrices for shape.csv/xField.csv/yField.csv/number_of_times_filled.csv,
// and variable-width coordinate rows for the best_paths family. None of
// these shapes fit a struct-tagged row marshaler, so this package talks to
// encoding/csv directly rather than through a reflection-based library.
package ioformat

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/fieldprint/slicer/pkg/order"
)

// ReadShape reads a 0/1 integer W x H matrix. Rows become the first index,
// columns the second -- row i, column j is cell (i,j).
func ReadShape(r io.Reader) (w, h int, shape []bool, err error) {
	rows, err := readMatrix(r)
	if err != nil {
		return 0, 0, nil, err
	}
	w, h = len(rows), rowWidth(rows)
	shape = make([]bool, w*h)
	for i, row := range rows {
		for j, cell := range row {
			v, err := strconv.Atoi(cell)
			if err != nil {
				return 0, 0, nil, fmt.Errorf("shape.csv row %d col %d: %w", i, j, err)
			}
			if v != 0 && v != 1 {
				return 0, 0, nil, fmt.Errorf("shape.csv row %d col %d: value %d is not 0 or 1", i, j, v)
			}
			shape[i*h+j] = v == 1
		}
	}
	return w, h, shape, nil
}

// ReadField reads a float W x H matrix, such as xField.csv or yField.csv.
func ReadField(r io.Reader) (w, h int, field []float64, err error) {
	rows, err := readMatrix(r)
	if err != nil {
		return 0, 0, nil, err
	}
	w, h = len(rows), rowWidth(rows)
	field = make([]float64, w*h)
	for i, row := range rows {
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return 0, 0, nil, fmt.Errorf("field csv row %d col %d: %w", i, j, err)
			}
			field[i*h+j] = v
		}
	}
	return w, h, field, nil
}

func readMatrix(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv has no rows")
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("csv row %d has %d columns, want %d (non-rectangular)", i, len(row), width)
		}
	}
	return rows, nil
}

func rowWidth(rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// WriteCoverage writes filledCount as a W x H integer matrix, row i holding
// cells (i,0)..(i,H-1).
func WriteCoverage(w io.Writer, width, height int, filledCount []uint32) error {
	cw := csv.NewWriter(w)
	for i := 0; i < width; i++ {
		row := make([]string, height)
		for j := 0; j < height; j++ {
			row[j] = strconv.FormatUint(uint64(filledCount[i*height+j]), 10)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing coverage row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePaths writes one path per row as comma-separated "i:j" coordinates
// to a single combined best_paths.csv. The split x/y forms are written by
// WritePathsSplit.
func WritePaths(w io.Writer, ordered []order.Ordered) error {
	cw := csv.NewWriter(w)
	for _, o := range ordered {
		row := make([]string, len(o.Path.Points))
		for k, p := range o.Path.Points {
			row[k] = fmt.Sprintf("%d:%d", p.I, p.J)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing path row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePathsSplit writes the x and y coordinates of each path as two
// parallel matrices, one row per path, matching the x_best_paths.csv /
// y_best_paths.csv split-file convention.
func WritePathsSplit(xw, yw io.Writer, ordered []order.Ordered) error {
	xcw := csv.NewWriter(xw)
	ycw := csv.NewWriter(yw)
	for _, o := range ordered {
		xrow := make([]string, len(o.Path.Points))
		yrow := make([]string, len(o.Path.Points))
		for k, p := range o.Path.Points {
			xrow[k] = strconv.Itoa(p.I)
			yrow[k] = strconv.Itoa(p.J)
		}
		if err := xcw.Write(xrow); err != nil {
			return fmt.Errorf("writing x_best_paths row: %w", err)
		}
		if err := ycw.Write(yrow); err != nil {
			return fmt.Errorf("writing y_best_paths row: %w", err)
		}
	}
	xcw.Flush()
	ycw.Flush()
	if err := xcw.Error(); err != nil {
		return err
	}
	return ycw.Error()
}

// ReadPaths parses the combined best_paths.csv "i:j" row format back into
// bare point sequences, the inverse of WritePaths.
func ReadPaths(r io.Reader) ([][]geometry.Pt, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading best_paths.csv: %w", err)
	}
	paths := make([][]geometry.Pt, len(rows))
	for ri, row := range rows {
		pts := make([]geometry.Pt, len(row))
		for ci, cell := range row {
			var i, j int
			if _, err := fmt.Sscanf(cell, "%d:%d", &i, &j); err != nil {
				return nil, fmt.Errorf("best_paths.csv row %d col %d: malformed coordinate %q: %w", ri, ci, cell, err)
			}
			pts[ci] = geometry.Pt{I: i, J: j}
		}
		paths[ri] = pts
	}
	return paths, nil
}

// ReadShapeFile, ReadFieldFile and friends open the named file and delegate
// to the corresponding reader, closing the file before returning.

func ReadShapeFile(path string) (w, h int, shape []bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadShape(f)
}

func ReadFieldFile(path string) (w, h int, field []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadField(f)
}

func WriteCoverageFile(path string, width, height int, filledCount []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return WriteCoverage(f, width, height, filledCount)
}

func WritePathsFile(path string, ordered []order.Ordered) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return WritePaths(f, ordered)
}

func WritePathsSplitFiles(xPath, yPath string, ordered []order.Ordered) error {
	xf, err := os.Create(xPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", xPath, err)
	}
	defer xf.Close()
	yf, err := os.Create(yPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", yPath, err)
	}
	defer yf.Close()
	return WritePathsSplit(xf, yf, ordered)
}
