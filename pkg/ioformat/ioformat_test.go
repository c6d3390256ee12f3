package ioformat

import (
	"strings"
	"testing"

	"github.com/fieldprint/slicer/pkg/geometry"
	"github.com/fieldprint/slicer/pkg/order"
	"github.com/fieldprint/slicer/pkg/pattern"
)

func TestReadShapeRoundTrip(t *testing.T) {
	in := "1,1,0\n0,1,1\n"
	w, h, shape, err := ReadShape(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadShape: %v", err)
	}
	if w != 2 || h != 3 {
		t.Fatalf("got w=%d h=%d, want 2x3", w, h)
	}
	want := []bool{true, true, false, false, true, true}
	for i, v := range want {
		if shape[i] != v {
			t.Fatalf("shape[%d] = %v, want %v", i, shape[i], v)
		}
	}
}

func TestReadShapeRejectsBadValue(t *testing.T) {
	if _, _, _, err := ReadShape(strings.NewReader("1,2\n0,1\n")); err == nil {
		t.Fatal("expected error for non-0/1 value")
	}
}

func TestReadShapeRejectsNonRectangular(t *testing.T) {
	if _, _, _, err := ReadShape(strings.NewReader("1,1,0\n0,1\n")); err == nil {
		t.Fatal("expected error for non-rectangular csv")
	}
}

func TestReadField(t *testing.T) {
	w, h, field, err := ReadField(strings.NewReader("1.5,0\n-2,0.25\n"))
	if err != nil {
		t.Fatalf("ReadField: %v", err)
	}
	if w != 2 || h != 2 {
		t.Fatalf("got w=%d h=%d, want 2x2", w, h)
	}
	if field[0] != 1.5 || field[3] != 0.25 {
		t.Fatalf("unexpected field values: %v", field)
	}
}

func TestWriteCoverage(t *testing.T) {
	var sb strings.Builder
	filled := []uint32{1, 2, 0, 3}
	if err := WriteCoverage(&sb, 2, 2, filled); err != nil {
		t.Fatalf("WriteCoverage: %v", err)
	}
	want := "1,2\n0,3\n"
	if sb.String() != want {
		t.Fatalf("got %q, want %q", sb.String(), want)
	}
}

func TestWriteAndReadPathsRoundTrip(t *testing.T) {
	ordered := []order.Ordered{
		{Path: pattern.Path{Points: []geometry.Pt{{I: 0, J: 0}, {I: 0, J: 1}, {I: 1, J: 1}}}},
	}
	var sb strings.Builder
	if err := WritePaths(&sb, ordered); err != nil {
		t.Fatalf("WritePaths: %v", err)
	}
	paths, err := ReadPaths(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ReadPaths: %v", err)
	}
	if len(paths) != 1 || len(paths[0]) != 3 {
		t.Fatalf("unexpected round-trip shape: %v", paths)
	}
	if paths[0][2].I != 1 || paths[0][2].J != 1 {
		t.Fatalf("unexpected last point: %v", paths[0][2])
	}
}
