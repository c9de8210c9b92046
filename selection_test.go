package mcacollide

import (
	"slices"
	"testing"

	"github.com/richgrov/mcacollide/level"
)

func TestFileRange(t *testing.T) {
	cases := []struct {
		file      int
		requested Range
		want      Range
	}{
		{-1, Range{-10, -2}, Range{-10, -2}},
		{0, Range{0, 50}, Range{0, 50}},
		{0, Range{-10, 1000}, Range{0, 512}},
		{1, Range{-10, 1000}, Range{512, 1000}},
	}

	for _, c := range cases {
		if got := fileRange(c.file, c.requested); got != c.want {
			t.Errorf("fileRange(%d, %v) = %v, want %v", c.file, c.requested, got, c.want)
		}
	}

	if got := fileRange(3, Range{0, 10}); !got.Empty() {
		t.Errorf("fileRange of an untouched file = %v, want empty", got)
	}
}

func TestNeededFileNames(t *testing.T) {
	cases := []struct {
		name       string
		start, end BlockCoordinates
		want       []string
	}{
		{"around origin", BlockCoordinates{-1, 0, -1}, BlockCoordinates{1, 0, 1},
			[]string{"r.-1.-1.mca", "r.-1.0.mca", "r.0.-1.mca", "r.0.0.mca"}},
		{"0 0", BlockCoordinates{1, 0, 1}, BlockCoordinates{2, 0, 2}, []string{"r.0.0.mca"}},
		{"1 0", BlockCoordinates{513, 1, 1}, BlockCoordinates{523, 1, 2}, []string{"r.1.0.mca"}},
		{"0 1", BlockCoordinates{1, 1, 513}, BlockCoordinates{2, 1, 523}, []string{"r.0.1.mca"}},
		{"1 1", BlockCoordinates{513, 1, 513}, BlockCoordinates{513, 1, 523}, []string{"r.1.1.mca"}},
		{"-2 -2", BlockCoordinates{-513, 1, -513}, BlockCoordinates{-513, 1, -523}, []string{"r.-2.-2.mca"}},
		{"reversed corners", BlockCoordinates{600, 0, 10}, BlockCoordinates{-10, 0, 0},
			[]string{"r.-1.0.mca", "r.0.0.mca", "r.1.0.mca"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NeededFileNames(ExportParams{Start: c.start, End: c.end}, level.AnvilExt)
			if !slices.Equal(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestNeededFilesBoundary(t *testing.T) {
	// 511 and 512 sit on either side of a region border
	got := NeededFiles(ExportParams{Start: BlockCoordinates{511, 0, 0}, End: BlockCoordinates{512, 0, 0}})
	want := []level.RegionPos{{X: 0, Z: 0}, {X: 1, Z: 0}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRangeOverlaps(t *testing.T) {
	cases := []struct {
		a, b Range
		want bool
	}{
		{Range{0, 15}, Range{15, 20}, true},
		{Range{0, 15}, Range{16, 31}, false},
		{Range{16, 31}, Range{0, 15}, false},
		{Range{0, 512}, Range{496, 511}, true},
		{Range{-10, -2}, Range{-16, -1}, true},
		{Range{5, 5}, Range{5, 5}, true},
		{Range{10, 5}, Range{0, 15}, false},
		{Range{0, 15}, Range{10, 5}, false},
	}

	for _, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
