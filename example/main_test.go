package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/richgrov/mcacollide"
	"github.com/richgrov/mcacollide/boxio"
)

func TestWriteBoxes(t *testing.T) {
	boxes := []mcacollide.BlockSequence{
		mcacollide.NewBlockSequence(mcacollide.NewBlockCoordinates(0, -64, 0), mcacollide.NewBlockCoordinates(15, -64, 15)),
	}

	path := filepath.Join(t.TempDir(), "boxes.mcbx")
	if err := writeBoxes(path, boxes, boxio.CompLZ4); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	got, err := boxio.Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, boxes) {
		t.Errorf("got %v, want %v", got, boxes)
	}
}

func TestWriteBoxesBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "boxes.mcbx")
	if err := writeBoxes(path, nil, boxio.CompNone); err == nil {
		t.Fatal("expected error creating a file in a missing directory")
	}
}

func TestParseCoordinates(t *testing.T) {
	got, err := parseCoordinates("1, -64,3")
	if err != nil {
		t.Fatal(err)
	}
	if want := mcacollide.NewBlockCoordinates(1, -64, 3); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"", "1,2", "1,2,x", "1,2,3,4"} {
		if _, err := parseCoordinates(bad); err == nil {
			t.Errorf("parsing %q should fail", bad)
		}
	}
}
