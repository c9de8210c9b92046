package mcacollide

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBlockSequenceSizes(t *testing.T) {
	s := seq(-2, 0, 4, 1, 3, 4)

	if s.XSize() != 3 || s.YSize() != 3 || s.ZSize() != 0 {
		t.Errorf("sizes %d %d %d", s.XSize(), s.YSize(), s.ZSize())
	}
	if s.Volume() != 16 {
		t.Errorf("volume %d, want 16", s.Volume())
	}
	if len(s.Blocks()) != s.Volume() {
		t.Errorf("%d blocks for volume %d", len(s.Blocks()), s.Volume())
	}

	if !s.SameXSize(seq(10, 0, 0, 13, 0, 0)) || s.SameXSpan(seq(10, 0, 0, 13, 0, 0)) {
		t.Error("equal x size must not imply equal x span")
	}
	if !s.SameFootprint(seq(-2, 9, 4, 1, 9, 4)) {
		t.Error("same x and z interval at another height should share a footprint")
	}
}

func TestBlockSequenceIntersects(t *testing.T) {
	a := seq(0, 0, 0, 3, 3, 3)

	if !a.Intersects(seq(3, 3, 3, 5, 5, 5)) {
		t.Error("boxes sharing a corner block should intersect")
	}
	if a.Intersects(seq(4, 0, 0, 5, 3, 3)) {
		t.Error("adjacent boxes should not intersect")
	}
	if !a.Contains(BlockCoordinates{3, 0, 2}) || a.Contains(BlockCoordinates{-1, 0, 0}) {
		t.Error("Contains is wrong at the edges")
	}
}

func TestBlockSequenceBounds(t *testing.T) {
	min, max := seq(-1, 2, 0, 0, 2, 4).Bounds()
	if min != (mgl32.Vec3{-1, 2, 0}) || max != (mgl32.Vec3{1, 3, 5}) {
		t.Errorf("bounds %v %v", min, max)
	}

	center, half := seq(-1, 2, 0, 0, 2, 4).Center()
	if !center.ApproxEqual(mgl32.Vec3{0, 2.5, 2.5}) || !half.ApproxEqual(mgl32.Vec3{1, 0.5, 2.5}) {
		t.Errorf("center %v half extents %v", center, half)
	}
}

func TestBlockStack(t *testing.T) {
	stack := NewBlockStack([]BlockCoordinates{
		{0, 5, 1}, {1, 5, 1}, {0, -3, 0}, {4, 5, -2}, {2, 5, 1},
	})

	if stack.Len() != 5 {
		t.Errorf("len %d, want 5", stack.Len())
	}

	plates := stack.Plates()
	if len(plates) != 2 || plates[0].Y != -3 || plates[1].Y != 5 {
		t.Fatalf("plates %v", plates)
	}

	rows := plates[1].Rows()
	if len(rows) != 2 || rows[0].Z != -2 || rows[1].Z != 1 {
		t.Fatalf("rows %v", rows)
	}
	if len(rows[1].Blocks) != 3 {
		t.Errorf("row z=1 holds %v", rows[1].Blocks)
	}
}
