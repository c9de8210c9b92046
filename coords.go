package mcacollide

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockCoordinates is the position of a single block in world space.
type BlockCoordinates struct {
	X int
	Y int
	Z int
}

func NewBlockCoordinates(x, y, z int) BlockCoordinates {
	return BlockCoordinates{x, y, z}
}

func (c BlockCoordinates) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// BlockSequence is a box of solid blocks between two inclusive corners.
type BlockSequence struct {
	Start BlockCoordinates
	End   BlockCoordinates
}

func NewBlockSequence(start, end BlockCoordinates) BlockSequence {
	return BlockSequence{start, end}
}

func (s BlockSequence) XSize() int { return s.End.X - s.Start.X }

func (s BlockSequence) YSize() int { return s.End.Y - s.Start.Y }

func (s BlockSequence) ZSize() int { return s.End.Z - s.Start.Z }

func (s BlockSequence) SameXSize(other BlockSequence) bool {
	return s.XSize() == other.XSize()
}

func (s BlockSequence) SameZSize(other BlockSequence) bool {
	return s.ZSize() == other.ZSize()
}

// SameXSpan reports whether both sequences cover exactly the same x interval.
func (s BlockSequence) SameXSpan(other BlockSequence) bool {
	return s.Start.X == other.Start.X && s.End.X == other.End.X
}

// SameFootprint reports whether both sequences cover the same x and z
// intervals, so one can be stacked on the other.
func (s BlockSequence) SameFootprint(other BlockSequence) bool {
	return s.SameXSpan(other) && s.Start.Z == other.Start.Z && s.End.Z == other.End.Z
}

func (s BlockSequence) HasZEndOn(z int) bool {
	return s.End.Z == z
}

func (s *BlockSequence) expandZEnd(other BlockSequence) {
	s.End.Z = other.End.Z
}

func (s *BlockSequence) expandStart(start BlockCoordinates) {
	s.Start = start
}

// Volume is the number of blocks in the sequence.
func (s BlockSequence) Volume() int {
	return (s.XSize() + 1) * (s.YSize() + 1) * (s.ZSize() + 1)
}

func (s BlockSequence) Contains(c BlockCoordinates) bool {
	return s.Start.X <= c.X && c.X <= s.End.X &&
		s.Start.Y <= c.Y && c.Y <= s.End.Y &&
		s.Start.Z <= c.Z && c.Z <= s.End.Z
}

// Intersects reports whether the two sequences share at least one block.
func (s BlockSequence) Intersects(other BlockSequence) bool {
	return s.Start.X <= other.End.X && other.Start.X <= s.End.X &&
		s.Start.Y <= other.End.Y && other.Start.Y <= s.End.Y &&
		s.Start.Z <= other.End.Z && other.Start.Z <= s.End.Z
}

// Blocks expands the sequence back into the coordinates it covers.
func (s BlockSequence) Blocks() []BlockCoordinates {
	blocks := make([]BlockCoordinates, 0, s.Volume())
	for y := s.Start.Y; y <= s.End.Y; y++ {
		for z := s.Start.Z; z <= s.End.Z; z++ {
			for x := s.Start.X; x <= s.End.X; x++ {
				blocks = append(blocks, BlockCoordinates{x, y, z})
			}
		}
	}
	return blocks
}

// Bounds returns the collision box of the sequence in world units. Block
// (x, y, z) occupies [x, x+1) on every axis.
func (s BlockSequence) Bounds() (min, max mgl32.Vec3) {
	min = mgl32.Vec3{float32(s.Start.X), float32(s.Start.Y), float32(s.Start.Z)}
	max = mgl32.Vec3{float32(s.End.X + 1), float32(s.End.Y + 1), float32(s.End.Z + 1)}
	return min, max
}

// Center returns the midpoint and half extents of the collision box, the form
// most physics engines take box shapes in.
func (s BlockSequence) Center() (center, halfExtents mgl32.Vec3) {
	min, max := s.Bounds()
	halfExtents = max.Sub(min).Mul(0.5)
	return min.Add(halfExtents), halfExtents
}

func (s BlockSequence) String() string {
	return fmt.Sprintf("[%v..%v]", s.Start, s.End)
}
