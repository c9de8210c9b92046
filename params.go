package mcacollide

import (
	"github.com/richgrov/mcacollide/blocks"
)

// ExportParams selects the blocks taken from a world.
type ExportParams struct {
	// Start and End are opposite corners of the exported box, both inclusive.
	Start BlockCoordinates
	End   BlockCoordinates
	// SkipBlocks lists block identifiers treated as empty space in addition to
	// air. Bare names get the "minecraft:" namespace.
	SkipBlocks []string
	// Workers bounds how many region files are decoded at once. Zero decodes
	// every needed file concurrently.
	Workers int
}

// Range is an inclusive interval along one axis.
type Range struct {
	Min int
	Max int
}

func (r Range) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

func (r Range) Empty() bool {
	return r.Min > r.Max
}

func (r Range) Intersect(other Range) Range {
	return Range{max(r.Min, other.Min), min(r.Max, other.Max)}
}

// Overlaps applies the strict interval test to the half-open forms of both
// ranges, [Min, Max+1). An empty range overlaps nothing.
func (r Range) Overlaps(other Range) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.Min < other.Max+1 && r.Max+1 > other.Min
}

// bounds is ExportParams with its corners normalized per axis.
type bounds struct {
	x, y, z Range
}

func (p *ExportParams) bounds() bounds {
	axis := func(a, b int) Range {
		return Range{min(a, b), max(a, b)}
	}
	return bounds{
		x: axis(p.Start.X, p.End.X),
		y: axis(p.Start.Y, p.End.Y),
		z: axis(p.Start.Z, p.End.Z),
	}
}

func (p *ExportParams) skipSet() blocks.Set {
	return blocks.NewSet(p.SkipBlocks...)
}
