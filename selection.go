package mcacollide

import (
	"github.com/richgrov/mcacollide/internal/util"
	"github.com/richgrov/mcacollide/level"
)

// fileIndex returns the region grid index holding world coordinate c. Region
// indices use floor division, so -1 lives in region -1 and -513 in region -2.
func fileIndex(c int) int {
	return util.DivideAndFloor(c, level.RegionBlocks)
}

// NeededFiles lists the region files whose span touches the exported box,
// ordered by x then z.
func NeededFiles(params ExportParams) []level.RegionPos {
	b := params.bounds()

	startX, endX := fileIndex(b.x.Min), fileIndex(b.x.Max)
	startZ, endZ := fileIndex(b.z.Min), fileIndex(b.z.Max)

	needed := make([]level.RegionPos, 0, (endX-startX+1)*(endZ-startZ+1))
	for x := startX; x <= endX; x++ {
		for z := startZ; z <= endZ; z++ {
			needed = append(needed, level.RegionPos{X: x, Z: z})
		}
	}

	if len(needed) == 0 {
		needed = append(needed, level.RegionPos{X: startX, Z: startZ})
	}
	return needed
}

// NeededFileNames is NeededFiles rendered as file names with extension ext.
func NeededFileNames(params ExportParams, ext string) []string {
	files := NeededFiles(params)
	names := make([]string, len(files))
	for i, pos := range files {
		names[i] = level.FileName(pos, ext)
	}
	return names
}

// fileRange clamps the span of region file fileC, [fileC*S, (fileC+1)*S], to
// the requested range along the same axis. The result may be empty when the
// file does not touch the request.
func fileRange(fileC int, requested Range) Range {
	span := Range{fileC * level.RegionBlocks, (fileC + 1) * level.RegionBlocks}
	return span.Intersect(requested)
}
