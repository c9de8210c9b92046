package level

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ChunkSize is the horizontal size of a chunk in blocks.
	ChunkSize = 16
	// RegionChunks is the number of chunks along each horizontal axis of a
	// region file.
	RegionChunks = 32
	// RegionBlocks is the horizontal span of a region file in blocks.
	RegionBlocks = ChunkSize * RegionChunks

	SectorSize = 4096
	headerSize = 2 * SectorSize

	// LegacyHeight is the fixed world height of McRegion chunks.
	LegacyHeight = 128
)

// Extensions of the two supported region container flavours.
const (
	AnvilExt    = "mca"
	McRegionExt = "mcr"
)

// RegionPos is the position of a region file on the region grid.
type RegionPos struct {
	X int
	Z int
}

// ChunkPos is the position of a chunk inside its region file, 0..31 on both
// axes.
type ChunkPos struct {
	X int
	Z int
}

// FileName returns the on-disk name of the region file at pos.
func FileName(pos RegionPos, ext string) string {
	return fmt.Sprintf("r.%d.%d.%s", pos.X, pos.Z, ext)
}

// ParseFileName extracts the region position and extension from a name of the
// form r.<x>.<z>.<ext>.
func ParseFileName(name string) (RegionPos, string, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 4 || parts[0] != "r" || parts[3] == "" {
		return RegionPos{}, "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}

	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return RegionPos{}, "", fmt.Errorf("%w: %q: %w", ErrInvalidFileName, name, err)
	}

	z, err := strconv.Atoi(parts[2])
	if err != nil {
		return RegionPos{}, "", fmt.Errorf("%w: %q: %w", ErrInvalidFileName, name, err)
	}

	return RegionPos{x, z}, parts[3], nil
}
