package level

import (
	"bufio"
	"bytes"
	"fmt"
	"math/bits"

	"github.com/richgrov/mcacollide/blocks"
	"github.com/richgrov/mcacollide/nbt"
)

// Chunk answers block lookups for a decoded chunk.
type Chunk interface {
	// MinY and MaxY bound the stored blocks, inclusive. An empty chunk has
	// MinY > MaxY.
	MinY() int
	MaxY() int
	// Block returns the namespaced identifier at local x, z (0..15) and world
	// height y. Positions that hold no data are air.
	Block(x, y, z int) string
}

const (
	sectionHeight = 16
	sectionVolume = ChunkSize * ChunkSize * sectionHeight
	legacyVolume  = ChunkSize * ChunkSize * LegacyHeight

	// First data version where palette indices no longer span across longs
	// (20w17a).
	nonSpanningVersion = 2529
)

type paletteEntry struct {
	Name string `nbt:"Name"`
}

type blockStates struct {
	Palette []paletteEntry `nbt:"palette"`
	Data    []int64        `nbt:"data"`
}

type chunkSection struct {
	Y int8 `nbt:"Y"`

	// 1.18 and later
	BlockStates blockStates `nbt:"block_states"`

	// 1.13 to 1.17
	Palette      []paletteEntry `nbt:"Palette"`
	PackedStates []int64        `nbt:"BlockStates"`

	// 1.2 to 1.12
	Blocks []byte `nbt:"Blocks"`
	Add    []byte `nbt:"Add"`
}

type chunkLevel struct {
	Sections []chunkSection `nbt:"Sections"`

	// McRegion
	Blocks []byte `nbt:"Blocks"`
}

type chunkRoot struct {
	DataVersion int32          `nbt:"DataVersion"`
	Sections    []chunkSection `nbt:"sections"`
	Level       *chunkLevel    `nbt:"Level"`
}

// DecodeChunk decompresses and decodes the block data of a raw chunk.
func DecodeChunk(raw RawChunk) (Chunk, error) {
	payload, err := raw.Payload()
	if err != nil {
		return nil, err
	}

	var root chunkRoot
	if err := nbt.Unmarshal(bufio.NewReader(bytes.NewReader(payload)), &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	if root.Level != nil && len(root.Level.Blocks) > 0 {
		if len(root.Level.Blocks) != legacyVolume {
			return nil, fmt.Errorf("%w: McRegion block array has %d entries", ErrInvalidChunk, len(root.Level.Blocks))
		}
		return &legacyChunk{blocks: root.Level.Blocks}, nil
	}

	sections := root.Sections
	if root.Level != nil {
		sections = root.Level.Sections
	}

	chunk := &sectionChunk{
		sections: make(map[int]*section, len(sections)),
		minY:     1,
		maxY:     0,
	}
	empty := true

	spanning := root.DataVersion < nonSpanningVersion
	for _, raw := range sections {
		sec, err := decodeSection(raw, spanning)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", raw.Y, err)
		}
		if sec == nil {
			continue
		}

		y := int(raw.Y)
		chunk.sections[y] = sec

		bottom, top := y*sectionHeight, y*sectionHeight+sectionHeight-1
		if empty || bottom < chunk.minY {
			chunk.minY = bottom
		}
		if empty || top > chunk.maxY {
			chunk.maxY = top
		}
		empty = false
	}

	return chunk, nil
}

// section is a 16x16x16 cube of blocks. indices is nil when the whole section
// is the first palette entry.
type section struct {
	palette []string
	indices []uint16
}

func decodeSection(raw chunkSection, spanning bool) (*section, error) {
	switch {
	case len(raw.BlockStates.Palette) > 0:
		return decodePalette(raw.BlockStates.Palette, raw.BlockStates.Data, false)

	case len(raw.Palette) > 0:
		return decodePalette(raw.Palette, raw.PackedStates, spanning)

	case len(raw.Blocks) > 0:
		return decodeNumeric(raw.Blocks, raw.Add)

	default:
		// Light-only sections carry no blocks
		return nil, nil
	}
}

func decodePalette(entries []paletteEntry, data []int64, spanning bool) (*section, error) {
	sec := &section{palette: make([]string, len(entries))}
	for i, entry := range entries {
		sec.palette[i] = blocks.Namespaced(entry.Name)
	}

	if len(entries) == 1 && len(data) == 0 {
		return sec, nil
	}

	bitsPerBlock := max(4, bits.Len(uint(len(entries)-1)))
	indices, err := unpackIndices(data, bitsPerBlock, spanning)
	if err != nil {
		return nil, err
	}

	for _, idx := range indices {
		if int(idx) >= len(entries) {
			return nil, fmt.Errorf("%w: palette index %d out of %d entries", ErrInvalidChunk, idx, len(entries))
		}
	}

	sec.indices = indices
	return sec, nil
}

// unpackIndices extracts 4096 palette indices of bitsPerBlock bits each.
// Since 1.16 indices never cross a long boundary; before that they do.
func unpackIndices(data []int64, bitsPerBlock int, spanning bool) ([]uint16, error) {
	var want int
	if spanning {
		want = (sectionVolume*bitsPerBlock + 63) / 64
	} else {
		perLong := 64 / bitsPerBlock
		want = (sectionVolume + perLong - 1) / perLong
	}

	if len(data) != want {
		return nil, fmt.Errorf("%w: %d longs of block data, want %d for %d bits", ErrInvalidChunk, len(data), want, bitsPerBlock)
	}

	mask := uint64(1)<<bitsPerBlock - 1
	indices := make([]uint16, sectionVolume)

	if spanning {
		for i := range indices {
			bit := i * bitsPerBlock
			word, offset := bit/64, bit%64

			value := uint64(data[word]) >> offset
			if offset+bitsPerBlock > 64 {
				value |= uint64(data[word+1]) << (64 - offset)
			}
			indices[i] = uint16(value & mask)
		}
		return indices, nil
	}

	perLong := 64 / bitsPerBlock
	for i := range indices {
		value := uint64(data[i/perLong]) >> ((i % perLong) * bitsPerBlock)
		indices[i] = uint16(value & mask)
	}
	return indices, nil
}

func decodeNumeric(ids []byte, add []byte) (*section, error) {
	if len(ids) != sectionVolume {
		return nil, fmt.Errorf("%w: section block array has %d entries", ErrInvalidChunk, len(ids))
	}
	if len(add) != 0 && len(add) != sectionVolume/2 {
		return nil, fmt.Errorf("%w: section add array has %d entries", ErrInvalidChunk, len(add))
	}

	sec := &section{indices: make([]uint16, sectionVolume)}
	lookup := make(map[int]uint16)

	for i, id := range ids {
		full := int(id)
		if len(add) != 0 {
			full |= int(add[i/2]>>(4*(i%2))&0x0F) << 8
		}

		idx, ok := lookup[full]
		if !ok {
			idx = uint16(len(sec.palette))
			lookup[full] = idx
			sec.palette = append(sec.palette, legacyName(full))
		}
		sec.indices[i] = idx
	}

	return sec, nil
}

func legacyName(id int) string {
	if id > 0xFF {
		return fmt.Sprintf("minecraft:legacy_%d", id)
	}
	return blocks.BlockType(id).Name()
}

func (sec *section) block(x, y, z int) string {
	if sec.indices == nil {
		return sec.palette[0]
	}
	return sec.palette[sec.indices[y<<8|z<<4|x]]
}

type sectionChunk struct {
	sections map[int]*section
	minY     int
	maxY     int
}

func (c *sectionChunk) MinY() int { return c.minY }

func (c *sectionChunk) MaxY() int { return c.maxY }

func (c *sectionChunk) Block(x, y, z int) string {
	sectionY := y >> 4
	sec, ok := c.sections[sectionY]
	if !ok || x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return blocks.Air
	}
	return sec.block(x, y&15, z)
}

// legacyChunk is a McRegion chunk: one byte id per block, laid out in
// x, z, y order.
type legacyChunk struct {
	blocks []byte
}

func (*legacyChunk) MinY() int { return 0 }

func (*legacyChunk) MaxY() int { return LegacyHeight - 1 }

func (c *legacyChunk) Block(x, y, z int) string {
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize || y < 0 || y >= LegacyHeight {
		return blocks.Air
	}
	return blocks.BlockType(c.blocks[x*ChunkSize*LegacyHeight+z*LegacyHeight+y]).Name()
}
