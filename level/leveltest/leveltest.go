// Package leveltest writes small region files for tests.
package leveltest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"slices"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"

	"github.com/richgrov/mcacollide/blocks"
	"github.com/richgrov/mcacollide/internal/util"
	"github.com/richgrov/mcacollide/level"
	"github.com/richgrov/mcacollide/nbt"
)

// Format selects the chunk layout written to disk.
type Format int

const (
	// Modern is the 1.18+ layout: root "sections" with "block_states".
	Modern Format = iota
	// Flattened is the 1.13 to 1.17 layout: "Level.Sections" with "Palette".
	Flattened
	// Numeric is the 1.2 to 1.12 layout with byte block ids per section.
	Numeric
	// McRegion is the pre-Anvil layout, one 16x128x16 byte array per chunk.
	McRegion
)

type Options struct {
	Format      Format
	Compression level.Compression
	// DataVersion is written into Modern and Flattened chunks. Values below
	// 2529 select spanning bit packing.
	DataVersion int32
	// External stores every chunk in a c.<x>.<z>.mcc file.
	External bool
}

type pos3 struct{ x, y, z int }

// World is a sparse set of blocks in world coordinates.
type World struct {
	blocks map[pos3]string
}

func NewWorld() *World {
	return &World{blocks: make(map[pos3]string)}
}

func (w *World) Set(x, y, z int, name string) {
	w.blocks[pos3{x, y, z}] = blocks.Namespaced(name)
}

// Fill sets every block in the inclusive box between the two corners.
func (w *World) Fill(x0, y0, z0, x1, y1, z1 int, name string) {
	for x := min(x0, x1); x <= max(x0, x1); x++ {
		for y := min(y0, y1); y <= max(y0, y1); y++ {
			for z := min(z0, z1); z <= max(z0, z1); z++ {
				w.Set(x, y, z, name)
			}
		}
	}
}

type chunkKey struct {
	region level.RegionPos
	chunk  level.ChunkPos
}

type localBlock struct {
	x, y, z int
	name    string
}

// Write stores the world as region files in dir and returns their names.
func (w *World) Write(dir string, opts Options) ([]string, error) {
	chunks := make(map[chunkKey][]localBlock)
	for p, name := range w.blocks {
		cx := util.DivideAndFloor(p.x, level.ChunkSize)
		cz := util.DivideAndFloor(p.z, level.ChunkSize)
		key := chunkKey{
			region: level.RegionPos{
				X: util.DivideAndFloor(cx, level.RegionChunks),
				Z: util.DivideAndFloor(cz, level.RegionChunks),
			},
			chunk: level.ChunkPos{
				X: cx - util.DivideAndFloor(cx, level.RegionChunks)*level.RegionChunks,
				Z: cz - util.DivideAndFloor(cz, level.RegionChunks)*level.RegionChunks,
			},
		}
		chunks[key] = append(chunks[key], localBlock{
			x:    p.x - cx*level.ChunkSize,
			y:    p.y,
			z:    p.z - cz*level.ChunkSize,
			name: name,
		})
	}

	regions := make(map[level.RegionPos]map[level.ChunkPos][]byte)
	for key, local := range chunks {
		payload, err := encodeChunk(local, opts)
		if err != nil {
			return nil, err
		}
		if regions[key.region] == nil {
			regions[key.region] = make(map[level.ChunkPos][]byte)
		}
		regions[key.region][key.chunk] = payload
	}

	ext := level.AnvilExt
	if opts.Format == McRegion {
		ext = level.McRegionExt
	}

	var names []string
	for pos, payloads := range regions {
		name := level.FileName(pos, ext)
		if err := WriteRegion(filepath.Join(dir, name), pos, payloads, opts); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	slices.Sort(names)

	return names, nil
}

// WriteRegion writes uncompressed NBT chunk payloads into a region file.
func WriteRegion(path string, pos level.RegionPos, payloads map[level.ChunkPos][]byte, opts Options) error {
	comp := opts.Compression
	if comp == 0 {
		comp = level.CompressionZlib
	}

	header := make([]byte, 2*level.SectorSize)
	var body bytes.Buffer
	sector := 2

	for _, chunkPos := range sortedChunks(payloads) {
		compressed, err := Compress(comp, payloads[chunkPos])
		if err != nil {
			return err
		}

		compByte := byte(comp)
		if opts.External {
			x := pos.X*level.RegionChunks + chunkPos.X
			z := pos.Z*level.RegionChunks + chunkPos.Z
			external := filepath.Join(filepath.Dir(path), fmt.Sprintf("c.%d.%d.mcc", x, z))
			if err := os.WriteFile(external, compressed, 0o644); err != nil {
				return err
			}
			compByte |= 0x80
			compressed = nil
		}

		var entry bytes.Buffer
		binary.Write(&entry, binary.BigEndian, uint32(len(compressed)+1))
		entry.WriteByte(compByte)
		entry.Write(compressed)
		for entry.Len()%level.SectorSize != 0 {
			entry.WriteByte(0)
		}

		sectors := entry.Len() / level.SectorSize
		index := chunkPos.X + chunkPos.Z*level.RegionChunks
		binary.BigEndian.PutUint32(header[index*4:], uint32(sector<<8|sectors))
		body.Write(entry.Bytes())
		sector += sectors
	}

	return os.WriteFile(path, append(header, body.Bytes()...), 0o644)
}

func sortedChunks(payloads map[level.ChunkPos][]byte) []level.ChunkPos {
	positions := make([]level.ChunkPos, 0, len(payloads))
	for p := range payloads {
		positions = append(positions, p)
	}
	slices.SortFunc(positions, func(a, b level.ChunkPos) int {
		if a.Z != b.Z {
			return a.Z - b.Z
		}
		return a.X - b.X
	})
	return positions
}

// Compress applies a region compression scheme to a chunk payload.
func Compress(comp level.Compression, payload []byte) ([]byte, error) {
	var buf bytes.Buffer

	switch comp {
	case level.CompressionGzip:
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(payload); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}

	case level.CompressionZlib:
		w := zlib.NewWriter(&buf)
		if _, err := w.Write(payload); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}

	case level.CompressionNone:
		buf.Write(payload)

	case level.CompressionLZ4:
		writeLZ4Block(&buf, payload)
		writeLZ4Block(&buf, nil)

	default:
		return nil, fmt.Errorf("cannot write compression %s", comp)
	}

	return buf.Bytes(), nil
}

func writeLZ4Block(buf *bytes.Buffer, payload []byte) {
	method := byte(0x20)
	compressed := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := lz4.CompressBlock(payload, compressed, nil)
	if err != nil || n == 0 || n >= len(payload) {
		method = 0x10
		compressed = payload
		n = len(payload)
	}

	buf.WriteString("LZ4Block")
	buf.WriteByte(method)
	binary.Write(buf, binary.LittleEndian, uint32(n))
	binary.Write(buf, binary.LittleEndian, uint32(len(payload)))
	// lz4-java stores an xxhash of the block here; readers ignore it
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.Write(compressed[:n])
}

type paletteEntry struct {
	Name string `nbt:"Name"`
}

type modernSection struct {
	Y           int8 `nbt:"Y"`
	BlockStates struct {
		Palette []paletteEntry `nbt:"palette"`
		Data    []int64        `nbt:"data,omitempty"`
	} `nbt:"block_states"`
}

type modernChunk struct {
	DataVersion int32           `nbt:"DataVersion"`
	Status      string          `nbt:"Status"`
	Sections    []modernSection `nbt:"sections"`
}

type flattenedSection struct {
	Y           int8           `nbt:"Y"`
	Palette     []paletteEntry `nbt:"Palette"`
	BlockStates []int64        `nbt:"BlockStates"`
}

type numericSection struct {
	Y      int8   `nbt:"Y"`
	Blocks []byte `nbt:"Blocks"`
}

type levelChunk[S any] struct {
	DataVersion int32 `nbt:"DataVersion,omitempty"`
	Level       struct {
		Sections []S `nbt:"Sections"`
	} `nbt:"Level"`
}

type mcRegionChunk struct {
	Level struct {
		Blocks []byte `nbt:"Blocks"`
	} `nbt:"Level"`
}

// encodeChunk builds the uncompressed NBT payload of a chunk from blocks in
// chunk-local x and z and world y.
func encodeChunk(local []localBlock, opts Options) ([]byte, error) {
	var root any

	switch opts.Format {
	case McRegion:
		var chunk mcRegionChunk
		chunk.Level.Blocks = make([]byte, level.ChunkSize*level.ChunkSize*level.LegacyHeight)
		for _, b := range local {
			id, err := legacyID(b.name)
			if err != nil {
				return nil, err
			}
			chunk.Level.Blocks[b.x*level.ChunkSize*level.LegacyHeight+b.z*level.LegacyHeight+b.y] = id
		}
		root = chunk

	case Numeric:
		var chunk levelChunk[numericSection]
		for y, section := range splitSections(local) {
			ids := make([]byte, 4096)
			for i, name := range section {
				id, err := legacyID(name)
				if err != nil {
					return nil, err
				}
				ids[i] = id
			}
			chunk.Level.Sections = append(chunk.Level.Sections, numericSection{Y: int8(y), Blocks: ids})
		}
		root = chunk

	case Flattened:
		chunk := levelChunk[flattenedSection]{DataVersion: opts.DataVersion}
		for y, section := range splitSections(local) {
			palette, data := packSection(section, opts.DataVersion < 2529)
			chunk.Level.Sections = append(chunk.Level.Sections, flattenedSection{Y: int8(y), Palette: palette, BlockStates: data})
		}
		root = chunk

	default:
		dataVersion := opts.DataVersion
		if dataVersion == 0 {
			dataVersion = 3465
		}
		chunk := modernChunk{DataVersion: dataVersion, Status: "minecraft:full"}
		for y, section := range splitSections(local) {
			var s modernSection
			s.Y = int8(y)
			s.BlockStates.Palette, s.BlockStates.Data = packSection(section, false)
			chunk.Sections = append(chunk.Sections, s)
		}
		root = chunk
	}

	var buf bytes.Buffer
	if err := nbt.Marshal(root, "", &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// splitSections groups blocks into 4096-entry YZX arrays keyed by section y,
// in ascending order.
func splitSections(local []localBlock) map[int][]string {
	sections := make(map[int][]string)
	for _, b := range local {
		y := util.DivideAndFloor(b.y, 16)
		if sections[y] == nil {
			sections[y] = make([]string, 4096)
		}
		sections[y][(b.y-y*16)<<8|b.z<<4|b.x] = b.name
	}
	return sections
}

func packSection(section []string, spanning bool) ([]paletteEntry, []int64) {
	palette := []paletteEntry{{Name: blocks.Air}}
	lookup := map[string]int{blocks.Air: 0}
	indices := make([]int, len(section))

	for i, name := range section {
		if name == "" {
			continue
		}
		idx, ok := lookup[name]
		if !ok {
			idx = len(palette)
			lookup[name] = idx
			palette = append(palette, paletteEntry{Name: name})
		}
		indices[i] = idx
	}

	if len(palette) == 1 {
		return palette, nil
	}

	bitsPerBlock := max(4, bits.Len(uint(len(palette)-1)))
	if spanning {
		data := make([]int64, (len(indices)*bitsPerBlock+63)/64)
		for i, idx := range indices {
			bit := i * bitsPerBlock
			word, offset := bit/64, bit%64
			data[word] |= int64(uint64(idx) << offset)
			if offset+bitsPerBlock > 64 {
				data[word+1] |= int64(uint64(idx) >> (64 - offset))
			}
		}
		return palette, data
	}

	perLong := 64 / bitsPerBlock
	data := make([]int64, (len(indices)+perLong-1)/perLong)
	for i, idx := range indices {
		data[i/perLong] |= int64(uint64(idx) << ((i % perLong) * bitsPerBlock))
	}
	return palette, data
}

func legacyID(name string) (byte, error) {
	if name == "" {
		return 0, nil
	}
	for id := 0; id < 256; id++ {
		if blocks.BlockType(id).Name() == name {
			return byte(id), nil
		}
	}
	return 0, fmt.Errorf("%s has no legacy id", name)
}
