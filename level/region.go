package level

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Region is a parsed region file. The whole file is held in memory; chunk
// payloads stay compressed until they are decoded.
type Region struct {
	Pos  RegionPos
	Ext  string
	dir  string
	data []byte
}

// RawChunk is one present entry of a region file's location table.
type RawChunk struct {
	Pos         ChunkPos
	Compression Compression
	data        []byte
	external    string
}

// Open reads the region file at path. The region position is taken from the
// file name.
func Open(path string) (*Region, error) {
	pos, ext, err := ParseFileName(filepath.Base(path))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(pos, ext, filepath.Dir(path), data)
}

// Parse validates the header of an in-memory region file. dir is where
// oversized chunks stored in external .mcc files are looked up.
func Parse(pos RegionPos, ext string, dir string, data []byte) (*Region, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: file is %d bytes, header needs %d", ErrInvalidHeader, len(data), headerSize)
	}

	return &Region{
		Pos:  pos,
		Ext:  ext,
		dir:  dir,
		data: data,
	}, nil
}

// ChunkBase returns the world block coordinates of the north-west corner of
// the chunk at local position pos.
func (r *Region) ChunkBase(pos ChunkPos) (x int, z int) {
	return r.Pos.X*RegionBlocks + pos.X*ChunkSize, r.Pos.Z*RegionBlocks + pos.Z*ChunkSize
}

// Chunks lists every chunk present in the region, in location table order.
func (r *Region) Chunks() ([]RawChunk, error) {
	chunks := make([]RawChunk, 0, RegionChunks*RegionChunks)

	for i := 0; i < RegionChunks*RegionChunks; i++ {
		entry := binary.BigEndian.Uint32(r.data[i*4:])
		if entry == 0 {
			continue
		}

		pos := ChunkPos{i % RegionChunks, i / RegionChunks}
		chunk, err := r.readChunk(pos, int(entry>>8), int(entry&0xFF))
		if err != nil {
			return nil, fmt.Errorf("chunk %d,%d: %w", pos.X, pos.Z, err)
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

func (r *Region) readChunk(pos ChunkPos, offset int, sectors int) (RawChunk, error) {
	// Offsets are in 4KiB sectors and must point past the two header sectors
	if offset < 2 || sectors == 0 {
		return RawChunk{}, fmt.Errorf("%w: bad location offset %d count %d", ErrInvalidChunk, offset, sectors)
	}

	start := offset * SectorSize
	if start+5 > len(r.data) {
		return RawChunk{}, fmt.Errorf("%w: offset %d past end of file", ErrInvalidChunk, start)
	}

	length := int(binary.BigEndian.Uint32(r.data[start:]))
	if length < 1 || start+4+length > len(r.data) {
		return RawChunk{}, fmt.Errorf("%w: bad payload length %d", ErrInvalidChunk, length)
	}

	chunk := RawChunk{
		Pos:         pos,
		Compression: Compression(r.data[start+4] &^ externalFlag),
		data:        r.data[start+5 : start+4+length],
	}

	if r.data[start+4]&externalFlag != 0 {
		x := r.Pos.X*RegionChunks + pos.X
		z := r.Pos.Z*RegionChunks + pos.Z
		chunk.external = filepath.Join(r.dir, fmt.Sprintf("c.%d.%d.mcc", x, z))
		chunk.data = nil
	}

	return chunk, nil
}

// Payload returns the uncompressed NBT bytes of the chunk.
func (c RawChunk) Payload() ([]byte, error) {
	data := c.data
	if c.external != "" {
		external, err := os.ReadFile(c.external)
		if err != nil {
			return nil, err
		}
		data = external
	}

	return decompress(c.Compression, data)
}
