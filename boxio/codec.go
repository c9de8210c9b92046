// Package boxio stores merged collision boxes in a compact binary file.
//
// A file is a 16 byte header followed by the payload:
//
//	magic        [4]byte  "MCBX"
//	version      uint16
//	compression  uint16
//	count        uint64
//
// The uncompressed payload holds count boxes of six little-endian int32
// values each: start x, y, z then end x, y, z.
package boxio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/richgrov/mcacollide"
)

var Magic = [4]byte{'M', 'C', 'B', 'X'}

const (
	Version    uint16 = 1
	headerSize        = 16
	boxSize           = 6 * 4
)

type Compression uint16

const (
	CompNone Compression = iota
	CompZSTD
	CompLZ4
	CompBR
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "br"
	default:
		return fmt.Sprintf("compression(%d)", uint16(c))
	}
}

// ParseCompression is the inverse of Compression.String.
func ParseCompression(name string) (Compression, error) {
	for c := CompNone; c <= CompBR; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("boxio: unknown compression %q", name)
}

type header struct {
	Magic       [4]byte
	Version     uint16
	Compression Compression
	Count       uint64
}

// Encode writes boxes to w.
func Encode(w io.Writer, boxes []mcacollide.BlockSequence, opts ...WriteOption) error {
	cfg := writeConfig{compression: CompZSTD}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if uint64(len(boxes)) > cfg.limits.MaxBoxes {
		return fmt.Errorf("%w: %d boxes", ErrLimitExceeded, len(boxes))
	}

	raw := make([]byte, 0, len(boxes)*boxSize)
	for _, box := range boxes {
		for _, v := range [6]int{box.Start.X, box.Start.Y, box.Start.Z, box.End.X, box.End.Y, box.End.Z} {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return fmt.Errorf("%w: coordinate %d of %v does not fit 32 bits", ErrInvalidPayload, v, box)
			}
			raw = binary.LittleEndian.AppendUint32(raw, uint32(int32(v)))
		}
	}

	payload, err := compressPayload(cfg.compression, raw)
	if err != nil {
		return err
	}
	if uint64(len(payload)) > cfg.limits.MaxStoredLen {
		return fmt.Errorf("%w: stored payload of %d bytes", ErrLimitExceeded, len(payload))
	}

	h := header{
		Magic:       Magic,
		Version:     Version,
		Compression: cfg.compression,
		Count:       uint64(len(boxes)),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}

	_, err = w.Write(payload)
	return err
}

// Decode reads a box file written by Encode. The payload runs to the end of r.
//
// Decode returns ErrInvalidMagic if r does not hold a box file,
// ErrUnsupportedVersion for files from a newer writer and ErrLimitExceeded when
// the file is larger than the configured limits.
func Decode(r io.Reader, opts ...ReadOption) ([]mcacollide.BlockSequence, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrInvalidMagic
		}
		return nil, err
	}
	if h.Magic != Magic {
		return nil, ErrInvalidMagic
	}
	if h.Version != Version {
		return nil, ErrUnsupportedVersion
	}
	if h.Count > cfg.limits.MaxBoxes {
		return nil, fmt.Errorf("%w: %d boxes", ErrLimitExceeded, h.Count)
	}

	stored, err := io.ReadAll(io.LimitReader(r, int64(cfg.limits.MaxStoredLen)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(stored)) > cfg.limits.MaxStoredLen {
		return nil, fmt.Errorf("%w: stored payload exceeds %d bytes", ErrLimitExceeded, cfg.limits.MaxStoredLen)
	}

	raw, err := decompressPayload(h.Compression, stored, h.Count*boxSize)
	if err != nil {
		return nil, err
	}

	value := func(i int) int {
		return int(int32(binary.LittleEndian.Uint32(raw[i*4:])))
	}

	boxes := make([]mcacollide.BlockSequence, h.Count)
	for i := range boxes {
		base := i * 6
		boxes[i] = mcacollide.NewBlockSequence(
			mcacollide.NewBlockCoordinates(value(base), value(base+1), value(base+2)),
			mcacollide.NewBlockCoordinates(value(base+3), value(base+4), value(base+5)),
		)
	}

	return boxes, nil
}
