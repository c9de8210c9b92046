package level

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// Compression is the scheme byte stored in front of every chunk payload.
type Compression byte

const (
	CompressionGzip Compression = 1
	CompressionZlib Compression = 2
	CompressionNone Compression = 3
	CompressionLZ4  Compression = 4
)

// Set on the compression byte when the payload lives in a c.<x>.<z>.mcc file.
const externalFlag = 0x80

// MaxChunkPayload bounds the uncompressed size of a single chunk.
const MaxChunkPayload = 64 << 20

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", byte(c))
	}
}

func decompress(comp Compression, data []byte) ([]byte, error) {
	switch comp {
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readLimited(r)

	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readLimited(r)

	case CompressionNone:
		if len(data) > MaxChunkPayload {
			return nil, fmt.Errorf("%w: chunk payload of %d bytes", ErrLimitExceeded, len(data))
		}
		return data, nil

	case CompressionLZ4:
		return decompressLZ4Blocks(data)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, comp)
	}
}

func readLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxChunkPayload+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxChunkPayload {
		return nil, fmt.Errorf("%w: chunk expands beyond %d bytes", ErrLimitExceeded, MaxChunkPayload)
	}
	return out, nil
}

// LZ4 chunks use the block stream framing of lz4-java: a sequence of blocks,
// each with a 21 byte header, terminated by an empty block.
const (
	lz4BlockMagic      = "LZ4Block"
	lz4BlockHeaderSize = len(lz4BlockMagic) + 13

	lz4MethodRaw = 0x10
	lz4MethodLZ4 = 0x20
)

func decompressLZ4Blocks(data []byte) ([]byte, error) {
	var out []byte

	for {
		if len(data) < lz4BlockHeaderSize || string(data[:len(lz4BlockMagic)]) != lz4BlockMagic {
			return nil, fmt.Errorf("%w: bad lz4 block header", ErrInvalidChunk)
		}

		header := data[len(lz4BlockMagic):lz4BlockHeaderSize]
		method := header[0] & 0xF0
		compressedLen := int(binary.LittleEndian.Uint32(header[1:]))
		decompressedLen := int(binary.LittleEndian.Uint32(header[5:]))
		data = data[lz4BlockHeaderSize:]

		if decompressedLen == 0 {
			return out, nil
		}

		if compressedLen < 0 || compressedLen > len(data) {
			return nil, fmt.Errorf("%w: lz4 block of %d bytes, %d remaining", ErrInvalidChunk, compressedLen, len(data))
		}
		if decompressedLen < 0 || len(out)+decompressedLen > MaxChunkPayload {
			return nil, fmt.Errorf("%w: chunk expands beyond %d bytes", ErrLimitExceeded, MaxChunkPayload)
		}

		block := data[:compressedLen]
		data = data[compressedLen:]

		switch method {
		case lz4MethodRaw:
			if compressedLen != decompressedLen {
				return nil, fmt.Errorf("%w: raw lz4 block length mismatch", ErrInvalidChunk)
			}
			out = append(out, block...)

		case lz4MethodLZ4:
			buf := make([]byte, decompressedLen)
			n, err := lz4.UncompressBlock(block, buf)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidChunk, err)
			}
			if n != decompressedLen {
				return nil, fmt.Errorf("%w: lz4 block decoded to %d bytes, want %d", ErrInvalidChunk, n, decompressedLen)
			}
			out = append(out, buf...)

		default:
			return nil, fmt.Errorf("%w: lz4 block method %#x", ErrUnsupportedCompression, method)
		}
	}
}
