package boxio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

func compressPayload(comp Compression, raw []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return raw, nil
	case CompZSTD:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(raw, nil), nil
	case CompLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			_ = zw.Close()
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompBR:
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		if _, err := bw.Write(raw); err != nil {
			_ = bw.Close()
			return nil, err
		}
		if err := bw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
}

// decompressPayload inflates a stored payload that must expand to exactly
// expected bytes.
func decompressPayload(comp Compression, stored []byte, expected uint64) ([]byte, error) {
	var out []byte
	var err error

	switch comp {
	case CompNone:
		out = stored
	case CompZSTD:
		var dec *zstd.Decoder
		dec, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(max(expected, 1<<20)))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err = dec.DecodeAll(stored, nil)
	case CompLZ4:
		out, err = readLimited(lz4.NewReader(bytes.NewReader(stored)), expected)
	case CompBR:
		out, err = readLimited(brotli.NewReader(bytes.NewReader(stored)), expected)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, comp, err)
	}

	if uint64(len(out)) != expected {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", ErrInvalidPayload, len(out), expected)
	}
	return out, nil
}

func readLimited(r io.Reader, expected uint64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, int64(expected)+1))
}
