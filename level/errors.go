package level

import "errors"

var (
	ErrInvalidFileName        = errors.New("level: invalid region file name")
	ErrInvalidHeader          = errors.New("level: invalid region header")
	ErrInvalidChunk           = errors.New("level: invalid chunk")
	ErrUnsupportedCompression = errors.New("level: unsupported compression")
	ErrLimitExceeded          = errors.New("level: limit exceeded")
)
