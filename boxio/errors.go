package boxio

import "errors"

var (
	ErrInvalidMagic       = errors.New("boxio: invalid magic")
	ErrUnsupportedVersion = errors.New("boxio: unsupported version")
	ErrInvalidPayload     = errors.New("boxio: invalid payload")
	ErrLimitExceeded      = errors.New("boxio: limit exceeded")
)
