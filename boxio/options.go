package boxio

type Limits struct {
	MaxBoxes uint64
	// MaxStoredLen caps the payload as stored, after compression.
	MaxStoredLen uint64
}

func defaultLimits() Limits {
	return Limits{
		MaxBoxes:     1 << 24,
		MaxStoredLen: 1 << 30, // 1 GiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxBoxes == 0 {
		l.MaxBoxes = d.MaxBoxes
	}
	if l.MaxStoredLen == 0 {
		l.MaxStoredLen = d.MaxStoredLen
	}
	return l
}

type readConfig struct {
	limits Limits
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

type writeConfig struct {
	limits      Limits
	compression Compression
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithCompression selects how the box payload is compressed. The default is
// CompZSTD.
func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}
