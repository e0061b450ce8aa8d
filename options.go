package fobz

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
	level       int
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithCompression selects the ZIP method applied to every written entry.
func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

// WithCompressionLevel tunes the Deflate level (flate.BestSpeed through
// flate.BestCompression). It has no effect on CompStore or CompZstd.
func WithCompressionLevel(level int) WriteOption {
	return func(c *writeConfig) { c.level = level }
}
