package fobz

// Limits bounds what the codec is willing to allocate. On decode they guard
// against oversized archives and decompression bombs; on encode they reject
// documents that could not be read back under the same limits. Zero fields
// fall back to the corresponding default.
type Limits struct {
	MaxEntries      int    // total entries in the archive
	MaxMetadataLen  uint64 // per metadata JSON entry, uncompressed
	MaxContentSize  uint64 // per content entry, uncompressed
	MaxResourceSize uint64 // per resource entry, uncompressed
	MaxStyleSize    uint64 // per style entry, uncompressed
}

func defaultLimits() Limits {
	return Limits{
		MaxEntries:      100_000,
		MaxMetadataLen:  16 << 20,  // 16 MiB
		MaxContentSize:  64 << 20,  // 64 MiB
		MaxResourceSize: 512 << 20, // 512 MiB
		MaxStyleSize:    16 << 20,  // 16 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxEntries == 0 {
		l.MaxEntries = d.MaxEntries
	}
	if l.MaxMetadataLen == 0 {
		l.MaxMetadataLen = d.MaxMetadataLen
	}
	if l.MaxContentSize == 0 {
		l.MaxContentSize = d.MaxContentSize
	}
	if l.MaxResourceSize == 0 {
		l.MaxResourceSize = d.MaxResourceSize
	}
	if l.MaxStyleSize == 0 {
		l.MaxStyleSize = d.MaxStyleSize
	}
	return l
}
