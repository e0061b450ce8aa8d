package fobz

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// Compression selects the ZIP method applied uniformly to every written
// entry. Only the decompressed content must round-trip exactly; the choice of
// method is not a compatibility requirement.
type Compression uint16

const (
	CompDeflate Compression = iota // standard Deflate (default)
	CompStore                      // no compression
	CompZstd                       // Zstandard, WinZip method 93
)

// method maps the compression mode to its ZIP method ID.
func (c Compression) method() (uint16, error) {
	switch c {
	case CompDeflate:
		return zip.Deflate, nil
	case CompStore:
		return zip.Store, nil
	case CompZstd:
		return zstd.ZipMethodWinZip, nil
	default:
		return 0, fmt.Errorf("%w: unknown compression %d", ErrValidation, c)
	}
}

// registerCompressors wires the klauspost implementations into a zip writer:
// flate at the requested level for Deflate, zstd for method 93.
func registerCompressors(zw *zip.Writer, level int) {
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
}

// registerDecompressors accepts both methods on read, regardless of the mode
// the archive was written with.
func registerDecompressors(zr *zip.Reader) {
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
}
