package fobz

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Open reads the `.fobz` archive at path into a Document.
//
// Open fails wrapping the underlying error if the file cannot be opened as a
// ZIP container, and with ErrFormat if any of the four required metadata
// entries is missing or malformed. Payload entries listed in an index table
// but absent from the archive are tolerated; the corresponding Get call
// reports them as missing.
func Open(path string, opts ...ReadOption) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("fobz: open %s: %w", path, err)
	}
	defer zr.Close()
	return decodeArchive(&zr.Reader, opts...)
}

// Decode reads a `.fobz` document from r, which must cover size bytes of a
// ZIP archive.
//
// Use ReadOption functions to customize behavior:
//   - WithReadLimits(l): set custom size limits
func Decode(r io.ReaderAt, size int64, opts ...ReadOption) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("fobz: read archive: %w", err)
	}
	return decodeArchive(zr, opts...)
}

func decodeArchive(zr *zip.Reader, opts ...ReadOption) (*Document, error) {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	registerDecompressors(zr)

	if len(zr.File) > cfg.limits.MaxEntries {
		return nil, fmt.Errorf("%w: archive has %d entries", ErrLimitExceeded, len(zr.File))
	}

	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if _, ok := byName[f.Name]; !ok {
			byName[f.Name] = f
		}
	}

	doc := &Document{
		toc:       NewTableOfContents(),
		tor:       NewTableOfResources(),
		tos:       NewTableOfStyles(),
		contents:  make(map[string]string),
		resources: make(map[string][]byte),
		styles:    make(map[string]string),
	}

	if err := readMetadata(byName, manifestEntry, cfg.limits.MaxMetadataLen, &doc.manifest); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.manifest.Version) == "" {
		return nil, fmt.Errorf("%w: %s: version field missing", ErrFormat, manifestEntry)
	}
	if doc.manifest.Tags == nil {
		doc.manifest.Tags = []string{}
	}
	if err := readMetadata(byName, tocEntry, cfg.limits.MaxMetadataLen, doc.toc); err != nil {
		return nil, err
	}
	if err := readMetadata(byName, torEntry, cfg.limits.MaxMetadataLen, doc.tor); err != nil {
		return nil, err
	}
	if err := readMetadata(byName, tosEntry, cfg.limits.MaxMetadataLen, doc.tos); err != nil {
		return nil, err
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := f.Name
		switch {
		case isContentEntry(name):
			b, err := readEntry(f, cfg.limits.MaxContentSize)
			if err != nil {
				return nil, err
			}
			if !utf8.Valid(b) {
				return nil, fmt.Errorf("%w: content entry %q is not valid UTF-8", ErrFormat, name)
			}
			doc.contents[name] = string(b)
		case isResourceEntry(name):
			b, err := readEntry(f, cfg.limits.MaxResourceSize)
			if err != nil {
				return nil, err
			}
			doc.resources[name] = b
		case isStyleEntry(name):
			b, err := readEntry(f, cfg.limits.MaxStyleSize)
			if err != nil {
				return nil, err
			}
			if !utf8.Valid(b) {
				return nil, fmt.Errorf("%w: style entry %q is not valid UTF-8", ErrFormat, name)
			}
			doc.styles[name] = string(b)
		}
		// Everything else (metadata entries, directory markers, unrecognized
		// names) is skipped.
	}

	// The built-in fallbacks must exist even when the archive was written by
	// another tool that omitted them.
	if _, ok := doc.contents[DefaultIndexPath]; !ok {
		doc.contents[DefaultIndexPath] = noSectionHTML
	}
	if _, ok := doc.resources[DefaultCoverPath]; !ok {
		doc.resources[DefaultCoverPath] = append([]byte(nil), noCoverJPG...)
	}

	return doc, nil
}

// Classification rules for payload entries. The `.xhtml` rule is deliberately
// prefix-independent; the two fallback paths under default/ are admitted by
// name so they survive a round trip.

func isContentEntry(name string) bool {
	if strings.HasPrefix(name, contentPrefix) && strings.HasSuffix(name, contentExt) {
		return true
	}
	if strings.HasSuffix(name, xhtmlExt) {
		return true
	}
	return name == DefaultIndexPath
}

func isResourceEntry(name string) bool {
	if strings.HasPrefix(name, resourcePrefix) &&
		(strings.HasSuffix(name, jpegExt) || strings.HasSuffix(name, pngExt)) {
		return true
	}
	return name == DefaultCoverPath
}

func isStyleEntry(name string) bool {
	return strings.HasPrefix(name, stylePrefix) && strings.HasSuffix(name, styleExt)
}

// readMetadata decodes one of the four required JSON entries into out.
func readMetadata(byName map[string]*zip.File, name string, max uint64, out any) error {
	f, ok := byName[name]
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrFormat, name)
	}
	b, err := readEntry(f, max)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	return nil
}

// readEntry reads one archive entry, enforcing max on the declared size and
// verifying the declaration against the bytes actually present.
func readEntry(f *zip.File, max uint64) ([]byte, error) {
	if f.UncompressedSize64 > max {
		return nil, fmt.Errorf("%w: entry %q declares %d bytes", ErrLimitExceeded, f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("fobz: open entry %q: %w", f.Name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, int64(f.UncompressedSize64)+1))
	if err != nil {
		return nil, fmt.Errorf("fobz: read entry %q: %w", f.Name, err)
	}
	if uint64(len(b)) > f.UncompressedSize64 {
		return nil, fmt.Errorf("%w: entry %q larger than declared", ErrFormat, f.Name)
	}
	return b, nil
}
