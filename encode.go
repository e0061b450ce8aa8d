package fobz

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/flate"
)

// SaveTo writes the document to path as a `.fobz` archive, appending the
// extension if absent. Filesystem and container failures are returned wrapping
// the underlying error.
func (d *Document) SaveTo(path string, opts ...WriteOption) error {
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("fobz: create %s: %w", path, err)
	}
	if err := Encode(f, d, opts...); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("fobz: close %s: %w", path, err)
	}
	return nil
}

// Encode writes doc to w as a `.fobz` ZIP archive.
//
// The entry layout is fixed: the four metadata entries first (manifest.json,
// toc.json, tor.json, tos.json, pretty-printed JSON), then the directory
// markers (contents/, resources/, styles/, default/), then the content,
// resource, and style payloads, each under its stored path. Payload entries
// are written in sorted path order so the output is deterministic.
//
// The document is validated before writing: the manifest version must be set,
// every payload path must be a well-formed relative archive path, text
// payloads must be valid UTF-8, and sizes must fit the configured limits.
//
// By default every entry is Deflate-compressed. Use WriteOption functions to
// customize:
//   - WithCompression(comp): CompStore or CompZstd instead of CompDeflate
//   - WithCompressionLevel(level): tune the Deflate level
//   - WithWriteLimits(l): set custom size limits
func Encode(w io.Writer, doc *Document, opts ...WriteOption) error {
	cfg := writeConfig{
		limits:      defaultLimits(),
		compression: CompDeflate,
		level:       flate.DefaultCompression,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	if err := validateDocument(doc, cfg.limits); err != nil {
		return err
	}
	method, err := cfg.compression.method()
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	registerCompressors(zw, cfg.level)

	// Tags must serialize as an array even when a caller niled the slice out.
	man := doc.manifest
	if man.Tags == nil {
		man.Tags = []string{}
	}

	metadata := []struct {
		name string
		v    any
	}{
		{manifestEntry, &man},
		{tocEntry, doc.toc},
		{torEntry, doc.tor},
		{tosEntry, doc.tos},
	}
	for _, m := range metadata {
		b, err := json.MarshalIndent(m.v, "", "    ")
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("fobz: marshal %s: %w", m.name, err)
		}
		if err := writeEntry(zw, m.name, method, b); err != nil {
			_ = zw.Close()
			return err
		}
	}

	for _, dir := range []string{contentPrefix, resourcePrefix, stylePrefix, defaultPrefix} {
		if _, err := zw.CreateHeader(&zip.FileHeader{Name: dir, Method: zip.Store}); err != nil {
			_ = zw.Close()
			return fmt.Errorf("fobz: create directory %s: %w", dir, err)
		}
	}

	for _, p := range sortedKeys(doc.contents) {
		if err := writeEntry(zw, p, method, []byte(doc.contents[p])); err != nil {
			_ = zw.Close()
			return err
		}
	}
	for _, p := range sortedKeys(doc.resources) {
		if err := writeEntry(zw, p, method, doc.resources[p]); err != nil {
			_ = zw.Close()
			return err
		}
	}
	for _, p := range sortedKeys(doc.styles) {
		if err := writeEntry(zw, p, method, []byte(doc.styles[p])); err != nil {
			_ = zw.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("fobz: finalize archive: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, method uint16, data []byte) error {
	ew, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("fobz: create entry %q: %w", name, err)
	}
	if _, err := ew.Write(data); err != nil {
		return fmt.Errorf("fobz: write entry %q: %w", name, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
