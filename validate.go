package fobz

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// validateDocument checks a document before it is written. Decode applies only
// the resource limits; index records pointing at absent payloads are tolerated
// until queried.
func validateDocument(doc *Document, limits Limits) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrValidation)
	}
	if strings.TrimSpace(doc.manifest.Version) == "" {
		return fmt.Errorf("%w: manifest version is empty", ErrValidation)
	}
	total := len(doc.contents) + len(doc.resources) + len(doc.styles)
	if total > limits.MaxEntries {
		return fmt.Errorf("%w: %d payload entries", ErrLimitExceeded, total)
	}
	for p, content := range doc.contents {
		if err := validateArchivePath(p); err != nil {
			return fmt.Errorf("%w: content %q: %v", ErrValidation, p, err)
		}
		if !utf8.ValidString(content) {
			return fmt.Errorf("%w: content %q is not valid UTF-8", ErrValidation, p)
		}
		if uint64(len(content)) > limits.MaxContentSize {
			return fmt.Errorf("%w: content %q too large", ErrLimitExceeded, p)
		}
	}
	for p, data := range doc.resources {
		if err := validateArchivePath(p); err != nil {
			return fmt.Errorf("%w: resource %q: %v", ErrValidation, p, err)
		}
		if uint64(len(data)) > limits.MaxResourceSize {
			return fmt.Errorf("%w: resource %q too large", ErrLimitExceeded, p)
		}
	}
	for p, style := range doc.styles {
		if err := validateArchivePath(p); err != nil {
			return fmt.Errorf("%w: style %q: %v", ErrValidation, p, err)
		}
		if !utf8.ValidString(style) {
			return fmt.Errorf("%w: style %q is not valid UTF-8", ErrValidation, p)
		}
		if uint64(len(style)) > limits.MaxStyleSize {
			return fmt.Errorf("%w: style %q too large", ErrLimitExceeded, p)
		}
	}
	for _, rec := range doc.toc.Sections() {
		if err := validateArchivePath(rec.Path); err != nil {
			return fmt.Errorf("%w: toc record %q: %v", ErrValidation, rec.Path, err)
		}
	}
	for _, rec := range doc.tor.Resources() {
		if err := validateArchivePath(rec.Path); err != nil {
			return fmt.Errorf("%w: tor record %q: %v", ErrValidation, rec.Path, err)
		}
	}
	for _, rec := range doc.tos.Styles() {
		if err := validateArchivePath(rec.Path); err != nil {
			return fmt.Errorf("%w: tos record %q: %v", ErrValidation, rec.Path, err)
		}
	}
	return nil
}

// validateArchivePath rejects entry names that would escape or alias paths
// when the archive is unpacked.
func validateArchivePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(p, "/") {
		return fmt.Errorf("path must not be absolute")
	}
	if strings.Contains(p, "\\") {
		return fmt.Errorf("path must use forward slashes")
	}
	clean := path.Clean(p)
	if clean != p {
		return fmt.Errorf("path must be normalized: %q", clean)
	}
	if clean == "." {
		return fmt.Errorf("path must not be current directory")
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path must not escape")
	}
	return nil
}
