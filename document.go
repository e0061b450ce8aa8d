package fobz

import (
	"fmt"
	"strings"
)

// Document is the in-memory representation of a `.fobz` archive: one manifest,
// three index tables, and three payload maps keyed by archive path. The index
// tables carry display metadata and ordering; the payload maps carry the
// actual bytes. Add and Remove keep a table and its payload map in step.
//
// A Document is not safe for concurrent mutation; callers that share one must
// serialize access externally.
type Document struct {
	manifest Manifest
	toc      *TableOfContents
	tor      *TableOfResources
	tos      *TableOfStyles

	contents  map[string]string
	resources map[string][]byte
	styles    map[string]string
}

// New builds an empty document with the given metadata. The payload maps are
// seeded with the built-in fallback section and cover, which the manifest's
// Index and Cover fields point at until changed.
func New(title, author, description string, tags []string) *Document {
	if tags == nil {
		tags = []string{}
	}
	return &Document{
		manifest:  newManifest(title, author, description, tags),
		toc:       NewTableOfContents(),
		tor:       NewTableOfResources(),
		tos:       NewTableOfStyles(),
		contents:  map[string]string{DefaultIndexPath: noSectionHTML},
		resources: map[string][]byte{DefaultCoverPath: append([]byte(nil), noCoverJPG...)},
		styles:    map[string]string{},
	}
}

// Manifest returns the document's manifest for reading and mutation.
func (d *Document) Manifest() *Manifest { return &d.manifest }

// AddContent stores content under path and records it in the table of
// contents. The path must end in ".html"; otherwise ErrUnsupportedExtension is
// returned and the document is left unchanged. Adding an existing path
// replaces both the payload and its table record.
func (d *Document) AddContent(path, title, content string) error {
	if !strings.HasSuffix(path, contentExt) {
		return fmt.Errorf("%w: content path %q must end in %s", ErrUnsupportedExtension, path, contentExt)
	}
	d.contents[path] = content
	d.toc.Add(ContentInfo{Path: path, Title: title})
	return nil
}

// RemoveContent deletes the payload and table record for path. Absent paths
// are a no-op.
func (d *Document) RemoveContent(path string) {
	delete(d.contents, path)
	d.toc.Remove(path)
}

// AddResource stores data under path and records it in the table of
// resources. The path must end in ".jpg" or ".png".
func (d *Document) AddResource(path, name string, data []byte) error {
	if !strings.HasSuffix(path, jpegExt) && !strings.HasSuffix(path, pngExt) {
		return fmt.Errorf("%w: resource path %q must end in %s or %s", ErrUnsupportedExtension, path, jpegExt, pngExt)
	}
	d.resources[path] = data
	d.tor.Add(ResourceInfo{Path: path, Name: name})
	return nil
}

// RemoveResource deletes the payload and table record for path. Absent paths
// are a no-op.
func (d *Document) RemoveResource(path string) {
	delete(d.resources, path)
	d.tor.Remove(path)
}

// AddStyle stores a stylesheet under path and records it in the table of
// styles. The path must end in ".css".
func (d *Document) AddStyle(path, style string) error {
	if !strings.HasSuffix(path, styleExt) {
		return fmt.Errorf("%w: style path %q must end in %s", ErrUnsupportedExtension, path, styleExt)
	}
	d.styles[path] = style
	d.tos.Add(StyleInfo{Path: path})
	return nil
}

// RemoveStyle deletes the payload and table record for path. Absent paths are
// a no-op.
func (d *Document) RemoveStyle(path string) {
	delete(d.styles, path)
	d.tos.Remove(path)
}

// GetContentInfo returns the table-of-contents record for path.
func (d *Document) GetContentInfo(path string) (ContentInfo, bool) {
	return d.toc.Get(path)
}

// GetContent returns the table record and payload for path. Both must exist;
// a path present in only one of the two yields ok=false, never a partial
// result.
func (d *Document) GetContent(path string) (info ContentInfo, content string, ok bool) {
	info, ok = d.toc.Get(path)
	if !ok {
		return ContentInfo{}, "", false
	}
	content, ok = d.contents[path]
	if !ok {
		return ContentInfo{}, "", false
	}
	return info, content, true
}

// GetResourceInfo returns the table-of-resources record for path.
func (d *Document) GetResourceInfo(path string) (ResourceInfo, bool) {
	return d.tor.Get(path)
}

// GetResource returns the table record and payload bytes for path, with the
// same strict-consistency semantics as GetContent.
func (d *Document) GetResource(path string) (info ResourceInfo, data []byte, ok bool) {
	info, ok = d.tor.Get(path)
	if !ok {
		return ResourceInfo{}, nil, false
	}
	data, ok = d.resources[path]
	if !ok {
		return ResourceInfo{}, nil, false
	}
	return info, data, true
}

// GetStyleInfo returns the table-of-styles record for path.
func (d *Document) GetStyleInfo(path string) (StyleInfo, bool) {
	return d.tos.Get(path)
}

// GetStyle returns the table record and stylesheet for path, with the same
// strict-consistency semantics as GetContent.
func (d *Document) GetStyle(path string) (info StyleInfo, style string, ok bool) {
	info, ok = d.tos.Get(path)
	if !ok {
		return StyleInfo{}, "", false
	}
	style, ok = d.styles[path]
	if !ok {
		return StyleInfo{}, "", false
	}
	return info, style, true
}

// Sections returns the table-of-contents records in display order.
func (d *Document) Sections() []ContentInfo { return d.toc.Sections() }

// ResourceInfos returns the table-of-resources records in display order.
func (d *Document) ResourceInfos() []ResourceInfo { return d.tor.Resources() }

// StyleInfos returns the table-of-styles records in display order.
func (d *Document) StyleInfos() []StyleInfo { return d.tos.Styles() }

// Contents returns a copy of the content payload map.
func (d *Document) Contents() map[string]string {
	out := make(map[string]string, len(d.contents))
	for k, v := range d.contents {
		out[k] = v
	}
	return out
}

// Resources returns a copy of the resource payload map. The byte slices are
// shared with the document.
func (d *Document) Resources() map[string][]byte {
	out := make(map[string][]byte, len(d.resources))
	for k, v := range d.resources {
		out[k] = v
	}
	return out
}

// Styles returns a copy of the style payload map.
func (d *Document) Styles() map[string]string {
	out := make(map[string]string, len(d.styles))
	for k, v := range d.styles {
		out[k] = v
	}
	return out
}
