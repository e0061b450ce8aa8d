package fobz

import (
	"encoding/json"
	"fmt"
)

// ContentInfo describes a single section in the table of contents.
type ContentInfo struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// ResourceInfo describes a single resource (e.g. an image). Name is the
// fallback display label used when the binary cannot be rendered.
type ResourceInfo struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// StyleInfo describes a single CSS stylesheet.
type StyleInfo struct {
	Path string `json:"path"`
}

func contentPath(c ContentInfo) string   { return c.Path }
func resourcePath(r ResourceInfo) string { return r.Path }
func stylePath(s StyleInfo) string       { return s.Path }

// Every key of a stored record is required; a record missing one is rejected
// rather than filled with a zero value.

func (c *ContentInfo) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "path", "title"); err != nil {
		return err
	}
	type plain ContentInfo
	return json.Unmarshal(data, (*plain)(c))
}

func (r *ResourceInfo) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "path", "name"); err != nil {
		return err
	}
	type plain ResourceInfo
	return json.Unmarshal(data, (*plain)(r))
}

func (s *StyleInfo) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "path"); err != nil {
		return err
	}
	type plain StyleInfo
	return json.Unmarshal(data, (*plain)(s))
}

// requireFields verifies that data is a JSON object carrying every named key.
func requireFields(data []byte, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, key := range keys {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("missing %q field", key)
		}
	}
	return nil
}

// pathIndex is an insertion-ordered collection of records keyed by archive
// path. Paths are unique; putting an existing path replaces the record in
// place, keeping its original position.
type pathIndex[T any] struct {
	keyOf   func(T) string
	records []T
	byPath  map[string]int
}

func newPathIndex[T any](keyOf func(T) string) pathIndex[T] {
	return pathIndex[T]{keyOf: keyOf, byPath: make(map[string]int)}
}

func (x *pathIndex[T]) get(path string) (T, bool) {
	if i, ok := x.byPath[path]; ok {
		return x.records[i], true
	}
	var zero T
	return zero, false
}

func (x *pathIndex[T]) put(rec T) {
	path := x.keyOf(rec)
	if i, ok := x.byPath[path]; ok {
		x.records[i] = rec
		return
	}
	x.byPath[path] = len(x.records)
	x.records = append(x.records, rec)
}

func (x *pathIndex[T]) remove(path string) {
	i, ok := x.byPath[path]
	if !ok {
		return
	}
	x.records = append(x.records[:i], x.records[i+1:]...)
	delete(x.byPath, path)
	for j := i; j < len(x.records); j++ {
		x.byPath[x.keyOf(x.records[j])] = j
	}
}

func (x *pathIndex[T]) all() []T {
	out := make([]T, len(x.records))
	copy(out, x.records)
	return out
}

func (x *pathIndex[T]) size() int { return len(x.records) }

// marshalRecords wraps the record list in a single-key JSON object, e.g.
// {"contents": [...]}.
func (x *pathIndex[T]) marshalRecords(key string) ([]byte, error) {
	recs := x.records
	if recs == nil {
		recs = []T{}
	}
	return json.Marshal(map[string][]T{key: recs})
}

// unmarshalRecords rebuilds the index from a wrapped record list. Duplicate
// paths in the stored list collapse onto the first occurrence's position.
func (x *pathIndex[T]) unmarshalRecords(key string, data []byte) error {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	raw, ok := wrapper[key]
	if !ok {
		return fmt.Errorf("missing %q field", key)
	}
	var recs []T
	if err := json.Unmarshal(raw, &recs); err != nil {
		return err
	}
	x.records = x.records[:0]
	if x.byPath == nil {
		x.byPath = make(map[string]int, len(recs))
	} else {
		clear(x.byPath)
	}
	for _, rec := range recs {
		x.put(rec)
	}
	return nil
}

// TableOfContents is the ordered index of document sections (toc.json).
// Insertion order is the canonical display order.
type TableOfContents struct {
	idx pathIndex[ContentInfo]
}

func NewTableOfContents() *TableOfContents {
	return &TableOfContents{idx: newPathIndex(contentPath)}
}

// Get returns the record stored for path.
func (t *TableOfContents) Get(path string) (ContentInfo, bool) { return t.idx.get(path) }

// Add inserts info, replacing any existing record with the same path in place.
func (t *TableOfContents) Add(info ContentInfo) { t.idx.put(info) }

// Remove deletes the record for path. Absent paths are a no-op.
func (t *TableOfContents) Remove(path string) { t.idx.remove(path) }

// Sections returns the records in insertion order.
func (t *TableOfContents) Sections() []ContentInfo { return t.idx.all() }

// Len returns the number of records.
func (t *TableOfContents) Len() int { return t.idx.size() }

func (t *TableOfContents) MarshalJSON() ([]byte, error) {
	return t.idx.marshalRecords("contents")
}

func (t *TableOfContents) UnmarshalJSON(data []byte) error {
	t.idx.keyOf = contentPath
	return t.idx.unmarshalRecords("contents", data)
}

// TableOfResources is the ordered index of document resources (tor.json).
type TableOfResources struct {
	idx pathIndex[ResourceInfo]
}

func NewTableOfResources() *TableOfResources {
	return &TableOfResources{idx: newPathIndex(resourcePath)}
}

func (t *TableOfResources) Get(path string) (ResourceInfo, bool) { return t.idx.get(path) }
func (t *TableOfResources) Add(info ResourceInfo)                { t.idx.put(info) }
func (t *TableOfResources) Remove(path string)                   { t.idx.remove(path) }

// Resources returns the records in insertion order.
func (t *TableOfResources) Resources() []ResourceInfo { return t.idx.all() }

func (t *TableOfResources) Len() int { return t.idx.size() }

func (t *TableOfResources) MarshalJSON() ([]byte, error) {
	return t.idx.marshalRecords("resources")
}

func (t *TableOfResources) UnmarshalJSON(data []byte) error {
	t.idx.keyOf = resourcePath
	return t.idx.unmarshalRecords("resources", data)
}

// TableOfStyles is the ordered index of document stylesheets (tos.json).
type TableOfStyles struct {
	idx pathIndex[StyleInfo]
}

func NewTableOfStyles() *TableOfStyles {
	return &TableOfStyles{idx: newPathIndex(stylePath)}
}

func (t *TableOfStyles) Get(path string) (StyleInfo, bool) { return t.idx.get(path) }
func (t *TableOfStyles) Add(info StyleInfo)                { t.idx.put(info) }
func (t *TableOfStyles) Remove(path string)                { t.idx.remove(path) }

// Styles returns the records in insertion order.
func (t *TableOfStyles) Styles() []StyleInfo { return t.idx.all() }

func (t *TableOfStyles) Len() int { return t.idx.size() }

func (t *TableOfStyles) MarshalJSON() ([]byte, error) {
	return t.idx.marshalRecords("styles")
}

func (t *TableOfStyles) UnmarshalJSON(data []byte) error {
	t.idx.keyOf = stylePath
	return t.idx.unmarshalRecords("styles", data)
}
