package fobz

import "encoding/json"

// Manifest is the document metadata stored as manifest.json.
//
// Index and Cover hold the archive paths of the default starting section and
// the cover image; new documents point them at the built-in fallbacks.
type Manifest struct {
	Version     string   `json:"version"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Index       string   `json:"index"`
	Cover       string   `json:"cover"`
}

// UnmarshalJSON rejects a manifest record missing any of its keys; all seven
// fields are required in manifest.json.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	err := requireFields(data, "version", "title", "author", "description", "tags", "index", "cover")
	if err != nil {
		return err
	}
	type plain Manifest
	return json.Unmarshal(data, (*plain)(m))
}

func newManifest(title, author, description string, tags []string) Manifest {
	return Manifest{
		Version:     FormatVersion,
		Title:       title,
		Author:      author,
		Description: description,
		Tags:        tags,
		Index:       DefaultIndexPath,
		Cover:       DefaultCoverPath,
	}
}

// AddTags appends tags in order. Duplicates are permitted; tag order is
// meaningful for display.
func (m *Manifest) AddTags(tags ...string) {
	m.Tags = append(m.Tags, tags...)
}

// RemoveTags removes every occurrence of the given tags, preserving the
// relative order of the survivors.
func (m *Manifest) RemoveTags(tags ...string) {
	if len(tags) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		drop[t] = struct{}{}
	}
	kept := m.Tags[:0]
	for _, t := range m.Tags {
		if _, ok := drop[t]; !ok {
			kept = append(kept, t)
		}
	}
	m.Tags = kept
}
