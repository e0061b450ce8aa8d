package fobz

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"testing"
)

func minimalMetadata() map[string][]byte {
	return map[string][]byte{
		manifestEntry: []byte(`{"version":"1.0","title":"t","author":"a","description":"d","tags":[],"index":"default/no_section.html","cover":"default/no_cover.jpg"}`),
		tocEntry:      []byte(`{"contents":[]}`),
		torEntry:      []byte(`{"resources":[]}`),
		tosEntry:      []byte(`{"styles":[]}`),
	}
}

func buildArchive(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeBytes(b []byte, opts ...ReadOption) (*Document, error) {
	return Decode(bytes.NewReader(b), int64(len(b)), opts...)
}

func TestDecode_MissingMetadataEntry(t *testing.T) {
	for _, missing := range []string{manifestEntry, tocEntry, torEntry, tosEntry} {
		t.Run(missing, func(t *testing.T) {
			entries := minimalMetadata()
			delete(entries, missing)
			_, err := decodeBytes(buildArchive(t, entries))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestDecode_MalformedManifest(t *testing.T) {
	entries := minimalMetadata()
	entries[manifestEntry] = []byte(`{not json`)
	_, err := decodeBytes(buildArchive(t, entries))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestDecode_ManifestMissingVersion(t *testing.T) {
	entries := minimalMetadata()
	entries[manifestEntry] = []byte(`{"title":"t","author":"a","description":"d","tags":[],"index":"x","cover":"y"}`)
	_, err := decodeBytes(buildArchive(t, entries))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestDecode_ManifestMissingRequiredField(t *testing.T) {
	full := map[string]any{
		"version":     "1.0",
		"title":       "t",
		"author":      "a",
		"description": "d",
		"tags":        []string{},
		"index":       "x",
		"cover":       "y",
	}
	for drop := range full {
		t.Run(drop, func(t *testing.T) {
			partial := make(map[string]any, len(full)-1)
			for k, v := range full {
				if k != drop {
					partial[k] = v
				}
			}
			b, err := json.Marshal(partial)
			if err != nil {
				t.Fatal(err)
			}
			entries := minimalMetadata()
			entries[manifestEntry] = b
			_, err = decodeBytes(buildArchive(t, entries))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestDecode_TableRecordMissingRequiredField(t *testing.T) {
	cases := []struct {
		name  string
		entry string
		body  string
	}{
		{"toc path", tocEntry, `{"contents":[{"title":"no path"}]}`},
		{"toc title", tocEntry, `{"contents":[{"path":"contents/a.html"}]}`},
		{"tor path", torEntry, `{"resources":[{"name":"no path"}]}`},
		{"tor name", torEntry, `{"resources":[{"path":"resources/p.png"}]}`},
		{"tos path", tosEntry, `{"styles":[{}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entries := minimalMetadata()
			entries[tc.entry] = []byte(tc.body)
			_, err := decodeBytes(buildArchive(t, entries))
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestDecode_ManifestMistypedField(t *testing.T) {
	entries := minimalMetadata()
	entries[manifestEntry] = []byte(`{"version":"1.0","title":42,"author":"a","description":"d","tags":[],"index":"x","cover":"y"}`)
	_, err := decodeBytes(buildArchive(t, entries))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestDecode_TableWrongWrapperKey(t *testing.T) {
	entries := minimalMetadata()
	entries[tocEntry] = []byte(`{"sections":[]}`)
	_, err := decodeBytes(buildArchive(t, entries))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestDecode_ClassificationBoundary(t *testing.T) {
	entries := minimalMetadata()
	entries["contents/ch1.html"] = []byte("<p>ch1</p>")
	entries["contents/notes.xhtml"] = []byte("<p>notes</p>")
	entries["other/notes.xhtml"] = []byte("<p>elsewhere</p>") // .xhtml is admitted regardless of prefix
	entries["other/skip.html"] = []byte("<p>skip</p>")        // .html outside contents/ is not
	entries["contents/skip.txt"] = []byte("plain")
	entries["resources/pic.png"] = []byte{0x89, 0x50}
	entries["resources/pic.jpg"] = []byte{0xFF, 0xD8}
	entries["resources/skip.gif"] = []byte{0x47}
	entries["other/skip.png"] = []byte{0x89}
	entries["styles/main.css"] = []byte("p{}")
	entries["other/skip.css"] = []byte("q{}")
	entries["readme.txt"] = []byte("ignored")

	doc, err := decodeBytes(buildArchive(t, entries))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	wantContents := []string{"contents/ch1.html", "contents/notes.xhtml", "other/notes.xhtml", DefaultIndexPath}
	for _, p := range wantContents {
		if _, ok := doc.contents[p]; !ok {
			t.Errorf("content %q not admitted", p)
		}
	}
	for _, p := range []string{"other/skip.html", "contents/skip.txt", "readme.txt"} {
		if _, ok := doc.contents[p]; ok {
			t.Errorf("content %q admitted unexpectedly", p)
		}
	}
	if len(doc.contents) != len(wantContents) {
		t.Errorf("contents = %v", doc.Contents())
	}

	wantResources := []string{"resources/pic.png", "resources/pic.jpg", DefaultCoverPath}
	for _, p := range wantResources {
		if _, ok := doc.resources[p]; !ok {
			t.Errorf("resource %q not admitted", p)
		}
	}
	if len(doc.resources) != len(wantResources) {
		t.Errorf("resources = %v", doc.Resources())
	}

	if _, ok := doc.styles["styles/main.css"]; !ok {
		t.Error("style not admitted")
	}
	if len(doc.styles) != 1 {
		t.Errorf("styles = %v", doc.Styles())
	}
}

func TestDecode_SentinelEntriesPreserved(t *testing.T) {
	entries := minimalMetadata()
	entries[DefaultIndexPath] = []byte("<p>custom fallback</p>")
	entries[DefaultCoverPath] = []byte{0xFF, 0xD8, 0xFF}

	doc, err := decodeBytes(buildArchive(t, entries))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// Archive bytes win over the embedded defaults.
	if doc.contents[DefaultIndexPath] != "<p>custom fallback</p>" {
		t.Fatalf("fallback section replaced: %q", doc.contents[DefaultIndexPath])
	}
	if !bytes.Equal(doc.resources[DefaultCoverPath], []byte{0xFF, 0xD8, 0xFF}) {
		t.Fatalf("fallback cover replaced: %v", doc.resources[DefaultCoverPath])
	}
}

func TestDecode_SentinelsSeededWhenAbsent(t *testing.T) {
	doc, err := decodeBytes(buildArchive(t, minimalMetadata()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.contents[DefaultIndexPath] != noSectionHTML {
		t.Fatal("fallback section not seeded")
	}
	if !bytes.Equal(doc.resources[DefaultCoverPath], noCoverJPG) {
		t.Fatal("fallback cover not seeded")
	}
}

func TestDecode_DirectoryMarkersSkipped(t *testing.T) {
	entries := minimalMetadata()
	entries["contents/"] = nil
	entries["resources/"] = nil
	entries["styles/"] = nil
	entries["default/"] = nil
	doc, err := decodeBytes(buildArchive(t, entries))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// Only the seeded sentinels.
	if len(doc.contents) != 1 || len(doc.resources) != 1 || len(doc.styles) != 0 {
		t.Fatalf("directory markers classified: %d/%d/%d", len(doc.contents), len(doc.resources), len(doc.styles))
	}
}

func TestDecode_NotAnArchive(t *testing.T) {
	_, err := decodeBytes([]byte("this is not a zip file at all"))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDecode_InvalidUTF8Content(t *testing.T) {
	entries := minimalMetadata()
	entries["contents/bad.html"] = []byte{0xFF, 0xFE, 0xFD}
	_, err := decodeBytes(buildArchive(t, entries))
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestDecode_EntryCountLimit(t *testing.T) {
	_, err := decodeBytes(buildArchive(t, minimalMetadata()), WithReadLimits(Limits{MaxEntries: 1}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_MetadataSizeLimit(t *testing.T) {
	_, err := decodeBytes(buildArchive(t, minimalMetadata()), WithReadLimits(Limits{MaxMetadataLen: 1}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_ContentSizeLimit(t *testing.T) {
	entries := minimalMetadata()
	entries["contents/big.html"] = bytes.Repeat([]byte("a"), 64)
	_, err := decodeBytes(buildArchive(t, entries), WithReadLimits(Limits{MaxContentSize: 8}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestDecode_TableRecordWithoutPayloadTolerated(t *testing.T) {
	entries := minimalMetadata()
	entries[tocEntry] = []byte(`{"contents":[{"path":"contents/gone.html","title":"Gone"}]}`)
	doc, err := decodeBytes(buildArchive(t, entries))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := doc.GetContentInfo("contents/gone.html"); !ok {
		t.Fatal("record should be present")
	}
	if _, _, ok := doc.GetContent("contents/gone.html"); ok {
		t.Fatal("paired read should fail for missing payload")
	}
}
