package fobz

import (
	"reflect"
	"testing"
)

func TestLimits_WithDefaults(t *testing.T) {
	if got := (Limits{}).withDefaults(); !reflect.DeepEqual(got, defaultLimits()) {
		t.Fatalf("zero limits: %#v", got)
	}
	l := Limits{MaxEntries: 3}.withDefaults()
	if l.MaxEntries != 3 {
		t.Fatalf("override lost: %d", l.MaxEntries)
	}
	if l.MaxContentSize != defaultLimits().MaxContentSize {
		t.Fatalf("default not filled: %d", l.MaxContentSize)
	}
}

func TestValidateArchivePath(t *testing.T) {
	valid := []string{
		"contents/a.html",
		"default/no_section.html",
		"resources/sub/dir/pic.png",
		"a.html",
	}
	for _, p := range valid {
		if err := validateArchivePath(p); err != nil {
			t.Errorf("validateArchivePath(%q) = %v", p, err)
		}
	}
	invalid := []string{
		"",
		"   ",
		"/abs.html",
		"a\\b.html",
		"contents/../a.html",
		"../a.html",
		"..",
		".",
		"contents//a.html",
		"contents/./a.html",
	}
	for _, p := range invalid {
		if err := validateArchivePath(p); err == nil {
			t.Errorf("validateArchivePath(%q) accepted", p)
		}
	}
}

func TestValidateDocument_StyleChecks(t *testing.T) {
	doc := New("T", "A", "D", nil)
	doc.styles["styles/bad.css"] = string([]byte{0xFF})
	if err := validateDocument(doc, defaultLimits()); err == nil {
		t.Fatal("expected error for invalid UTF-8 style")
	}

	doc = New("T", "A", "D", nil)
	doc.styles["styles/big.css"] = "body { margin: 0 }"
	l := defaultLimits()
	l.MaxStyleSize = 1
	if err := validateDocument(doc, l); err == nil {
		t.Fatal("expected error for oversized style")
	}
}

func TestValidateDocument_ResourceLimit(t *testing.T) {
	doc := New("T", "A", "D", nil)
	l := defaultLimits()
	l.MaxResourceSize = 1 // fallback cover exceeds this
	if err := validateDocument(doc, l); err == nil {
		t.Fatal("expected error for oversized resource")
	}
}
