package fobz

import _ "embed"

// DefaultIndexPath and DefaultCoverPath are the archive paths of the built-in
// fallback section and cover image present in every document.
const (
	DefaultIndexPath = "default/no_section.html"
	DefaultCoverPath = "default/no_cover.jpg"
)

// Fallback payloads compiled into the library, so a document is never empty of
// a default section and cover.

//go:embed default/no_section.html
var noSectionHTML string

//go:embed default/no_cover.jpg
var noCoverJPG []byte
