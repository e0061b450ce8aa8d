// Package fobz implements the FOBZ (`.fobz`) document container format.
//
// A `.fobz` file is a ZIP-based archive that bundles document metadata, a
// table of contents, a table of resources, a table of styles, and the
// corresponding payload files into a single portable document.
//
// # File Format Overview
//
// A `.fobz` archive consists of:
//   - `manifest.json`: document metadata (title, author, tags, entry points)
//   - `toc.json`: the table of contents, listing HTML sections
//   - `tor.json`: the table of resources, listing images
//   - `tos.json`: the table of styles, listing CSS stylesheets
//   - `contents/*.html` (and `*.xhtml` anywhere): UTF-8 section payloads
//   - `resources/*.jpg`, `resources/*.png`: binary resource payloads
//   - `styles/*.css`: UTF-8 stylesheet payloads
//   - `default/no_section.html`, `default/no_cover.jpg`: built-in fallbacks
//
// Entries are Deflate-compressed by default; Zstandard (WinZip method 93) is
// available as an opt-in write mode and is always accepted on read.
//
// # Basic Usage
//
// To create and write a document:
//
//	doc := fobz.New("My Book", "Jane Doe", "A short sample.", []string{"fiction"})
//	_ = doc.AddContent("contents/intro.html", "Introduction", "<h1>Hi</h1>")
//	err := doc.SaveTo("book") // writes book.fobz
//
// To read a document:
//
//	doc, err := fobz.Open("book.fobz")
//
// # Security Considerations
//
// Decoding enforces configurable [Limits] on entry counts and uncompressed
// payload sizes to protect against oversized allocations and decompression
// bombs. Declared entry sizes are verified against the bytes actually read.
package fobz
