package fobz

const (
	// Extension is the canonical file extension; SaveTo appends it to output
	// paths that lack it.
	Extension = ".fobz"

	// FormatVersion is the format version tag written into new manifests.
	FormatVersion = "1.0"
)

// Fixed names of the required metadata entries.
const (
	manifestEntry = "manifest.json"
	tocEntry      = "toc.json"
	torEntry      = "tor.json"
	tosEntry      = "tos.json"
)

// Payload class prefixes inside the archive.
const (
	contentPrefix  = "contents/"
	resourcePrefix = "resources/"
	stylePrefix    = "styles/"
	defaultPrefix  = "default/"
)

// Accepted payload extensions per class.
const (
	contentExt = ".html"
	xhtmlExt   = ".xhtml"
	jpegExt    = ".jpg"
	pngExt     = ".png"
	styleExt   = ".css"
)
