package interfaces

import "time"

// FrontMatter captures the structured metadata header of a content document.
// Recognized keys are promoted to typed fields; everything else is preserved
// in Custom. Raw merges both views so callers can round-trip the header.
type FrontMatter struct {
	Title   string
	Slug    string
	Summary string
	Status  string
	Date    time.Time
	Hidden  bool
	Tags    []string
	Custom  map[string]any
	Raw     map[string]any
}

// Draft reports whether the document is explicitly marked as a draft.
func (fm FrontMatter) Draft() bool {
	return fm.Status == "draft"
}

// Document represents a parsed Markdown source file.
type Document struct {
	// FilePath is the slash-separated path relative to the content root.
	FilePath string
	// FrontMatter holds the parsed metadata header.
	FrontMatter FrontMatter
	// Body is the Markdown content without the front-matter delimiters.
	Body []byte
	// BodyHTML is the rendered HTML output. Empty until rendered.
	BodyHTML []byte
	// TOCHTML is the rendered table of contents. Empty until rendered.
	TOCHTML []byte
	// LastModified records the source file modification time.
	LastModified time.Time
	// Checksum is the SHA-256 digest of the raw source bytes.
	Checksum []byte
}

// ParseOptions controls Markdown rendering behaviour.
type ParseOptions struct {
	// Extensions enables goldmark extensions by name (gfm, tasklist, footnote, ...).
	Extensions []string
	// HardWraps renders newlines as <br> elements.
	HardWraps bool
	// SafeMode suppresses raw HTML passthrough.
	SafeMode bool
	// TOCBaseLevel promotes headings shallower than this level when building
	// the table of contents. Defaults to 2.
	TOCBaseLevel int
	// Enhance applies the HTML post-processing pass (lazy images, table wrappers).
	Enhance bool
}

// Heading describes a single document heading used to assemble the TOC.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// RenderResult carries the rendered HTML alongside collected headings.
type RenderResult struct {
	HTML     []byte
	Headings []Heading
}

// LoadOptions provide call-specific overrides for document discovery.
type LoadOptions struct {
	// Pattern overrides the configured filename glob.
	Pattern string
	// Recursive overrides the configured directory traversal mode.
	Recursive *bool
	// Parser overrides rendering options for the loaded documents.
	Parser ParseOptions
}

// MarkdownParser renders Markdown content into HTML.
type MarkdownParser interface {
	Parse(markdown []byte) (*RenderResult, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) (*RenderResult, error)
}
