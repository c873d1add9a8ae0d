package generator

import (
	"time"

	"github.com/goliatone/go-sitegen/internal/site"
)

// Config controls one generator instance.
type Config struct {
	// OutputDir is the directory the static tree is written into.
	OutputDir string
	// BaseURL is the absolute site origin, e.g. https://blog.example.com.
	BaseURL string
	// Subpath prefixes every internal URL when the site is hosted below the
	// domain root, e.g. "/blog" for project pages.
	Subpath string

	BlogTitle       string
	BlogDescription string
	BlogAuthor      string
	Language        string

	// StaticDir is an optional directory copied verbatim into the output.
	StaticDir string
	// CNAMEFile is an optional custom-domain file copied into the output root.
	CNAMEFile string

	// Workers bounds render concurrency. Zero selects NumCPU.
	Workers int
	// Incremental enables manifest-based skip of unchanged posts.
	Incremental bool

	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeed    bool

	// IndexPageSize caps the front-page listing. Zero means 5.
	IndexPageSize int
	// FeedSize caps feed items. Zero means 10.
	FeedSize int
	// TimezoneOffsetHours shifts footer timestamps. Zero means UTC+8.
	TimezoneOffsetHours int
}

const (
	defaultIndexPageSize = 5
	defaultFeedSize      = 10
	defaultTZOffsetHours = 8
)

func (c Config) indexPageSize() int {
	if c.IndexPageSize > 0 {
		return c.IndexPageSize
	}
	return defaultIndexPageSize
}

func (c Config) feedSize() int {
	if c.FeedSize > 0 {
		return c.FeedSize
	}
	return defaultFeedSize
}

func (c Config) tzOffsetHours() int {
	if c.TimezoneOffsetHours != 0 {
		return c.TimezoneOffsetHours
	}
	return defaultTZOffsetHours
}

// BuildOptions tune a single build run.
type BuildOptions struct {
	// Force disables incremental skipping for this run.
	Force bool
	// DryRun renders without writing any output.
	DryRun bool
	// Slugs restricts post rendering to the named slugs. Listing pages still
	// reflect the full collection.
	Slugs []string
}

// RenderedPage captures the rendered HTML output for a page.
type RenderedPage struct {
	Slug     string
	Kind     site.Kind
	Source   string
	Route    string
	Output   string
	HTML     string
	Hash     string
	Checksum string
	Duration time.Duration
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	Slug     string
	Source   string
	Route    string
	Duration time.Duration
	Skipped  bool
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}

// BuildResult summarizes a build run.
type BuildResult struct {
	PagesBuilt    int
	PagesSkipped  int
	ListingsBuilt int
	AssetsBuilt   int
	StaleRemoved  int
	DryRun        bool
	Duration      time.Duration
	Rendered      []RenderedPage
	Diagnostics   []RenderDiagnostic
	Errors        []error
}
