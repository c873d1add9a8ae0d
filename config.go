package sitegen

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SiteConfig describes the published site identity.
type SiteConfig struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Language    string `json:"language"`
	// BaseURL is the absolute origin the site is served from, e.g.
	// "https://example.com". Feeds, sitemaps, and canonical URLs need it.
	BaseURL string `json:"base_url"`
	// Subpath is an optional path prefix when the site lives below the
	// domain root, e.g. "/blog".
	Subpath string `json:"subpath"`
}

// ContentConfig describes where source documents live.
type ContentConfig struct {
	Dir       string `json:"dir"`
	Pattern   string `json:"pattern"`
	Recursive bool   `json:"recursive"`
}

// MarkdownConfig controls the Markdown rendering pipeline.
type MarkdownConfig struct {
	Extensions   []string `json:"extensions"`
	HardWraps    bool     `json:"hard_wraps"`
	SafeMode     bool     `json:"safe_mode"`
	TOCBaseLevel int      `json:"toc_base_level"`
}

// ThemeConfig selects the template and stylesheet sources. All fields are
// optional; the embedded default theme is used when Path is empty.
type ThemeConfig struct {
	Path              string `json:"path"`
	Name              string `json:"name"`
	Variant           string `json:"variant"`
	CSSVariablePrefix string `json:"css_variable_prefix"`
}

// GeneratorConfig controls the build pipeline.
type GeneratorConfig struct {
	OutputDir           string `json:"output_dir"`
	StaticDir           string `json:"static_dir"`
	CNAMEFile           string `json:"cname_file"`
	Workers             int    `json:"workers"`
	Incremental         bool   `json:"incremental"`
	Sitemap             bool   `json:"sitemap"`
	Robots              bool   `json:"robots"`
	Feeds               bool   `json:"feeds"`
	IndexPageSize       int    `json:"index_page_size"`
	FeedSize            int    `json:"feed_size"`
	TimezoneOffsetHours int    `json:"timezone_offset_hours"`
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	// Provider picks the logging backend: "gologger" (default) or "noop".
	Provider  string   `json:"provider"`
	Level     string   `json:"level"`
	Format    string   `json:"format"`
	AddSource bool     `json:"add_source"`
	Focus     []string `json:"focus"`
}

// Config aggregates every tunable of the module.
type Config struct {
	Site      SiteConfig      `json:"site"`
	Content   ContentConfig   `json:"content"`
	Markdown  MarkdownConfig  `json:"markdown"`
	Theme     ThemeConfig     `json:"theme"`
	Generator GeneratorConfig `json:"generator"`
	Logging   LoggingConfig   `json:"logging"`
}

// DefaultConfig returns the configuration used when the host application does
// not override anything: content in ./content, output in ./public, incremental
// builds with feeds, sitemap, and robots enabled.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:    "My Blog",
			Language: "en",
		},
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Markdown: MarkdownConfig{
			TOCBaseLevel: 2,
		},
		Generator: GeneratorConfig{
			OutputDir:           "public",
			StaticDir:           "static",
			CNAMEFile:           "CNAME",
			Incremental:         true,
			Sitemap:             true,
			Robots:              true,
			Feeds:               true,
			IndexPageSize:       5,
			FeedSize:            10,
			TimezoneOffsetHours: 8,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate reports configuration errors before any build work starts.
func (c Config) Validate() error {
	return validation.Errors{
		"site":      c.Site.validate(),
		"content":   c.Content.validate(),
		"generator": c.Generator.validate(),
		"logging":   c.Logging.validate(),
	}.Filter()
}

func (c SiteConfig) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.By(absoluteURLWhenSet)),
		validation.Field(&c.Subpath, validation.By(relativeSubpath)),
	)
}

func (c ContentConfig) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
	)
}

func (c GeneratorConfig) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OutputDir, validation.Required, validation.By(containedPath)),
		validation.Field(&c.IndexPageSize, validation.Min(0)),
		validation.Field(&c.FeedSize, validation.Min(0)),
		validation.Field(&c.Workers, validation.Min(0)),
		validation.Field(&c.TimezoneOffsetHours, validation.Min(-12), validation.Max(14)),
	)
}

func (c LoggingConfig) validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Provider, validation.In("", "gologger", "noop")),
	)
}

func absoluteURLWhenSet(value any) error {
	raw, _ := value.(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return validation.NewError("sitegen.config.base_url_invalid", "base URL must be an absolute URL")
	}
	return nil
}

func relativeSubpath(value any) error {
	raw, _ := value.(string)
	if strings.Contains(raw, "..") {
		return validation.NewError("sitegen.config.subpath_invalid", "subpath must not traverse upwards")
	}
	return nil
}

func containedPath(value any) error {
	raw, _ := value.(string)
	if strings.Contains(raw, "..") {
		return validation.NewError("sitegen.config.path_escape", "path must not traverse upwards")
	}
	return nil
}
