package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	yaml "gopkg.in/yaml.v2"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// EncodeFrontMatter serializes the front-matter back into a delimited YAML
// header followed by the Markdown body. Recognized fields keep a stable order
// so a parse/encode cycle round-trips cleanly.
func EncodeFrontMatter(fm interfaces.FrontMatter, body []byte) ([]byte, error) {
	env := encodeEnvelope{
		Title:   fm.Title,
		Slug:    fm.Slug,
		Summary: fm.Summary,
		Status:  statusForEncoding(fm.Status),
		Tags:    append([]string(nil), fm.Tags...),
		Hidden:  fm.Hidden,
		Custom:  fm.Custom,
	}
	if !fm.Date.IsZero() {
		env.Date = fm.Date.Format("2006-01-02")
	}

	header, err := yaml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Summary     string         `yaml:"summary"`
	Excerpt     string         `yaml:"excerpt"`
	Description string         `yaml:"description"`
	Status      string         `yaml:"status"`
	Date        flexibleDate   `yaml:"date"`
	Hidden      bool           `yaml:"hidden"`
	Tags        tagList        `yaml:"tags"`
	Custom      map[string]any `yaml:",inline"`
}

type encodeEnvelope struct {
	Title   string         `yaml:"title,omitempty"`
	Date    string         `yaml:"date,omitempty"`
	Summary string         `yaml:"summary,omitempty"`
	Hidden  bool           `yaml:"hidden"`
	Slug    string         `yaml:"slug,omitempty"`
	Status  string         `yaml:"status,omitempty"`
	Tags    []string       `yaml:"tags,omitempty"`
	Custom  map[string]any `yaml:",inline"`
}

// tagList accepts either a YAML sequence or a single comma-separated scalar.
type tagList []string

func (t *tagList) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = normalizeTags(list)
		return nil
	}

	var scalar string
	if err := unmarshal(&scalar); err != nil {
		return err
	}
	*t = normalizeTags(strings.Split(scalar, ","))
	return nil
}

func normalizeTags(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// flexibleDate accepts native YAML timestamps as well as common date strings.
type flexibleDate struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func (d *flexibleDate) UnmarshalYAML(unmarshal func(any) error) error {
	var ts time.Time
	if err := unmarshal(&ts); err == nil {
		d.Time = ts
		return nil
	}

	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			d.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("frontmatter: unsupported date value %q", raw)
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	summary := firstNonEmpty(env.Summary, env.Excerpt, env.Description)
	status := strings.ToLower(strings.TrimSpace(env.Status))
	if status == "" {
		status = "published"
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if summary != "" {
		raw["summary"] = summary
	}
	raw["status"] = status
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date.Time
	}
	raw["hidden"] = env.Hidden

	return interfaces.FrontMatter{
		Title:   env.Title,
		Slug:    env.Slug,
		Summary: summary,
		Status:  status,
		Date:    env.Date.Time,
		Hidden:  env.Hidden,
		Tags:    append([]string(nil), env.Tags...),
		Custom:  cloneMap(env.Custom),
		Raw:     raw,
	}
}

func statusForEncoding(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "published" {
		return ""
	}
	return status
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
