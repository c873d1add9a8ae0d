package site

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-sitegen/internal/slugs"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// Kind classifies how a document is published.
type Kind string

const (
	// KindPost is a regular dated entry rendered under posts/.
	KindPost Kind = "post"
	// KindAbout is the hidden about page rendered at about/index.html.
	KindAbout Kind = "about"
	// KindNotFound is the 404 page rendered at 404.html.
	KindNotFound Kind = "404"
)

// Tag pairs a display name with its URL slug.
type Tag struct {
	Name string
	Slug string
}

// PostRef is a lightweight pointer to an adjacent post for prev/next
// navigation.
type PostRef struct {
	Title string
	Link  string
}

// Post is the publishable unit derived from one content document.
type Post struct {
	// ID is a stable identifier derived from the source path.
	ID uuid.UUID
	// Kind classifies the output target for this document.
	Kind Kind
	// Slug is the URL segment for the post.
	Slug string
	// Title is the display title.
	Title string
	// Summary is the short description used on listings and feeds.
	Summary string
	// Status is the publication status, lowercased ("published", "draft", ...).
	Status string
	// Hidden reports the explicit front-matter flag.
	Hidden bool
	// Date is the publication date.
	Date time.Time
	// DateFormatted is Date rendered as YYYY-MM-DD.
	DateFormatted string
	// Tags are the post's labels with slugs for tag pages.
	Tags []Tag
	// Link is the site-relative output location, e.g. posts/my-slug.html.
	Link string
	// HTML is the rendered body.
	HTML []byte
	// TOC is the rendered table of contents, if any.
	TOC []byte
	// SourcePath is the content-root-relative path of the Markdown source.
	SourcePath string
	// Checksum is the SHA-256 digest of the raw source bytes.
	Checksum []byte
	// ModifiedAt is the source file modification time.
	ModifiedAt time.Time
	// Prev and Next point to adjacent visible posts, newest first.
	Prev *PostRef
	Next *PostRef
}

// Excluded reports whether the post stays out of listings, feeds, and the
// sitemap. Drafts count as hidden alongside the explicit flag.
func (p *Post) Excluded() bool {
	return p.Hidden || p.Status == "draft"
}

var titleCaser = cases.Title(language.Und)

// FromDocument derives a Post from a parsed document, filling in every field
// the front-matter left implicit. now supplies the fallback publication date.
func FromDocument(doc *interfaces.Document, now time.Time) *Post {
	fm := doc.FrontMatter

	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = slugs.FromFilename(doc.FilePath)
	} else {
		slug = slugs.Normalize(slug)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = titleCaser.String(strings.ReplaceAll(slug, "-", " "))
	}
	if title == "" {
		title = firstLine(doc.Body)
	}

	date := fm.Date
	if date.IsZero() {
		date = now
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	tags := make([]Tag, 0, len(fm.Tags))
	for _, name := range fm.Tags {
		tags = append(tags, Tag{Name: name, Slug: slugs.Unicode(name)})
	}

	kind := classify(doc.FilePath, slug, fm.Hidden)

	post := &Post{
		ID:            uuid.NewSHA1(uuid.NameSpaceURL, []byte(doc.FilePath)),
		Kind:          kind,
		Slug:          slug,
		Title:         title,
		Summary:       fm.Summary,
		Status:        fm.Status,
		Hidden:        fm.Hidden,
		Date:          date,
		DateFormatted: date.Format("2006-01-02"),
		Tags:          tags,
		HTML:          doc.BodyHTML,
		TOC:           doc.TOCHTML,
		SourcePath:    doc.FilePath,
		Checksum:      doc.Checksum,
		ModifiedAt:    doc.LastModified,
	}

	switch kind {
	case KindNotFound:
		post.Link = "404.html"
	case KindAbout:
		post.Link = "about.html"
	default:
		post.Link = path.Join("posts", slug+".html")
	}

	return post
}

// classify routes special documents to their dedicated outputs. The about
// page only gets special treatment when it is hidden; a visible about.md is
// an ordinary post.
func classify(filePath, slug string, hidden bool) Kind {
	base := path.Base(filePath)
	if slug == "404" || base == "404.md" {
		return KindNotFound
	}
	if hidden && (slug == "about" || base == "about.md") {
		return KindAbout
	}
	return KindPost
}

func firstLine(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line != "" {
			return line
		}
	}
	return ""
}
