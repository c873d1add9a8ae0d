package generator

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/theme"
)

const baseTemplateName = "base.html"

// toHTML marks generator-built markup as safe for the layout template.
func toHTML(s string) template.HTML {
	return template.HTML(s)
}

// pageChrome carries per-build values shared by every rendered page.
type pageChrome struct {
	cssFilename string
	generatedAt time.Time
	buildFooter string
	themeVars   map[string]string
}

func (s *Service) basePageContext(chrome pageChrome) theme.PageContext {
	return theme.PageContext{
		BlogTitle:       s.cfg.BlogTitle,
		BlogDescription: s.cfg.BlogDescription,
		BlogAuthor:      s.cfg.BlogAuthor,
		Language:        s.cfg.Language,
		SiteRoot:        siteRoot(s.cfg.Subpath),
		CSSFilename:     chrome.cssFilename,
		CurrentYear:     chrome.generatedAt.Year(),
		FooterTimeInfo:  chrome.buildFooter,
		ThemeVars:       chrome.themeVars,
	}
}

// renderPost renders one post (or special page) into its final HTML.
func (s *Service) renderPost(post *site.Post, chrome pageChrome) renderOutcome {
	start := time.Now()
	route := internalURL(s.cfg.Subpath, post.Link)
	output := joinOutputPath(s.baseDir(), outputPathForLink(post.Link))

	diag := RenderDiagnostic{
		Slug:   post.Slug,
		Source: post.SourcePath,
		Route:  route,
	}

	pctx := s.basePageContext(chrome)
	pctx.PageTitle = post.Title
	pctx.CanonicalURL = canonicalURL(s.cfg.BaseURL, s.cfg.Subpath, post.Link)
	pctx.ContentHTML = template.HTML(post.HTML)
	pctx.FooterTimeInfo = footerTimeInfo(post.ModifiedAt, s.cfg.tzOffsetHours(), "Filesystem")

	switch post.Kind {
	case site.KindPost:
		pctx.PageID = "post"
		pctx.PostDate = post.DateFormatted
		pctx.PostTags = s.tagViews(post.Tags)
		pctx.TOCHTML = template.HTML(post.TOC)
		if post.Prev != nil {
			pctx.PrevNav = &theme.NavRef{Title: post.Prev.Title, Link: internalURL(s.cfg.Subpath, post.Prev.Link)}
		}
		if post.Next != nil {
			pctx.NextNav = &theme.NavRef{Title: post.Next.Title, Link: internalURL(s.cfg.Subpath, post.Next.Link)}
		}
		jsonLD, err := buildArticleJSONLD(s.cfg, post)
		if err != nil {
			diag.Duration = time.Since(start)
			diag.Err = err
			return renderOutcome{diagnostic: diag, err: err}
		}
		pctx.JSONLD = template.JS(jsonLD)
	case site.KindNotFound:
		pctx.PageID = "404"
		pctx.PageTitle = "404 - " + s.cfg.BlogTitle
	case site.KindAbout:
		pctx.PageID = "page"
	}

	html, err := s.deps.Renderer.RenderTemplate(baseTemplateName, pctx)
	diag.Duration = time.Since(start)
	if err != nil {
		diag.Err = fmt.Errorf("generator: render %s: %w", post.SourcePath, err)
		return renderOutcome{diagnostic: diag, err: diag.Err}
	}

	return renderOutcome{
		page: RenderedPage{
			Slug:     post.Slug,
			Kind:     post.Kind,
			Source:   post.SourcePath,
			Route:    route,
			Output:   output,
			HTML:     html,
			Hash:     s.pageHash(post),
			Checksum: computeHashFromString(html),
			Duration: diag.Duration,
		},
		diagnostic: diag,
	}
}

// renderListing renders one of the synthesized pages (index, archive, tags,
// tag, robots-adjacent HTML) through the shared layout.
func (s *Service) renderListing(pctx theme.PageContext) (string, error) {
	return s.deps.Renderer.RenderTemplate(baseTemplateName, pctx)
}

// pageHash identifies the inputs of one rendered post: source content plus
// the theme fingerprint. Navigation context is included since neighbouring
// posts appear on the page.
func (s *Service) pageHash(post *site.Post) string {
	var b strings.Builder
	b.WriteString(string(post.Checksum))
	b.WriteString("|")
	b.WriteString(s.themeHash)
	if post.Prev != nil {
		fmt.Fprintf(&b, "|prev:%s:%s", post.Prev.Title, post.Prev.Link)
	}
	if post.Next != nil {
		fmt.Fprintf(&b, "|next:%s:%s", post.Next.Title, post.Next.Link)
	}
	return computeHashFromString(b.String())
}
