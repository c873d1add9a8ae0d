package generator

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/internal/theme"
)

// postView projects a post for listing templates, with links resolved to
// pretty URLs.
func (s *Service) postView(post *site.Post) theme.PostView {
	return theme.PostView{
		Title:         post.Title,
		Link:          internalURL(s.cfg.Subpath, post.Link),
		Summary:       post.Summary,
		DateFormatted: post.DateFormatted,
		Tags:          s.tagViews(post.Tags),
	}
}

func (s *Service) tagViews(tags []site.Tag) []theme.TagView {
	out := make([]theme.TagView, 0, len(tags))
	for _, tag := range tags {
		out = append(out, theme.TagView{
			Name: tag.Name,
			Slug: tag.Slug,
			Link: internalURL(s.cfg.Subpath, "tags/"+tag.Slug),
		})
	}
	return out
}

// buildArchiveHTML renders the year-grouped archive body. Markup matches the
// stylesheet's archive-page classes.
func (s *Service) buildArchiveHTML(groups []site.YearGroup) string {
	var b strings.Builder
	b.WriteString("<div class=\"archive-page\">\n")
	for _, group := range groups {
		fmt.Fprintf(&b, "<h2 class=\"archive-year\">%d <small>(%d)</small></h2>\n", group.Year, len(group.Posts))
		b.WriteString("<ul class=\"archive-list\">\n")
		for _, post := range group.Posts {
			link := internalURL(s.cfg.Subpath, post.Link)
			b.WriteString("<li class=\"archive-item\">")
			fmt.Fprintf(&b, "<span class=\"archive-date\">%s</span>", html.EscapeString(post.DateFormatted))
			fmt.Fprintf(&b, "<a class=\"archive-link\" href=\"%s\">%s</a>", html.EscapeString(link), html.EscapeString(post.Title))
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// buildTagsListHTML renders the all-tags body with post counts.
func (s *Service) buildTagsListHTML(groups []site.TagGroup) string {
	var b strings.Builder
	b.WriteString("<div class=\"tags-page\">\n")
	for _, group := range groups {
		link := internalURL(s.cfg.Subpath, "tags/"+group.Tag.Slug)
		b.WriteString("<span class=\"tag-item\">")
		fmt.Fprintf(&b, "<a href=\"%s\">%s</a> <span class=\"tag-count\">(%d)</span>",
			html.EscapeString(link), html.EscapeString(group.Tag.Name), len(group.Posts))
		b.WriteString("</span>\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// buildTagPageHTML renders the body of a single tag page.
func (s *Service) buildTagPageHTML(group site.TagGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"archive-page\">\n<h2 class=\"archive-year\">%s <small>(%d)</small></h2>\n",
		html.EscapeString(group.Tag.Name), len(group.Posts))
	b.WriteString("<ul class=\"archive-list\">\n")
	for _, post := range group.Posts {
		link := internalURL(s.cfg.Subpath, post.Link)
		b.WriteString("<li class=\"archive-item\">")
		fmt.Fprintf(&b, "<span class=\"archive-date\">%s</span>", html.EscapeString(post.DateFormatted))
		fmt.Fprintf(&b, "<a class=\"archive-link\" href=\"%s\">%s</a>", html.EscapeString(link), html.EscapeString(post.Title))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n</div>")
	return b.String()
}
