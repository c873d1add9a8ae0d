package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-sitegen/internal/site"
)

type sitemapEntry struct {
	Location string
	LastMod  time.Time
	Priority string
}

// buildSitemap lists the fixed pages, the visible posts, and the tag pages
// with the priorities search engines should weigh them at.
func buildSitemap(cfg Config, posts []*site.Post, tags []site.TagGroup, hasAbout bool) string {
	base := baseURLWithFallback(cfg.BaseURL)

	entries := []sitemapEntry{
		{Location: base + internalURL(cfg.Subpath, "/"), Priority: "1.0"},
		{Location: base + internalURL(cfg.Subpath, "/archive"), Priority: "0.8"},
		{Location: base + internalURL(cfg.Subpath, "/tags"), Priority: "0.8"},
		{Location: base + internalURL(cfg.Subpath, "/404"), Priority: "0.1"},
		{Location: base + internalURL(cfg.Subpath, rssFileName), Priority: "0.1"},
	}
	if hasAbout {
		entries = append(entries, sitemapEntry{
			Location: base + internalURL(cfg.Subpath, "/about"),
			Priority: "0.8",
		})
	}

	seen := map[string]struct{}{}
	for _, entry := range entries {
		seen[entry.Location] = struct{}{}
	}

	for _, post := range posts {
		location := base + internalURL(cfg.Subpath, post.Link)
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		entries = append(entries, sitemapEntry{
			Location: location,
			LastMod:  post.Date,
			Priority: "0.6",
		})
	}

	for _, group := range tags {
		location := base + internalURL(cfg.Subpath, "tags/"+group.Tag.Slug)
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		entries = append(entries, sitemapEntry{
			Location: location,
			Priority: "0.5",
		})
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(entry.Location)))
		if !entry.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod.UTC().Format("2006-01-02")))
		}
		if entry.Priority != "" {
			builder.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", entry.Priority))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

func buildRobots(cfg Config) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	base := baseURLWithFallback(cfg.BaseURL)
	builder.WriteString(fmt.Sprintf("Sitemap: %s%s\n", base, internalURL(cfg.Subpath, sitemapFileName)))
	return builder.String()
}
