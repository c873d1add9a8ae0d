package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitegen/internal/site"
)

func TestBuildSitemap(t *testing.T) {
	cfg := Config{BaseURL: "https://example.com", Subpath: ""}
	posts := []*site.Post{
		{
			Kind: site.KindPost,
			Slug: "hello",
			Link: "posts/hello.html",
			Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	tags := []site.TagGroup{
		{Tag: site.Tag{Name: "Go", Slug: "go"}, Posts: posts},
	}

	sitemap := buildSitemap(cfg, posts, tags, true)

	checks := []struct {
		fragment string
		desc     string
	}{
		{"<loc>https://example.com/</loc>", "root"},
		{"<priority>1.0</priority>", "root priority"},
		{"<loc>https://example.com/archive/</loc>", "archive"},
		{"<loc>https://example.com/tags/</loc>", "tags index"},
		{"<loc>https://example.com/404</loc>", "404"},
		{"<loc>https://example.com/rss.xml</loc>", "rss"},
		{"<loc>https://example.com/about/</loc>", "about"},
		{"<loc>https://example.com/posts/hello/</loc>", "post"},
		{"<lastmod>2024-05-01</lastmod>", "post lastmod"},
		{"<loc>https://example.com/tags/go/</loc>", "tag page"},
		{"<priority>0.5</priority>", "tag priority"},
	}
	for _, check := range checks {
		if !strings.Contains(sitemap, check.fragment) {
			t.Fatalf("expected %s entry %q in sitemap:\n%s", check.desc, check.fragment, sitemap)
		}
	}
}

func TestBuildSitemap_NoAbout(t *testing.T) {
	sitemap := buildSitemap(Config{BaseURL: "https://example.com"}, nil, nil, false)
	if strings.Contains(sitemap, "/about/") {
		t.Fatalf("expected no about entry, got\n%s", sitemap)
	}
}

func TestFooterTimeInfo(t *testing.T) {
	ts := time.Date(2024, 3, 10, 16, 30, 0, 0, time.UTC)
	info := footerTimeInfo(ts, 8, "Filesystem")

	if !strings.Contains(info, "2024-03-11 00:30:00") {
		t.Fatalf("expected UTC+8 conversion, got %q", info)
	}
	if !strings.Contains(info, "(UTC+8 - Filesystem)") {
		t.Fatalf("expected zone and source suffix, got %q", info)
	}
}

func TestFooterTimeInfo_ZeroFallsBack(t *testing.T) {
	info := footerTimeInfo(time.Time{}, 8, "Filesystem")
	if !strings.Contains(info, "Fallback") {
		t.Fatalf("expected fallback source for zero time, got %q", info)
	}
}
