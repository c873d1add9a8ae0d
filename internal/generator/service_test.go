package generator

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"

	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/internal/theme"
)

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"2024-01-05-hello-world.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Hello World\ndate: 2024-01-05\nsummary: Greetings.\ntags:\n  - go\n---\nFirst post body.\n"),
		},
		"2024-02-10-second.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Second Post\ndate: 2024-02-10\ntags: go, web\n---\n## Heading\n\nSecond body.\n"),
		},
		"secret.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Secret\ndate: 2024-03-01\nhidden: true\n---\nNot published.\n"),
		},
		"draft.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Draft Post\ndate: 2024-03-05\nstatus: draft\n---\nWork in progress.\n"),
		},
		"about.md": &fstest.MapFile{
			Data: []byte("---\ntitle: About\nhidden: true\n---\nWho writes this.\n"),
		},
		"404.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Not Found\n---\nNothing here.\n"),
		},
	}
}

func newTestGenerator(tb testing.TB, content fstest.MapFS, output afero.Fs) *Service {
	tb.Helper()

	source := markdown.NewServiceWithFS(content, markdown.Config{Pattern: "*.md", Recursive: true}, nil)

	th, err := theme.Load(theme.Config{})
	if err != nil {
		tb.Fatalf("theme.Load: %v", err)
	}

	svc, err := NewService(Config{
		OutputDir:       "public",
		BaseURL:         "https://example.com",
		BlogTitle:       "Example Blog",
		BlogDescription: "Notes",
		BlogAuthor:      "alice",
		Language:        "en",
		Workers:         2,
		Incremental:     true,
		GenerateSitemap: true,
		GenerateRobots:  true,
		GenerateFeed:    true,
	}, Dependencies{
		Source: source,
		Theme:  th,
		Output: output,
	})
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}

func readOutput(tb testing.TB, fs afero.Fs, path string) string {
	tb.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func exists(fs afero.Fs, path string) bool {
	ok, _ := afero.Exists(fs, path)
	return ok
}

func TestBuildProducesSiteTree(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Two visible posts, one draft page, about, and 404.
	if result.PagesBuilt != 5 {
		t.Fatalf("expected 5 pages built, got %d (%#v)", result.PagesBuilt, result.Diagnostics)
	}

	for _, path := range []string{
		"public/posts/hello-world/index.html",
		"public/posts/second/index.html",
		"public/posts/draft/index.html",
		"public/about/index.html",
		"public/404.html",
		"public/index.html",
		"public/archive/index.html",
		"public/tags/index.html",
		"public/tags/go/index.html",
		"public/tags/web/index.html",
		"public/rss.xml",
		"public/feed.atom.xml",
		"public/sitemap.xml",
		"public/robots.txt",
		"public/.sitegen-manifest.json",
	} {
		if !exists(output, path) {
			t.Fatalf("expected %s to exist", path)
		}
	}

	if exists(output, "public/posts/secret/index.html") {
		t.Fatalf("expected hidden post to produce no output")
	}
}

func TestBuildHiddenStaysOutOfListings(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	index := readOutput(t, output, "public/index.html")
	if strings.Contains(index, "Secret") || strings.Contains(index, "Draft Post") {
		t.Fatalf("expected hidden and draft posts out of the index:\n%s", index)
	}
	if !strings.Contains(index, "Hello World") || !strings.Contains(index, "Second Post") {
		t.Fatalf("expected visible posts on the index:\n%s", index)
	}

	rss := readOutput(t, output, "public/rss.xml")
	if strings.Contains(rss, "Secret") || strings.Contains(rss, "Draft Post") {
		t.Fatalf("expected hidden and draft posts out of the feed:\n%s", rss)
	}

	sitemap := readOutput(t, output, "public/sitemap.xml")
	if strings.Contains(sitemap, "secret") || strings.Contains(sitemap, "draft") {
		t.Fatalf("expected hidden and draft posts out of the sitemap:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "https://example.com/about/") {
		t.Fatalf("expected about entry in sitemap:\n%s", sitemap)
	}
}

func TestBuildPostPageContent(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	page := readOutput(t, output, "public/posts/second/index.html")
	if !strings.Contains(page, "Second body.") {
		t.Fatalf("expected rendered body:\n%s", page)
	}
	if !strings.Contains(page, `"@type": "Article"`) {
		t.Fatalf("expected JSON-LD article schema:\n%s", page)
	}
	// Newest-first: second has no prev, next points at hello-world.
	if !strings.Contains(page, "/posts/hello-world/") {
		t.Fatalf("expected nav link to older post:\n%s", page)
	}
	if !strings.Contains(page, `<link rel="canonical" href="https://example.com/posts/second/">`) {
		t.Fatalf("expected canonical link:\n%s", page)
	}
}

func TestBuildIncrementalSkipsUnchanged(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("first Build: %v", err)
	}

	second, err := newTestGenerator(t, testContent(), output).Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if second.PagesBuilt != 0 {
		t.Fatalf("expected no pages rebuilt, got %d", second.PagesBuilt)
	}
	if second.PagesSkipped != 5 {
		t.Fatalf("expected 5 pages skipped, got %d", second.PagesSkipped)
	}

	forced, err := newTestGenerator(t, testContent(), output).Build(context.Background(), BuildOptions{Force: true})
	if err != nil {
		t.Fatalf("forced Build: %v", err)
	}
	if forced.PagesBuilt != 5 {
		t.Fatalf("expected forced rebuild of 5 pages, got %d", forced.PagesBuilt)
	}
}

func TestBuildRemovesStaleOutputs(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if !exists(output, "public/posts/second/index.html") {
		t.Fatalf("expected second post output after first build")
	}

	content := testContent()
	delete(content, "2024-02-10-second.md")

	result, err := newTestGenerator(t, content, output).Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if result.StaleRemoved != 1 {
		t.Fatalf("expected 1 stale output removed, got %d", result.StaleRemoved)
	}
	if exists(output, "public/posts/second/index.html") {
		t.Fatalf("expected deleted post output removed")
	}
}

func TestBuildDryRun(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt == 0 {
		t.Fatalf("expected dry run to render pages")
	}
	if exists(output, "public/index.html") {
		t.Fatalf("expected dry run to write nothing")
	}
}

func TestBuildSlugFilter(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	result, err := svc.Build(context.Background(), BuildOptions{Slugs: []string{"hello-world"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("expected only the named slug built, got %d", result.PagesBuilt)
	}
	if !exists(output, "public/posts/hello-world/index.html") {
		t.Fatalf("expected hello-world output")
	}
	if exists(output, "public/posts/second/index.html") {
		t.Fatalf("expected other posts untouched")
	}
}

func TestClean(t *testing.T) {
	output := afero.NewMemMapFs()
	svc := newTestGenerator(t, testContent(), output)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := svc.Clean(context.Background()); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if exists(output, "public/index.html") {
		t.Fatalf("expected output tree removed")
	}
}
