package generator

import (
	"strings"
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	manifest := newBuildManifest()
	manifest.GeneratedAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	manifest.Listing = "abc123"
	manifest.Theme = map[string]string{"style.css": "deadbeef"}
	manifest.setPage(manifestPage{
		Source: "posts/hello.md",
		Slug:   "hello",
		Link:   "posts/hello.html",
		Output: "public/posts/hello/index.html",
		Hash:   "h1",
	})

	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	entry, ok := parsed.lookupPage("posts/hello.md")
	if !ok {
		t.Fatalf("expected page entry after round trip")
	}
	if entry.Link != "posts/hello.html" || entry.Hash != "h1" {
		t.Fatalf("unexpected entry %#v", entry)
	}
	if parsed.Listing != "abc123" {
		t.Fatalf("expected listing fingerprint kept, got %q", parsed.Listing)
	}
}

func TestManifestDeterministicMarshal(t *testing.T) {
	build := func() []byte {
		manifest := newBuildManifest()
		manifest.setPage(manifestPage{Source: "b.md", Slug: "b"})
		manifest.setPage(manifestPage{Source: "a.md", Slug: "a"})
		data, err := manifest.marshal()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return data
	}

	first := string(build())
	second := string(build())
	if first != second {
		t.Fatalf("expected deterministic manifest output")
	}
	if strings.Index(first, `"a.md"`) > strings.Index(first, `"b.md"`) {
		t.Fatalf("expected entries sorted by source:\n%s", first)
	}
}

func TestShouldSkipPage(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{
		Source: "posts/hello.md",
		Hash:   "h1",
		Output: "public/posts/hello/index.html",
	})

	if !manifest.shouldSkipPage("posts/hello.md", "h1", "public/posts/hello/index.html") {
		t.Fatalf("expected unchanged page skipped")
	}
	if manifest.shouldSkipPage("posts/hello.md", "h2", "public/posts/hello/index.html") {
		t.Fatalf("expected changed hash to force rebuild")
	}
	if manifest.shouldSkipPage("posts/hello.md", "h1", "public/posts/renamed/index.html") {
		t.Fatalf("expected moved output to force rebuild")
	}
	if manifest.shouldSkipPage("posts/unknown.md", "h1", "x") {
		t.Fatalf("expected unknown source to force rebuild")
	}
}

func TestThemeChanged(t *testing.T) {
	manifest := newBuildManifest()
	manifest.Theme = map[string]string{"style.css": "v1", "templates/base.html": "v1"}

	same := map[string]string{"style.css": "v1", "templates/base.html": "v1"}
	if manifest.themeChanged(same) {
		t.Fatalf("expected identical fingerprint to report unchanged")
	}

	edited := map[string]string{"style.css": "v2", "templates/base.html": "v1"}
	if !manifest.themeChanged(edited) {
		t.Fatalf("expected edited stylesheet to report changed")
	}

	extra := map[string]string{"style.css": "v1", "templates/base.html": "v1", "templates/new.html": "v1"}
	if !manifest.themeChanged(extra) {
		t.Fatalf("expected added template to report changed")
	}
}

func TestStaleOutputs(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{Source: "keep.md", Link: "posts/keep.html", Output: "public/posts/keep/index.html"})
	manifest.setPage(manifestPage{Source: "gone.md", Link: "posts/gone.html", Output: "public/posts/gone/index.html"})
	manifest.setPage(manifestPage{Source: "moved.md", Link: "posts/old-slug.html", Output: "public/posts/old-slug/index.html"})

	seen := map[string]string{
		"keep.md":  "posts/keep.html",
		"moved.md": "posts/new-slug.html",
	}

	stale := manifest.staleOutputs(seen)
	if len(stale) != 2 {
		t.Fatalf("expected 2 stale outputs, got %#v", stale)
	}
	if stale[0] != "public/posts/gone/index.html" || stale[1] != "public/posts/old-slug/index.html" {
		t.Fatalf("unexpected stale set %#v", stale)
	}
}

func TestListingFingerprint(t *testing.T) {
	a := []manifestPage{{Source: "a.md", Title: "A", Date: "2024-01-01"}}
	b := []manifestPage{{Source: "a.md", Title: "A edited", Date: "2024-01-01"}}

	if listingFingerprint(a) == listingFingerprint(b) {
		t.Fatalf("expected title edit to change listing fingerprint")
	}
	if listingFingerprint(a) != listingFingerprint(a) {
		t.Fatalf("expected fingerprint to be stable")
	}
}
