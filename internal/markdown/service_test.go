package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "about.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.FrontMatter.Title != "About" {
		t.Fatalf("expected title About, got %q", doc.FrontMatter.Title)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
}

func TestServiceLoad_BuildsTOC(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "posts/2024-01-05-guide.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	toc := string(doc.TOCHTML)
	if !strings.Contains(toc, `<a href="#setup">Setup</a>`) {
		t.Fatalf("expected setup entry in TOC, got %s", toc)
	}
	if !strings.Contains(toc, `<a href="#usage">Usage</a>`) {
		t.Fatalf("expected usage entry in TOC, got %s", toc)
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if len(doc.BodyHTML) == 0 {
			t.Fatalf("expected rendered body for %s", doc.FilePath)
		}
		if len(doc.Checksum) == 0 {
			t.Fatalf("expected checksum set for %s", doc.FilePath)
		}
	}
}

func TestServiceLoadDirectory_NonRecursiveOverride(t *testing.T) {
	svc := newTestService(t, true)

	no := false
	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{
		Recursive: &no,
	})
	if err != nil {
		t.Fatalf("LoadDirectory override: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].FilePath != "about.md" {
		t.Fatalf("expected about.md, got %s", docs[0].FilePath)
	}
}

func TestServiceLoad_MalformedFrontMatterNamesFile(t *testing.T) {
	filesystem := fstest.MapFS{
		"posts/broken.md": &fstest.MapFile{
			Data: []byte("---\ntitle: [unclosed\n---\nbody\n"),
		},
	}
	svc := NewServiceWithFS(filesystem, Config{Pattern: "*.md", Recursive: true}, nil)

	_, err := svc.Load(context.Background(), "posts/broken.md", interfaces.LoadOptions{})
	if err == nil {
		t.Fatalf("expected error for malformed front-matter")
	}
	if !strings.Contains(err.Error(), "posts/broken.md") {
		t.Fatalf("expected error to name the file, got %v", err)
	}

	_, err = svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err == nil || !strings.Contains(err.Error(), "posts/broken.md") {
		t.Fatalf("expected directory load error to name the file, got %v", err)
	}
}

func TestServiceRender_MergesOptions(t *testing.T) {
	svc := newTestService(t, true)

	result, err := svc.Render(context.Background(), []byte(`<img src="x.png">`), interfaces.ParseOptions{
		Enhance: true,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(result.HTML), `loading="lazy"`) {
		t.Fatalf("expected enhance pass applied, got %s", string(result.HTML))
	}
}

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	filesystem := fstest.MapFS{
		"about.md": &fstest.MapFile{
			Data: []byte("---\ntitle: About\nhidden: true\n---\nWho we are.\n"),
		},
		"posts/2024-01-05-guide.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Guide\ndate: 2024-01-05\n---\n## Setup\n\ntext\n\n## Usage\n\nmore\n"),
		},
		"posts/notes.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Notes\ntags: go, web\n---\nnotes body\n"),
		},
	}

	return NewServiceWithFS(filesystem, Config{
		Pattern:   "*.md",
		Recursive: recursive,
	}, nil)
}
