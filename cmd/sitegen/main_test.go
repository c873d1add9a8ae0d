package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitSlugs(t *testing.T) {
	got := splitSlugs(" hello , world ,, ")
	if len(got) != 2 || got[0] != "hello" || got[1] != "world" {
		t.Fatalf("unexpected slugs %v", got)
	}
	if splitSlugs("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}

func TestRunRejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "content")
	if err := os.MkdirAll(content, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	err := run([]string{"publish", "-content-dir", content, "-output-dir", filepath.Join(dir, "public")})
	if err == nil || !strings.Contains(err.Error(), "unknown mode") {
		t.Fatalf("expected unknown mode error, got %v", err)
	}
}

func TestRunBuildDryRun(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "content")
	if err := os.MkdirAll(content, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	post := "---\ntitle: Hello\ndate: 2024-01-05\n---\nBody.\n"
	if err := os.WriteFile(filepath.Join(content, "2024-01-05-hello.md"), []byte(post), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}

	output := filepath.Join(dir, "public")
	err := run([]string{
		"build",
		"-content-dir", content,
		"-output-dir", output,
		"-base-url", "https://example.com",
		"-dry-run",
	})
	if err != nil {
		t.Fatalf("run build: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(output, "index.html")); statErr == nil {
		t.Fatal("expected dry run to write nothing")
	}
}
