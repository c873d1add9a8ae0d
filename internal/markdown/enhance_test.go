package markdown

import (
	"strings"
	"testing"
)

func TestEnhanceHTML_LazyImages(t *testing.T) {
	input := []byte(`<p><img src="photo.png" alt="photo"></p>`)

	output, err := EnhanceHTML(input)
	if err != nil {
		t.Fatalf("EnhanceHTML: %v", err)
	}
	if !strings.Contains(string(output), `loading="lazy"`) {
		t.Fatalf("expected lazy loading attribute, got %s", string(output))
	}
}

func TestEnhanceHTML_KeepsExplicitLoading(t *testing.T) {
	input := []byte(`<p><img src="hero.png" loading="eager"></p>`)

	output, err := EnhanceHTML(input)
	if err != nil {
		t.Fatalf("EnhanceHTML: %v", err)
	}
	if !strings.Contains(string(output), `loading="eager"`) {
		t.Fatalf("expected explicit loading preserved, got %s", string(output))
	}
	if strings.Contains(string(output), `loading="lazy"`) {
		t.Fatalf("expected no lazy override, got %s", string(output))
	}
}

func TestEnhanceHTML_WrapsTables(t *testing.T) {
	input := []byte(`<table><tbody><tr><td>cell</td></tr></tbody></table>`)

	output, err := EnhanceHTML(input)
	if err != nil {
		t.Fatalf("EnhanceHTML: %v", err)
	}
	if !strings.Contains(string(output), `<div class="table-wrapper"><table>`) {
		t.Fatalf("expected wrapped table, got %s", string(output))
	}
}

func TestEnhanceHTML_SkipsWrappedTables(t *testing.T) {
	input := []byte(`<div class="table-wrapper"><table><tbody><tr><td>cell</td></tr></tbody></table></div>`)

	output, err := EnhanceHTML(input)
	if err != nil {
		t.Fatalf("EnhanceHTML: %v", err)
	}
	if got := strings.Count(string(output), "table-wrapper"); got != 1 {
		t.Fatalf("expected single wrapper, found %d in %s", got, string(output))
	}
}

func TestEnhanceHTML_PassThrough(t *testing.T) {
	input := []byte("<p>plain paragraph</p>")

	output, err := EnhanceHTML(input)
	if err != nil {
		t.Fatalf("EnhanceHTML: %v", err)
	}
	if string(output) != string(input) {
		t.Fatalf("expected untouched output, got %s", string(output))
	}
}

func TestFirstImageSource(t *testing.T) {
	input := []byte(`<p>intro</p><p><img src="first.png"><img src="second.png"></p>`)

	if got := FirstImageSource(input); got != "first.png" {
		t.Fatalf("expected first.png, got %q", got)
	}
	if got := FirstImageSource([]byte("<p>no images</p>")); got != "" {
		t.Fatalf("expected empty source, got %q", got)
	}
}
