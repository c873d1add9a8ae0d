package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	result, err := parser.Parse([]byte("# Title\n\nSome **bold** text.\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	html := string(result.HTML)
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("expected bold rendering, got %s", html)
	}
	if !strings.Contains(html, `<h1 id="title">`) {
		t.Fatalf("expected slugged heading id, got %s", html)
	}
}

func TestGoldmarkParser_CollectsHeadings(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	source := []byte("## First\n\ntext\n\n### Nested\n\n## Second\n")
	result, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(result.Headings) != 3 {
		t.Fatalf("expected 3 headings, got %#v", result.Headings)
	}
	if result.Headings[0].ID != "first" || result.Headings[0].Level != 2 {
		t.Fatalf("unexpected first heading %#v", result.Headings[0])
	}
	if result.Headings[1].ID != "nested" || result.Headings[1].Level != 3 {
		t.Fatalf("unexpected nested heading %#v", result.Headings[1])
	}
}

func TestGoldmarkParser_UnicodeHeadingAnchors(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	result, err := parser.Parse([]byte("## 数据科学 入门\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(result.Headings) != 1 {
		t.Fatalf("expected one heading, got %#v", result.Headings)
	}
	if result.Headings[0].ID != "数据科学-入门" {
		t.Fatalf("expected CJK anchor preserved, got %q", result.Headings[0].ID)
	}
}

func TestGoldmarkParser_DuplicateHeadingAnchors(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	result, err := parser.Parse([]byte("## Setup\n\n## Setup\n\n## Setup\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ids := map[string]bool{}
	for _, heading := range result.Headings {
		if ids[heading.ID] {
			t.Fatalf("duplicate heading anchor %q", heading.ID)
		}
		ids[heading.ID] = true
	}
	if !ids["setup"] || !ids["setup-1"] || !ids["setup-2"] {
		t.Fatalf("unexpected anchor set %#v", ids)
	}
}

func TestGoldmarkParser_GFMDefaults(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	source := []byte("~~gone~~\n\n- [x] done\n- [ ] todo\n")
	result, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	html := string(result.HTML)
	if !strings.Contains(html, "<del>gone</del>") {
		t.Fatalf("expected strikethrough, got %s", html)
	}
	if !strings.Contains(html, `type="checkbox"`) {
		t.Fatalf("expected task list checkboxes, got %s", html)
	}
}

func TestGoldmarkParser_SafeModeStripsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true})

	result, err := parser.Parse([]byte("before\n\n<script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if strings.Contains(string(result.HTML), "<script>") {
		t.Fatalf("expected raw HTML suppressed, got %s", string(result.HTML))
	}
}

func TestGoldmarkParser_ExtensionNames(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: []string{"table", "unknown-extension"},
	})

	source := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")
	result, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(result.HTML), "<table>") {
		t.Fatalf("expected table rendering, got %s", string(result.HTML))
	}
}

func TestBuildTOC(t *testing.T) {
	headings := []interfaces.Heading{
		{Level: 2, ID: "intro", Text: "Intro"},
		{Level: 3, ID: "details", Text: "Details"},
		{Level: 2, ID: "wrap-up", Text: "Wrap Up"},
	}

	toc := string(BuildTOC(headings, 0))
	if !strings.Contains(toc, `<div class="toc">`) {
		t.Fatalf("expected toc container, got %s", toc)
	}
	if !strings.Contains(toc, `<a href="#intro">Intro</a>`) {
		t.Fatalf("expected intro entry, got %s", toc)
	}
	if strings.Index(toc, "details") < strings.Index(toc, "intro") {
		t.Fatalf("expected nested entry after parent, got %s", toc)
	}
	if strings.Count(toc, "<ul>") != 2 {
		t.Fatalf("expected nested list structure, got %s", toc)
	}
}

func TestBuildTOC_PromotesShallowHeadings(t *testing.T) {
	headings := []interfaces.Heading{
		{Level: 1, ID: "top", Text: "Top"},
		{Level: 2, ID: "child", Text: "Child"},
	}

	toc := string(BuildTOC(headings, 2))
	if strings.Count(toc, "<ul>") != 1 {
		t.Fatalf("expected flat list after promotion, got %s", toc)
	}
}

func TestBuildTOC_Empty(t *testing.T) {
	if toc := BuildTOC(nil, 2); toc != nil {
		t.Fatalf("expected nil toc for no headings, got %s", string(toc))
	}
	if toc := BuildTOC([]interfaces.Heading{{Level: 2, ID: "", Text: "x"}}, 2); toc != nil {
		t.Fatalf("expected nil toc for unlinkable headings, got %s", string(toc))
	}
}
