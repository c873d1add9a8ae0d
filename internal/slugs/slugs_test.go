package slugs

import "testing"

func TestUnicode(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii", "Hello World", "hello-world"},
		{"punctuation", "What's New, Today?", "whats-new-today"},
		{"accents", "Café au Lait", "cafe-au-lait"},
		{"cjk", "数据科学 入门", "数据科学-入门"},
		{"mixed dashes", "a -- b  c", "a-b-c"},
		{"leading trailing", " --edge-- ", "edge"},
		{"empty", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Unicode(tc.input); got != tc.want {
				t.Fatalf("Unicode(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFromFilename(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"markdown/2024-03-01-hello-world.md", "hello-world"},
		{"About.md", "about"},
		{"posts/2023-12-31-Year-End.md", "year-end"},
		{"2024-01-01.md", "2024-01-01"},
	}

	for _, tc := range cases {
		if got := FromFilename(tc.input); got != tc.want {
			t.Fatalf("FromFilename(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeFallsBackToUnicode(t *testing.T) {
	if got := Normalize("数据科学"); got == "" {
		t.Fatalf("expected non-empty slug for CJK input")
	}
}
