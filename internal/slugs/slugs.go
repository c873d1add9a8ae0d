package slugs

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	goslug "github.com/goliatone/go-slug"
	"golang.org/x/text/unicode/norm"
)

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// Unicode converts an arbitrary label into a URL-friendly slug while keeping
// international characters (including CJK) intact. Accents are folded away via
// NFKD decomposition, anything that is not a letter, digit, or underscore is
// dropped, and runs of whitespace or dashes collapse into a single dash.
func Unicode(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = norm.NFKD.String(value)

	var b strings.Builder
	b.Grow(len(value))
	lastDash := true
	for _, r := range value {
		switch {
		case unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r), r == '-':
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Normalize applies the shared go-slug rules to an explicitly provided slug.
// Values the normalizer cannot handle (e.g. CJK-only titles) fall back to the
// Unicode slugifier so a non-empty input never produces an empty slug.
func Normalize(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if goslug.IsValid(value) {
		return value
	}
	if normalized, err := goslug.Normalize(value); err == nil && normalized != "" {
		return normalized
	}
	return Unicode(value)
}

// FromFilename derives a slug from a source file name, stripping the extension
// and an optional YYYY-MM-DD- prefix, mirroring common blog file conventions.
func FromFilename(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if trimmed := datePrefix.ReplaceAllString(base, ""); trimmed != "" {
		base = trimmed
	}
	return strings.ToLower(base)
}
