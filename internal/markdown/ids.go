package markdown

import (
	"fmt"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-sitegen/internal/slugs"
)

// slugIDs generates heading anchors with the shared Unicode slugifier instead
// of goldmark's ASCII-only default. Duplicate anchors get a numeric suffix.
type slugIDs struct {
	used map[string]bool
}

func newSlugIDs() *slugIDs {
	return &slugIDs{used: map[string]bool{}}
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := slugs.Unicode(string(value))
	if base == "" {
		base = "heading"
	}

	candidate := base
	for i := 1; s.used[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	s.used[candidate] = true
	return []byte(candidate)
}

func (s *slugIDs) Put(value []byte) {
	s.used[string(value)] = true
}
