package markdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

const defaultTOCBaseLevel = 2

type tocNode struct {
	heading  interfaces.Heading
	children []*tocNode
}

// BuildTOC renders collected headings as nested anchor lists. Headings
// shallower than baseLevel are promoted so the outline always starts at depth
// one. Returns nil when the document has no linkable headings.
func BuildTOC(headings []interfaces.Heading, baseLevel int) []byte {
	if baseLevel <= 0 {
		baseLevel = defaultTOCBaseLevel
	}

	entries := make([]interfaces.Heading, 0, len(headings))
	for _, heading := range headings {
		if heading.ID == "" || strings.TrimSpace(heading.Text) == "" {
			continue
		}
		if heading.Level < baseLevel {
			heading.Level = baseLevel
		}
		entries = append(entries, heading)
	}
	if len(entries) == 0 {
		return nil
	}

	root := &tocNode{}
	stack := []*tocNode{root}
	levels := []int{0}

	for _, entry := range entries {
		for len(levels) > 1 && entry.Level <= levels[len(levels)-1] {
			stack = stack[:len(stack)-1]
			levels = levels[:len(levels)-1]
		}
		node := &tocNode{heading: entry}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, node)
		stack = append(stack, node)
		levels = append(levels, entry.Level)
	}

	var b strings.Builder
	b.WriteString(`<div class="toc">` + "\n")
	writeTOCList(&b, root.children)
	b.WriteString("</div>\n")
	return []byte(b.String())
}

func writeTOCList(b *strings.Builder, nodes []*tocNode) {
	if len(nodes) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, node := range nodes {
		b.WriteString("<li>")
		b.WriteString(fmt.Sprintf(`<a href="#%s">%s</a>`,
			html.EscapeString(node.heading.ID), html.EscapeString(node.heading.Text)))
		if len(node.children) > 0 {
			b.WriteString("\n")
			writeTOCList(b, node.children)
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}
