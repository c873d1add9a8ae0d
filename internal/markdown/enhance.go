package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EnhanceHTML post-processes rendered Markdown: images gain lazy loading and
// tables get a scroll wrapper so wide content does not break narrow layouts.
// Input without images or tables is returned untouched.
func EnhanceHTML(input []byte) ([]byte, error) {
	if !bytes.Contains(input, []byte("<img")) && !bytes.Contains(input, []byte("<table")) {
		return input, nil
	}

	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := html.ParseFragment(bytes.NewReader(input), context)
	if err != nil {
		return nil, fmt.Errorf("markdown enhance: %w", err)
	}

	// Fragments come back parentless; reattach them so wrapping a top-level
	// table has a parent to splice the wrapper into.
	for _, node := range nodes {
		context.AppendChild(node)
	}

	lazyLoadImages(context)
	for _, table := range collectBareTables(context) {
		wrapTable(table)
	}

	var buf bytes.Buffer
	for node := context.FirstChild; node != nil; node = node.NextSibling {
		if err := html.Render(&buf, node); err != nil {
			return nil, fmt.Errorf("markdown enhance render: %w", err)
		}
	}
	return buf.Bytes(), nil
}

const tableWrapperClass = "table-wrapper"

func lazyLoadImages(node *html.Node) {
	if node.Type == html.ElementNode && node.DataAtom == atom.Img {
		if !hasAttr(node, "loading") {
			node.Attr = append(node.Attr, html.Attribute{Key: "loading", Val: "lazy"})
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		lazyLoadImages(child)
	}
}

// collectBareTables gathers tables not already inside a wrapper div. Mutation
// happens after the walk so sibling traversal stays stable.
func collectBareTables(node *html.Node) []*html.Node {
	var tables []*html.Node
	if node.Type == html.ElementNode && node.DataAtom == atom.Table && !insideWrapper(node) {
		tables = append(tables, node)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		tables = append(tables, collectBareTables(child)...)
	}
	return tables
}

func insideWrapper(node *html.Node) bool {
	parent := node.Parent
	return parent != nil &&
		parent.Type == html.ElementNode &&
		parent.DataAtom == atom.Div &&
		hasClass(parent, tableWrapperClass)
}

func wrapTable(table *html.Node) {
	parent := table.Parent
	if parent == nil {
		return
	}

	wrapper := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: tableWrapperClass}},
	}

	parent.InsertBefore(wrapper, table)
	parent.RemoveChild(table)
	wrapper.AppendChild(table)
}

// FirstImageSource returns the src of the first image in the rendered HTML,
// or the empty string when the document has none.
func FirstImageSource(input []byte) string {
	if !bytes.Contains(input, []byte("<img")) {
		return ""
	}

	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := html.ParseFragment(bytes.NewReader(input), context)
	if err != nil {
		return ""
	}

	for _, node := range nodes {
		if src := firstImageSrc(node); src != "" {
			return src
		}
	}
	return ""
}

func firstImageSrc(node *html.Node) string {
	if node.Type == html.ElementNode && node.DataAtom == atom.Img {
		if value, ok := attrValue(node, "src"); ok {
			return value
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if src := firstImageSrc(child); src != "" {
			return src
		}
	}
	return ""
}

func hasAttr(node *html.Node, key string) bool {
	_, ok := attrValue(node, key)
	return ok
}

func attrValue(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func hasClass(node *html.Node, class string) bool {
	value, ok := attrValue(node, "class")
	if !ok {
		return false
	}
	for _, candidate := range strings.Fields(value) {
		if candidate == class {
			return true
		}
	}
	return false
}
