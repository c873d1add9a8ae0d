// Package markdown discovers, parses, and renders Markdown content documents
// with YAML front-matter headers.
package markdown
