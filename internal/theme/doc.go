// Package theme resolves the template set and stylesheet used to render
// pages. A theme directory with a manifest can override the embedded default
// look; variant tokens surface as CSS variables.
package theme
