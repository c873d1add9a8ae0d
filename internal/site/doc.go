// Package site builds the in-memory site model: posts derived from content
// documents, plus the orderings and groupings the page generators consume.
package site
