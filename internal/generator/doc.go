// Package generator renders the site model into a static output tree:
// post pages, listing pages, feeds, sitemap, robots, and hashed assets.
// A JSON manifest makes repeat builds incremental.
package generator
