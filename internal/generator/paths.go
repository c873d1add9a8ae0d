package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

const (
	rssFileName     = "rss.xml"
	sitemapFileName = "sitemap.xml"
)

// siteRoot normalizes the configured subpath into a leading-slash prefix, or
// the empty string when the site sits at the domain root.
func siteRoot(subpath string) string {
	root := strings.TrimSpace(subpath)
	if root == "" || root == "/" {
		return ""
	}
	root = strings.TrimRight(root, "/")
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	return root
}

// internalURL converts a site-relative output link into a pretty URL. Post
// links lose their .html suffix and gain a trailing slash; the 404 page and
// the XML artifacts keep their literal names.
func internalURL(subpath, link string) string {
	if link == "" {
		return ""
	}

	normalized := link
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	root := siteRoot(subpath)

	lower := strings.ToLower(normalized)
	switch {
	case lower == "/404" || lower == "/404.html":
	case strings.HasSuffix(lower, rssFileName):
	case strings.HasSuffix(lower, sitemapFileName):
	default:
		if strings.HasSuffix(lower, ".html") {
			normalized = normalized[:len(normalized)-len(".html")]
			lower = strings.ToLower(normalized)
		}
		if lower == "/index" {
			normalized = "/"
		} else if normalized != "/" && !strings.HasSuffix(normalized, "/") {
			normalized += "/"
		}
	}

	if root == "" {
		return normalized
	}
	if normalized == "/" {
		return root + "/"
	}
	return root + normalized
}

// outputPathForLink maps a site-relative link to the file path written under
// the output directory. Pretty URLs become <route>/index.html; the 404 page
// stays a flat file so hosting platforms pick it up.
func outputPathForLink(link string) string {
	trimmed := strings.Trim(strings.TrimSpace(link), "/")
	if trimmed == "" {
		return "index.html"
	}
	lower := strings.ToLower(trimmed)
	if lower == "404.html" || lower == "404" {
		return "404.html"
	}
	if !strings.HasSuffix(lower, ".html") {
		return path.Join(trimmed, "index.html")
	}
	clean := trimmed[:len(trimmed)-len(".html")]
	if clean == "index" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

// canonicalURL builds the absolute URL advertised in page metadata.
func canonicalURL(baseURL, subpath, link string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return base + internalURL(subpath, link)
}

func joinOutputPath(base string, rel string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return strings.TrimLeft(rel, "/")
	}
	// path.Join cleans trailing slashes while keeping an absolute base
	// absolute.
	return path.Join(base, rel)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
