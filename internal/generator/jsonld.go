package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitegen/internal/markdown"
	"github.com/goliatone/go-sitegen/internal/site"
)

type jsonLDPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type jsonLDImage struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type jsonLDOrganization struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo jsonLDImage `json:"logo"`
}

type jsonLDWebPage struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type jsonLDArticle struct {
	Context          string             `json:"@context"`
	Type             string             `json:"@type"`
	Headline         string             `json:"headline"`
	Image            string             `json:"image"`
	DatePublished    string             `json:"datePublished"`
	DateModified     string             `json:"dateModified"`
	Author           jsonLDPerson       `json:"author"`
	Publisher        jsonLDOrganization `json:"publisher"`
	Description      string             `json:"description"`
	MainEntityOfPage jsonLDWebPage      `json:"mainEntityOfPage"`
}

// buildArticleJSONLD renders the structured-data payload for a post page. The
// cover image falls back to the site default when the body has no image.
func buildArticleJSONLD(cfg Config, post *site.Post) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	root := siteRoot(cfg.Subpath)

	image := base + root + "/static/default-cover.png"
	if src := markdown.FirstImageSource(post.HTML); src != "" {
		if strings.HasPrefix(src, "http") || strings.HasPrefix(src, "//") {
			image = src
		} else {
			image = fmt.Sprintf("%s%s/%s", base, root, strings.TrimLeft(src, "/"))
		}
	}

	description := post.Summary
	if description == "" {
		description = cfg.BlogDescription
	}

	article := jsonLDArticle{
		Context:       "https://schema.org",
		Type:          "Article",
		Headline:      post.Title,
		Image:         image,
		DatePublished: post.Date.Format("2006-01-02"),
		DateModified:  post.Date.Format("2006-01-02"),
		Author: jsonLDPerson{
			Type: "Person",
			Name: cfg.BlogAuthor,
		},
		Publisher: jsonLDOrganization{
			Type: "Organization",
			Name: cfg.BlogTitle,
			Logo: jsonLDImage{
				Type: "ImageObject",
				URL:  base + root + "/static/logo.png",
			},
		},
		Description: description,
		MainEntityOfPage: jsonLDWebPage{
			Type: "WebPage",
			URL:  canonicalURL(cfg.BaseURL, cfg.Subpath, post.Link),
		},
	}

	payload, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return "", fmt.Errorf("generator: marshal json-ld for %s: %w", post.Slug, err)
	}
	return string(payload), nil
}
