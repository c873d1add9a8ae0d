package theme

import "html/template"

// NavRef links to an adjacent post in prev/next navigation.
type NavRef struct {
	Title string
	Link  string
}

// TagView is a tag with its resolved page URL.
type TagView struct {
	Name string
	Slug string
	Link string
}

// PostView is the listing-level projection of a post.
type PostView struct {
	Title         string
	Link          string
	Summary       string
	DateFormatted string
	Tags          []TagView
}

// PageContext is the data contract every page template receives. PageID
// selects the layout branch: index, post, archive, tags, tag, page, 404.
type PageContext struct {
	PageID          string
	PageTitle       string
	BlogTitle       string
	BlogDescription string
	BlogAuthor      string
	Language        string

	// ContentHTML carries the rendered body for post and content pages.
	ContentHTML template.HTML
	// TOCHTML is the table of contents for post pages, if any.
	TOCHTML template.HTML
	// JSONLD is the structured-data script body for post pages. Typed as JS so
	// the template engine leaves the JSON payload untouched inside <script>.
	JSONLD template.JS

	// Posts feeds the index listing.
	Posts []PostView

	Post     *PostView
	PostDate string
	PostTags []TagView
	PrevNav  *NavRef
	NextNav  *NavRef

	SiteRoot       string
	CanonicalURL   string
	CSSFilename    string
	CurrentYear    int
	FooterTimeInfo string

	// ThemeVars holds variant CSS variables injected into the page head.
	ThemeVars map[string]string
}
