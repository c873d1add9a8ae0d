package site

import (
	"sort"
)

// Collection holds the full set of derived posts for one build.
type Collection struct {
	posts []*Post
}

// NewCollection sorts the posts newest first (slug breaks ties for
// deterministic output) and returns the assembled collection.
func NewCollection(posts []*Post) *Collection {
	sorted := append([]*Post(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].Slug < sorted[j].Slug
	})
	return &Collection{posts: sorted}
}

// All returns every post, including hidden ones and special pages.
func (c *Collection) All() []*Post {
	return c.posts
}

// Regular returns the dated entries, excluding the about and 404 pages but
// keeping hidden posts (they still render, they just stay out of listings).
func (c *Collection) Regular() []*Post {
	var out []*Post
	for _, post := range c.posts {
		if post.Kind == KindPost {
			out = append(out, post)
		}
	}
	return out
}

// Visible returns the regular posts that appear in listings, feeds, and the
// sitemap.
func (c *Collection) Visible() []*Post {
	var out []*Post
	for _, post := range c.Regular() {
		if !post.Excluded() {
			out = append(out, post)
		}
	}
	return out
}

// Special returns the about page and the 404 page when present.
func (c *Collection) Special() []*Post {
	var out []*Post
	for _, post := range c.posts {
		if post.Kind != KindPost {
			out = append(out, post)
		}
	}
	return out
}

// Index returns up to limit visible posts for the front page.
func (c *Collection) Index(limit int) []*Post {
	visible := c.Visible()
	if limit > 0 && len(visible) > limit {
		visible = visible[:limit]
	}
	return visible
}

// AssignNav links each visible post to its neighbours. Prev points at the
// newer post, Next at the older one, matching the newest-first ordering.
func (c *Collection) AssignNav() {
	visible := c.Visible()
	for i, post := range visible {
		post.Prev = nil
		post.Next = nil
		if i > 0 {
			post.Prev = &PostRef{Title: visible[i-1].Title, Link: visible[i-1].Link}
		}
		if i < len(visible)-1 {
			post.Next = &PostRef{Title: visible[i+1].Title, Link: visible[i+1].Link}
		}
	}
}

// YearGroup collects the visible posts published in one year.
type YearGroup struct {
	Year  int
	Posts []*Post
}

// Archive groups visible posts by year, newest year first. Posts within a
// year keep the collection order.
func (c *Collection) Archive() []YearGroup {
	byYear := map[int][]*Post{}
	for _, post := range c.Visible() {
		year := post.Date.Year()
		byYear[year] = append(byYear[year], post)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	groups := make([]YearGroup, 0, len(years))
	for _, year := range years {
		groups = append(groups, YearGroup{Year: year, Posts: byYear[year]})
	}
	return groups
}

// TagGroup collects the visible posts that carry one tag.
type TagGroup struct {
	Tag   Tag
	Posts []*Post
}

// Tags groups visible posts by tag slug, most used tag first with name as a
// tiebreak. Posts within a group keep the collection order.
func (c *Collection) Tags() []TagGroup {
	groups := map[string]*TagGroup{}
	var order []string

	for _, post := range c.Visible() {
		for _, tag := range post.Tags {
			if tag.Slug == "" {
				continue
			}
			group, ok := groups[tag.Slug]
			if !ok {
				group = &TagGroup{Tag: tag}
				groups[tag.Slug] = group
				order = append(order, tag.Slug)
			}
			group.Posts = append(group.Posts, post)
		}
	}

	out := make([]TagGroup, 0, len(order))
	for _, slug := range order {
		out = append(out, *groups[slug])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Posts) != len(out[j].Posts) {
			return len(out[i].Posts) > len(out[j].Posts)
		}
		return out[i].Tag.Slug < out[j].Tag.Slug
	})
	return out
}
