package site

import (
	"testing"
	"time"
)

func makePost(slug string, date time.Time, opts ...func(*Post)) *Post {
	post := &Post{
		Kind:          KindPost,
		Slug:          slug,
		Title:         slug,
		Status:        "published",
		Date:          date,
		DateFormatted: date.Format("2006-01-02"),
		Link:          "posts/" + slug + ".html",
	}
	for _, opt := range opts {
		opt(post)
	}
	return post
}

func hiddenPost(post *Post) { post.Hidden = true }

func TestCollectionOrdering(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	c := NewCollection([]*Post{
		makePost("older", jan),
		makePost("newest", feb),
		makePost("alpha", jan),
	})

	all := c.All()
	if all[0].Slug != "newest" {
		t.Fatalf("expected newest first, got %q", all[0].Slug)
	}
	if all[1].Slug != "alpha" || all[2].Slug != "older" {
		t.Fatalf("expected slug tiebreak within same date, got %q then %q", all[1].Slug, all[2].Slug)
	}
}

func TestCollectionVisible(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	c := NewCollection([]*Post{
		makePost("shown", now),
		makePost("secret", now, hiddenPost),
		makePost("draft", now, func(p *Post) { p.Status = "draft" }),
		{Kind: KindAbout, Slug: "about", Hidden: true, Link: "about.html", Date: now},
	})

	visible := c.Visible()
	if len(visible) != 1 || visible[0].Slug != "shown" {
		t.Fatalf("expected only the published post, got %#v", visible)
	}
	if len(c.Regular()) != 3 {
		t.Fatalf("expected 3 regular posts, got %d", len(c.Regular()))
	}
	if len(c.Special()) != 1 {
		t.Fatalf("expected 1 special page, got %d", len(c.Special()))
	}
}

func TestCollectionIndexLimit(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var posts []*Post
	for i := 0; i < 8; i++ {
		posts = append(posts, makePost(string(rune('a'+i)), base.AddDate(0, 0, i)))
	}

	c := NewCollection(posts)
	index := c.Index(5)
	if len(index) != 5 {
		t.Fatalf("expected 5 index posts, got %d", len(index))
	}
	if index[0].Slug != "h" {
		t.Fatalf("expected newest post first on index, got %q", index[0].Slug)
	}
}

func TestCollectionAssignNav(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c := NewCollection([]*Post{
		makePost("first", base),
		makePost("hiddenmid", base.AddDate(0, 0, 1), hiddenPost),
		makePost("second", base.AddDate(0, 0, 2)),
		makePost("third", base.AddDate(0, 0, 3)),
	})
	c.AssignNav()

	visible := c.Visible()
	newest := visible[0]
	if newest.Slug != "third" || newest.Prev != nil {
		t.Fatalf("expected newest post without prev, got %#v", newest)
	}
	if newest.Next == nil || newest.Next.Link != "posts/second.html" {
		t.Fatalf("expected next to skip hidden post, got %#v", newest.Next)
	}

	middle := visible[1]
	if middle.Prev == nil || middle.Prev.Link != "posts/third.html" {
		t.Fatalf("expected prev pointing at newer post, got %#v", middle.Prev)
	}
	if middle.Next == nil || middle.Next.Link != "posts/first.html" {
		t.Fatalf("expected hidden post skipped in nav, got %#v", middle.Next)
	}
}

func TestCollectionArchive(t *testing.T) {
	c := NewCollection([]*Post{
		makePost("y23", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		makePost("y24a", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		makePost("y24b", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		makePost("ghost", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), hiddenPost),
	})

	groups := c.Archive()
	if len(groups) != 2 {
		t.Fatalf("expected 2 year groups, got %d", len(groups))
	}
	if groups[0].Year != 2024 || len(groups[0].Posts) != 2 {
		t.Fatalf("expected 2024 first with 2 posts, got %#v", groups[0])
	}
	if groups[0].Posts[0].Slug != "y24b" {
		t.Fatalf("expected newest post first within year, got %q", groups[0].Posts[0].Slug)
	}
	if groups[1].Year != 2023 {
		t.Fatalf("expected 2023 second, got %d", groups[1].Year)
	}
}

func TestCollectionTags(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	withTags := func(tags ...Tag) func(*Post) {
		return func(p *Post) { p.Tags = tags }
	}

	goTag := Tag{Name: "Go", Slug: "go"}
	webTag := Tag{Name: "Web", Slug: "web"}

	c := NewCollection([]*Post{
		makePost("a", now, withTags(goTag, webTag)),
		makePost("b", now.AddDate(0, 0, 1), withTags(goTag)),
		makePost("ghost", now, hiddenPost, withTags(goTag)),
	})

	groups := c.Tags()
	if len(groups) != 2 {
		t.Fatalf("expected 2 tag groups, got %#v", groups)
	}
	if groups[0].Tag.Slug != "go" || len(groups[0].Posts) != 2 {
		t.Fatalf("expected go tag first with 2 posts, got %#v", groups[0])
	}
	if groups[1].Tag.Slug != "web" || len(groups[1].Posts) != 1 {
		t.Fatalf("expected web tag with 1 post, got %#v", groups[1])
	}
}
