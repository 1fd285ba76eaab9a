package views

import (
	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/index"
)

// SiteConfig holds the site-wide values every template needs.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// HomePage is the landing page: latest posts and the most used tags.
type HomePage struct {
	Site        SiteConfig
	Meta        PageMeta
	Recent      []content.Document
	PopularTags []index.Entry

	ShowRecent      bool
	ShowPopularTags bool
}

// PostListPage lists posts, either all of them or those of one tag. Every
// post is rendered; those outside the ?q title filter are hidden, so the
// in-page filter can reveal them again without another request.
type PostListPage struct {
	Site    SiteConfig
	Meta    PageMeta
	Heading string
	Tag     string // empty on the all-posts page
	Query   string
	Action  string // path the search box submits to
	Posts   []content.Document
	Matches map[string]bool // URLs passing the title filter; nil shows all
}

// Visible reports whether the post at url passes the title filter.
func (p PostListPage) Visible(url string) bool {
	return p.Matches == nil || p.Matches[url]
}

// NoneShown reports whether the filter hides every post.
func (p PostListPage) NoneShown() bool {
	for _, d := range p.Posts {
		if p.Visible(d.URL) {
			return false
		}
	}
	return true
}

// PostPage renders one post.
type PostPage struct {
	Site SiteConfig
	Meta PageMeta
	Post content.Document
	Tags []index.Entry
}

// TagListPage lists every tag in first-seen order.
type TagListPage struct {
	Site SiteConfig
	Meta PageMeta
	Tags []index.Entry
}

// StatusPage backs the 404 and 500 pages.
type StatusPage struct {
	Site SiteConfig
	Meta PageMeta
}
