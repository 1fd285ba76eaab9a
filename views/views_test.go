package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/index"
)

var site = SiteConfig{Name: "Alex He", URL: "https://example.com", Description: "A frontend developer", Author: "Alex He"}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func samplePost() content.Document {
	return content.Document{
		Title:       "Learning React Hooks",
		Date:        time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "useState & friends",
		Tags:        []content.Tag{{Title: "Next.js"}, {Title: "React Hooks"}},
		Body:        content.Body{HTML: `<h1 id="hooks">Hooks</h1>`},
		URL:         "/blogs/react/hooks",
	}
}

func TestHome(t *testing.T) {
	got := render(t, Home(HomePage{
		Site:            site,
		Recent:          []content.Document{samplePost()},
		PopularTags:     []index.Entry{{Title: "Next.js", Count: 4, URL: "/tags/Next.js"}},
		ShowRecent:      true,
		ShowPopularTags: true,
	}))
	for _, want := range []string{
		"<title>Alex He</title>",
		`href="/blogs/react/hooks/"`,
		"2023.03.01",
		`class="card card-violet"`,
		`class="tag-card tag-cyan" href="/tags/Next.js/"`,
		"(4)",
		`href="/blog/"`,
		`href="/tag/"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Home() missing %q in:\n%s", want, got)
		}
	}
}

func TestHomeHidesDisabledPanels(t *testing.T) {
	got := render(t, Home(HomePage{Site: site, ShowPopularTags: true}))
	if strings.Contains(got, "Latest Posts") || strings.Contains(got, "No blogs yet.") {
		t.Errorf("Home() should hide the latest posts panel: %s", got)
	}
	if !strings.Contains(got, "Popular tags") {
		t.Errorf("Home() should keep the popular tags panel: %s", got)
	}
}

func TestPostListShowsEmptyState(t *testing.T) {
	got := render(t, PostList(PostListPage{Site: site, Heading: "React Tag", Tag: "React", Query: "zzz", Action: "/tags/React/"}))
	if !strings.Contains(got, `<p class="empty">No blogs found.</p>`) {
		t.Errorf("PostList() should show empty state: %s", got)
	}
	if !strings.Contains(got, `value="zzz"`) {
		t.Errorf("PostList() should keep the query in the search box: %s", got)
	}
	if !strings.Contains(got, "<h1>React Tag</h1>") {
		t.Errorf("PostList() heading missing: %s", got)
	}
}

func TestPostListHidesFilteredPosts(t *testing.T) {
	other := samplePost()
	other.Title = "Go Channels"
	other.URL = "/blogs/go"
	got := render(t, PostList(PostListPage{
		Site:    site,
		Heading: "All Posts",
		Query:   "hooks",
		Action:  "/blog/",
		Posts:   []content.Document{samplePost(), other},
		Matches: map[string]bool{"/blogs/react/hooks": true},
	}))
	for _, want := range []string{
		`<a class="post-item" href="/blogs/react/hooks/" data-title="Learning React Hooks">`,
		`<a class="post-item is-hidden" href="/blogs/go/" data-title="Go Channels">`,
		`<p class="empty is-hidden">No blogs found.</p>`,
		`id="post-filter"`,
		`input.addEventListener("input", apply);`,
		"March 1, 2023",
		"useState &amp; friends",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("PostList() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "htmx") {
		t.Errorf("PostList() should not depend on htmx: %s", got)
	}
}

func TestPostListPageVisible(t *testing.T) {
	post := samplePost()
	all := PostListPage{Posts: []content.Document{post}}
	if !all.Visible(post.URL) || all.NoneShown() {
		t.Errorf("nil Matches should show every post")
	}
	none := PostListPage{Posts: []content.Document{post}, Matches: map[string]bool{}}
	if none.Visible(post.URL) || !none.NoneShown() {
		t.Errorf("empty Matches should hide every post")
	}
}

func TestPost(t *testing.T) {
	post := samplePost()
	got := render(t, Post(PostPage{
		Site: site,
		Meta: PageMeta{Title: post.Title, JSONLD: BlogPostingJsonLD(site, post)},
		Post: post,
		Tags: []index.Entry{{Title: "React Hooks", URL: index.DeriveTagURL("React Hooks")}},
	}))
	for _, want := range []string{
		"<title>Learning React Hooks | Alex He</title>",
		`<h1 id="hooks">Hooks</h1>`,
		`href="/tags/React_Hooks/"`,
		`<script type="application/ld+json">{"@context":"https://schema.org"`,
		"March 1, 2023",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Post() missing %q in:\n%s", want, got)
		}
	}
}

func TestStatusPages(t *testing.T) {
	if got := render(t, NotFound(StatusPage{Site: site})); !strings.Contains(got, "404") {
		t.Errorf("NotFound() = %s", got)
	}
	if got := render(t, ServerError(StatusPage{Site: site})); !strings.Contains(got, "500") {
		t.Errorf("ServerError() = %s", got)
	}
}

func TestTagColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Next.js", "tag-cyan"},
		{"Go", "tag-plain"},
	}
	for _, tt := range tests {
		if got := TagColor(tt.input); got != tt.expected {
			t.Errorf("TagColor(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"/blogs/a/b"}, "https://example.com/blogs/a/b/"},
		{"https://example.com/", []string{"tags", "Go"}, "https://example.com/tags/Go/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	got := BlogPostingJsonLD(site, samplePost())
	for _, want := range []string{`"headline":"Learning React Hooks"`, `"keywords":"Next.js, React Hooks"`, `"datePublished":"2023-03-01"`, `"url":"https://example.com/blogs/react/hooks/"`} {
		if !strings.Contains(got, want) {
			t.Errorf("BlogPostingJsonLD() missing %q in %s", want, got)
		}
	}
}
