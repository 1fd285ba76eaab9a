package devlog

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/index"
	"github.com/eringen/devlog/views"
)

// Render writes a templ component with a 200 status.
func Render(c echo.Context, component templ.Component) error {
	return RenderStatus(c, http.StatusOK, component)
}

// RenderStatus writes a templ component with the given status code.
func RenderStatus(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response())
}

func (a *App) handleHome(c echo.Context) error {
	docs := a.Library.Snapshot().Documents
	idx := index.BuildTagIndex(docs)
	site := a.site()
	return Render(c, a.Views.Home(views.HomePage{
		Site: site,
		Meta: views.PageMeta{
			Description: a.Config.Description,
			URL:         views.BuildURL(a.Config.URL),
			JSONLD:      views.WebsiteJsonLD(site),
		},
		Recent:          index.RecentPosts(docs, a.Config.RecentCount),
		PopularTags:     idx.Entries(idx.Popular(a.Config.PopularTagCount)),
		ShowRecent:      a.Config.RecentCount > 0,
		ShowPopularTags: a.Config.PopularTagCount > 0,
	}))
}

func (a *App) handleBlog(c echo.Context) error {
	docs := a.Library.Snapshot().Documents
	page := views.PostListPage{
		Site: a.site(),
		Meta: views.PageMeta{
			Title: "All Posts",
			URL:   views.BuildURL(a.Config.URL, "blog"),
		},
		Heading: "All Posts",
		Action:  "/blog/",
	}
	return a.renderPostList(c, page, index.RecentPosts(docs, len(docs)))
}

func (a *App) handleTag(c echo.Context) error {
	slug := wildcardPath(c)
	if slug == "" {
		return c.Redirect(http.StatusMovedPermanently, "/tag/")
	}
	docs := a.Library.Snapshot().Documents
	idx := index.BuildTagIndex(docs)
	title, ok := idx.TitleForURL(index.TagURLPrefix + slug)
	if !ok {
		return a.notFound(c)
	}
	tagURL := idx.URLs[title]
	heading := title + " Tag"
	page := views.PostListPage{
		Site: a.site(),
		Meta: views.PageMeta{
			Title:       heading,
			Description: fmt.Sprintf("Posts tagged %s", title),
			URL:         views.BuildURL(a.Config.URL, tagURL),
		},
		Heading: heading,
		Tag:     title,
		Action:  tagURL + "/",
	}
	return a.renderPostList(c, page, index.PostsByTag(docs, title))
}

// renderPostList renders every post and marks those matching the ?q title
// filter; the page filters further in the browser as the reader types.
func (a *App) renderPostList(c echo.Context, page views.PostListPage, posts []content.Document) error {
	page.Query = strings.TrimSpace(c.QueryParam("q"))
	page.Posts = posts
	page.Matches = make(map[string]bool, len(posts))
	for _, d := range index.SearchByTitle(posts, page.Query) {
		page.Matches[d.URL] = true
	}
	return Render(c, a.Views.PostList(page))
}

func (a *App) handlePost(c echo.Context) error {
	p := wildcardPath(c)
	if p == "" {
		return c.Redirect(http.StatusMovedPermanently, "/blog/")
	}
	doc, ok := a.Library.Snapshot().Document("/blogs/" + p)
	if !ok {
		return a.notFound(c)
	}
	site := a.site()
	return Render(c, a.Views.Post(views.PostPage{
		Site: site,
		Meta: views.PageMeta{
			Title:       doc.Title,
			Description: doc.Description,
			URL:         views.BuildURL(a.Config.URL, doc.URL),
			OGType:      "article",
			JSONLD:      views.BlogPostingJsonLD(site, doc),
		},
		Post: doc,
		Tags: docTags(doc),
	}))
}

func (a *App) handleTagList(c echo.Context) error {
	idx := index.BuildTagIndex(a.Library.Snapshot().Documents)
	return Render(c, a.Views.TagList(views.TagListPage{
		Site: a.site(),
		Meta: views.PageMeta{
			Title: "Tags",
			URL:   views.BuildURL(a.Config.URL, "tag"),
		},
		Tags: idx.Entries(idx.Order),
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Library.Snapshot().Documents)
}

func (a *App) handleFeed(c echo.Context) error {
	docs := a.Library.Snapshot().Documents
	return a.renderRSS(c, index.RecentPosts(docs, len(docs)))
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/blog/")
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	b.WriteString("Sitemap: " + strings.TrimSuffix(a.Config.URL, "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) notFound(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.statusPage("Not Found")))
}

func (a *App) statusPage(title string) views.StatusPage {
	return views.StatusPage{Site: a.site(), Meta: views.PageMeta{Title: title}}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.notFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.statusPage("Server Error")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
