package devlog

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/index"
	"github.com/eringen/devlog/views"
)

// site returns the subset of the configuration the templates read.
func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// wildcardPath returns the unescaped wildcard route parameter without
// surrounding slashes.
func wildcardPath(c echo.Context) string {
	p := strings.Trim(c.Param("*"), "/")
	if u, err := url.PathUnescape(p); err == nil {
		return u
	}
	return p
}

// docTags links each tag of a document to its tag page. Counts are left at
// zero so the cards show titles only.
func docTags(doc content.Document) []index.Entry {
	out := make([]index.Entry, 0, len(doc.Tags))
	for _, t := range doc.Tags {
		out = append(out, index.Entry{Title: t.Title, URL: index.DeriveTagURL(t.Title)})
	}
	return out
}
