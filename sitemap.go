package devlog

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/index"
	"github.com/eringen/devlog/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the fixed pages, every post, and every tag page. A tag
// page's lastmod is the effective date of its newest post.
func (a *App) renderSitemap(c echo.Context, docs []content.Document) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
		{Loc: views.BuildURL(base, "blog")},
		{Loc: views.BuildURL(base, "tag")},
	}
	for _, d := range index.RecentPosts(docs, len(docs)) {
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(base, d.URL),
			LastMod: views.ISODate(d.EffectiveDate()),
		})
	}
	idx := index.BuildTagIndex(docs)
	for _, title := range idx.Order {
		u := sitemapURL{Loc: views.BuildURL(base, idx.URLs[title])}
		if newest := index.RecentPosts(index.PostsByTag(docs, title), 1); len(newest) == 1 {
			u.LastMod = views.ISODate(newest[0].EffectiveDate())
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
