// Package views renders the blog pages. Every page is a templ.Component
// backed by the html/template files embedded from templates/.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/devlog/index"
	"github.com/eringen/devlog/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("views").Funcs(template.FuncMap{
	"longDate":     LongDate,
	"shortDate":    ShortDate,
	"isoDate":      ISODate,
	"tagURL":       index.DeriveTagURL,
	"tagColor":     TagColor,
	"cardGradient": CardGradient,
	"jsonLD":       func(s string) template.JS { return template.JS(s) },
	"body":         renderBody,
}).ParseFS(templateFS, "templates/*.html"))

// renderBody writes a compiled post body through the markdown component so
// the page and the component agree on what a body looks like.
func renderBody(compiled string) (template.HTML, error) {
	var sb strings.Builder
	if err := markdown.Markdown(compiled).Render(context.Background(), &sb); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}

// Home renders the landing page.
func Home(p HomePage) templ.Component {
	return component("home", p)
}

// PostList renders a full post listing page.
func PostList(p PostListPage) templ.Component {
	return component("post-list", p)
}

// Post renders a single post.
func Post(p PostPage) templ.Component {
	return component("post", p)
}

// TagList renders every tag with its post count.
func TagList(p TagListPage) templ.Component {
	return component("tag-list", p)
}

// NotFound renders the 404 page.
func NotFound(p StatusPage) templ.Component {
	return component("not-found", p)
}

// ServerError renders the 500 page.
func ServerError(p StatusPage) templ.Component {
	return component("server-error", p)
}
