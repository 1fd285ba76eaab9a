package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/eringen/devlog/content"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// LongDate formats a date the way post pages show it.
func LongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// ShortDate formats a date for post cards.
func ShortDate(t time.Time) string {
	return t.Format("2006.01.02")
}

// ISODate formats a date for <time datetime> and feeds.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

var tagColors = []string{
	"tag-cyan",
	"tag-pink",
	"tag-violet",
	"tag-amber",
	"tag-lime",
}

var tagColorIndex = map[string]int{
	"Next.js": 0,
}

// TagColor returns the colour class of a tag card. Tags without an assigned
// colour get the plain style.
func TagColor(title string) string {
	if i, ok := tagColorIndex[title]; ok {
		return tagColors[i]
	}
	return "tag-plain"
}

// cardGradients decorate the latest-post cards on the home page, by position.
var cardGradients = []string{"card-violet", "card-ocean", "card-sunset"}

// CardGradient returns the gradient class for the i-th home page card.
func CardGradient(i int) string {
	return cardGradients[i%len(cardGradients)]
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post content.Document) string {
	postURL := BuildURL(cfg.URL, post.URL)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"datePublished": ISODate(post.PublishedDate()),
		"dateModified":  ISODate(post.EffectiveDate()),
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.Description != "" {
		data["description"] = post.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.TagTitles(), ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
