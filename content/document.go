// Package content defines the blog document model and loads documents from a
// directory of Markdown/MDX files with YAML front matter.
package content

import (
	"fmt"
	"strings"
	"time"
)

// DateSchema selects which front matter date fields a deployment uses.
type DateSchema int

const (
	// SchemaDate uses a single required `date` field.
	SchemaDate DateSchema = iota
	// SchemaCreatedUpdated uses a required `created_date` and an optional
	// `updated_date`.
	SchemaCreatedUpdated
)

func (s DateSchema) String() string {
	switch s {
	case SchemaCreatedUpdated:
		return "created_updated"
	default:
		return "date"
	}
}

// ParseDateSchema maps a configuration value to a DateSchema.
func ParseDateSchema(v string) (DateSchema, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "date":
		return SchemaDate, nil
	case "created_updated", "created-updated":
		return SchemaCreatedUpdated, nil
	}
	return SchemaDate, fmt.Errorf("unknown date schema %q (want \"date\" or \"created_updated\")", v)
}

// Tag is a label attached to a document.
type Tag struct {
	Title string `json:"title" yaml:"title"`
}

// Body is the compiled content of a document. The derivation layer never
// looks inside it.
type Body struct {
	Raw  string `json:"raw"`
	HTML string `json:"html"`
}

// Document is one parsed blog post.
type Document struct {
	Title       string     `json:"title"`
	Schema      DateSchema `json:"-"`
	Date        time.Time  `json:"date,omitzero"`
	CreatedDate time.Time  `json:"created_date,omitzero"`
	UpdatedDate time.Time  `json:"updated_date,omitzero"`
	Description string     `json:"description,omitempty"`
	Tags        []Tag      `json:"tags"`
	Body        Body       `json:"-"`
	URL         string     `json:"url"`
	SourcePath  string     `json:"source_path"`
}

// EffectiveDate is the date used for recency ordering.
func (d Document) EffectiveDate() time.Time {
	if d.Schema == SchemaCreatedUpdated {
		if !d.UpdatedDate.IsZero() {
			return d.UpdatedDate
		}
		return d.CreatedDate
	}
	return d.Date
}

// PublishedDate is the date a post first appeared.
func (d Document) PublishedDate() time.Time {
	if d.Schema == SchemaCreatedUpdated {
		return d.CreatedDate
	}
	return d.Date
}

// HasTag reports whether the document carries a tag with exactly this title.
func (d Document) HasTag(title string) bool {
	for _, t := range d.Tags {
		if t.Title == title {
			return true
		}
	}
	return false
}

// TagTitles returns the tag titles in source order.
func (d Document) TagTitles() []string {
	out := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		out = append(out, t.Title)
	}
	return out
}

// RootURL is the prefix every document URL lives under. No document may
// take it for itself; it is the all-posts redirect.
const RootURL = "/blogs"

// URLForPath derives a document URL from its path relative to the content
// directory: "a/b.mdx" becomes "/blogs/a/b" and "a/index.md" becomes "/blogs/a".
func URLForPath(rel string) string {
	p := strings.ReplaceAll(rel, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	if i := strings.LastIndex(p, "."); i > strings.LastIndex(p, "/") {
		p = p[:i]
	}
	if p == "index" {
		p = ""
	}
	p = strings.TrimSuffix(p, "/index")
	if p == "" {
		return RootURL
	}
	return RootURL + "/" + p
}
