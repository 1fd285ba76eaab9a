// Package index derives the views every page consumes from a loaded document
// collection: tag URLs, the tag frequency index and sorted or filtered post
// lists. All functions are pure; none of them modifies its input.
package index

import (
	"slices"
	"strings"

	"github.com/eringen/devlog/content"
)

// TagURLPrefix is the path prefix of every tag page.
const TagURLPrefix = "/tags/"

// DeriveTagURL maps a tag title to its page path. Spaces become underscores;
// nothing else is escaped or folded.
func DeriveTagURL(title string) string {
	return TagURLPrefix + strings.ReplaceAll(title, " ", "_")
}

// TagIndex aggregates tag usage across a document collection.
type TagIndex struct {
	// Counts maps a tag title to the number of times it occurs.
	Counts map[string]int
	// Order lists each distinct title once, in order of first appearance.
	Order []string
	// URLs maps a tag title to DeriveTagURL(title).
	URLs map[string]string
}

// BuildTagIndex walks docs in order, and each document's tags in order.
// Duplicate tags inside one document are counted individually.
func BuildTagIndex(docs []content.Document) TagIndex {
	idx := TagIndex{
		Counts: make(map[string]int),
		Order:  []string{},
		URLs:   make(map[string]string),
	}
	for _, d := range docs {
		for _, t := range d.Tags {
			if _, ok := idx.Counts[t.Title]; ok {
				idx.Counts[t.Title]++
				continue
			}
			idx.Counts[t.Title] = 1
			idx.Order = append(idx.Order, t.Title)
			idx.URLs[t.Title] = DeriveTagURL(t.Title)
		}
	}
	return idx
}

// Popular returns up to k titles ordered by descending count. Ties keep their
// first-seen order.
func (idx TagIndex) Popular(k int) []string {
	if k <= 0 {
		return []string{}
	}
	ranked := slices.Clone(idx.Order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return idx.Counts[b] - idx.Counts[a]
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// Total is the number of tag occurrences across all documents.
func (idx TagIndex) Total() int {
	n := 0
	for _, c := range idx.Counts {
		n += c
	}
	return n
}

// TitleForURL resolves a tag page path back to a tag title. When several
// titles derive the same path ("a b" and "a_b") the first-seen one wins.
func (idx TagIndex) TitleForURL(path string) (string, bool) {
	for _, title := range idx.Order {
		if idx.URLs[title] == path {
			return title, true
		}
	}
	return "", false
}

// Entry is a tag with its count and URL, convenient for rendering.
type Entry struct {
	Title string `json:"title" yaml:"title"`
	Count int    `json:"count" yaml:"count"`
	URL   string `json:"url" yaml:"url"`
}

// Entries expands titles into Entries using the index.
func (idx TagIndex) Entries(titles []string) []Entry {
	out := make([]Entry, 0, len(titles))
	for _, t := range titles {
		out = append(out, Entry{Title: t, Count: idx.Counts[t], URL: idx.URLs[t]})
	}
	return out
}
