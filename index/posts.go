package index

import (
	"slices"
	"strings"

	"github.com/eringen/devlog/content"
)

// RecentPosts returns the k most recent documents by effective date. Equal
// dates keep their input order. k <= 0 yields an empty slice.
func RecentPosts(docs []content.Document, k int) []content.Document {
	if k <= 0 {
		return []content.Document{}
	}
	sorted := byRecency(docs)
	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// PostsByTag returns the documents carrying a tag titled exactly tag, most
// recent first.
func PostsByTag(docs []content.Document, tag string) []content.Document {
	matched := make([]content.Document, 0)
	for _, d := range docs {
		if d.HasTag(tag) {
			matched = append(matched, d)
		}
	}
	sortByRecency(matched)
	return matched
}

// SearchByTitle keeps the documents whose title contains query, ignoring
// case. Input order is preserved and an empty query matches everything.
func SearchByTitle(docs []content.Document, query string) []content.Document {
	q := strings.ToLower(query)
	out := make([]content.Document, 0, len(docs))
	for _, d := range docs {
		if strings.Contains(strings.ToLower(d.Title), q) {
			out = append(out, d)
		}
	}
	return out
}

func byRecency(docs []content.Document) []content.Document {
	sorted := slices.Clone(docs)
	if sorted == nil {
		sorted = []content.Document{}
	}
	sortByRecency(sorted)
	return sorted
}

func sortByRecency(docs []content.Document) {
	slices.SortStableFunc(docs, func(a, b content.Document) int {
		return b.EffectiveDate().Compare(a.EffectiveDate())
	})
}
