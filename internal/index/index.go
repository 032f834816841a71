// Package index flattens the corpus hierarchy into searchable records and
// resolves topic ids back to their place in the hierarchy.
package index

import (
	"strings"

	"civichub/pkg/models"
)

// BreadcrumbSeparator joins domain and category titles in a breadcrumb.
const BreadcrumbSeparator = " › "

// SearchRecord is the flattened, ephemeral form of one topic. Haystack is
// the lowercased concatenation of every text field and is what the search
// engine scans.
type SearchRecord struct {
	TopicID    string
	Title      string
	Breadcrumb string
	Haystack   string
}

// Ref locates a topic within the hierarchy.
type Ref struct {
	Topic    *models.Topic
	Category *models.Category
	Domain   *models.Domain
}

type Index struct {
	records []SearchRecord
	byID    map[string]Ref
}

// Build derives the flat record sequence and the id lookup map from the
// corpus. Record order is domain order, then category order, then topic
// order; the search engine relies on that order for tie-breaking, so Build
// must stay deterministic. Malformed fragments (a domain without categories,
// a category without topics) are skipped; the rest of the index still
// builds.
func Build(domains []models.Domain) *Index {
	ix := &Index{
		byID: make(map[string]Ref),
	}

	for di := range domains {
		d := &domains[di]
		if d.Categories == nil {
			continue
		}
		for ci := range d.Categories {
			c := &d.Categories[ci]
			if c.Topics == nil {
				continue
			}
			breadcrumb := d.Title + BreadcrumbSeparator + c.Title
			for ti := range c.Topics {
				t := &c.Topics[ti]
				ix.records = append(ix.records, SearchRecord{
					TopicID:    t.ID,
					Title:      t.Title,
					Breadcrumb: breadcrumb,
					Haystack:   haystack(t),
				})
				ix.byID[t.ID] = Ref{Topic: t, Category: c, Domain: d}
			}
		}
	}

	return ix
}

func haystack(t *models.Topic) string {
	parts := []string{t.Title, t.Summary}
	if t.FullText != "" {
		parts = append(parts, t.FullText)
	}
	if t.HistoricalContext != "" {
		parts = append(parts, t.HistoricalContext)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Records returns the flat record sequence in build order.
func (ix *Index) Records() []SearchRecord {
	return ix.records
}

// Lookup resolves a topic id. Absence is a valid outcome, not an error: a
// favorited or history-tracked id may reference content that has since been
// removed from the corpus.
func (ix *Index) Lookup(id string) (Ref, bool) {
	ref, ok := ix.byID[id]
	return ref, ok
}

// Len returns the number of indexed topics.
func (ix *Index) Len() int {
	return len(ix.records)
}
