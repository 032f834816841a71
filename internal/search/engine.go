// Package search ranks corpus topics against free-text queries. The ranking
// is a fixed-purpose heuristic over a small known corpus, not a general
// full-text index: a handful of score tiers bias exact and prefix title
// matches far above body-text mentions.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"civichub/internal/index"
	"civichub/pkg/models"
)

// Score tiers. A record gets the first tier that matches; tiers are
// mutually exclusive and checked in this order.
const (
	scoreTitleExact  = 10000
	scoreTitlePrefix = 5000
	scoreTitleWord   = 3000
	scoreTitleSubstr = 1500
	scoreBodyWord    = 800
	scoreBodySubstr  = 200
)

// MaxResults caps the result list.
const MaxResults = 50

// Snippet window: start 60 bytes before the first occurrence (clamped to
// 0), end 160 bytes after the window start (clamped to the haystack).
const (
	snippetBefore = 60
	snippetWidth  = 160
)

const ellipsis = "…"

// Engine scans a fixed record sequence. It is stateless per call and safe
// for concurrent use; callers owning interactive input are responsible for
// debouncing (see Debouncer).
type Engine struct {
	records []index.SearchRecord
}

func NewEngine(records []index.SearchRecord) *Engine {
	return &Engine{records: records}
}

// Search returns the ranked matches for query, capped at MaxResults. An
// empty (post-trim) query returns nil without scanning. Ties keep the
// original record order, so results are reproducible for a fixed corpus.
func (e *Engine) Search(query string) []models.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []models.SearchResult
	for _, rec := range e.records {
		score := scoreRecord(rec, q)
		if score == 0 {
			continue
		}
		results = append(results, models.SearchResult{
			TopicID:    rec.TopicID,
			Title:      rec.Title,
			Breadcrumb: rec.Breadcrumb,
			Snippet:    snippet(rec.Haystack, q),
			Score:      score,
		})
	}

	// Stable: equal scores keep corpus order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func scoreRecord(rec index.SearchRecord, q string) int {
	title := strings.ToLower(rec.Title)

	switch {
	case title == q:
		return scoreTitleExact
	case strings.HasPrefix(title, q):
		return scoreTitlePrefix
	case containsWord(title, q):
		return scoreTitleWord
	case strings.Contains(title, q):
		return scoreTitleSubstr
	case containsWord(rec.Haystack, q):
		return scoreBodyWord
	case strings.Contains(rec.Haystack, q):
		return scoreBodySubstr
	}
	return 0
}

// containsWord reports whether q appears in s surrounded by spaces. Both
// sides are padded so matches at the start or end of s count too.
func containsWord(s, q string) bool {
	return strings.Contains(" "+s+" ", " "+q+" ")
}

// snippet extracts a window around the first occurrence of q in the
// haystack. The title is part of the haystack, so title-tier matches get
// the same windowing. Cut points are pulled back to rune boundaries so a
// multibyte rune at a window edge is never split.
func snippet(haystack, q string) string {
	idx := strings.Index(haystack, q)
	if idx < 0 {
		// unreachable for scored records, but keep the function total
		idx = 0
	}

	start := idx - snippetBefore
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(haystack[start]) {
		start--
	}
	end := start + snippetWidth
	if end >= len(haystack) {
		end = len(haystack)
	} else {
		for end > start && !utf8.RuneStart(haystack[end]) {
			end--
		}
	}

	return ellipsis + haystack[start:end] + ellipsis
}
