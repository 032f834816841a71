package search

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civichub/internal/index"
	"civichub/pkg/models"
)

func rec(id, title, body string) index.SearchRecord {
	return index.SearchRecord{
		TopicID:    id,
		Title:      title,
		Breadcrumb: "Test › Test",
		Haystack:   strings.ToLower(title + " " + body),
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	e := NewEngine([]index.SearchRecord{rec("a", "Liberty", "body")})

	assert.Nil(t, e.Search(""))
	assert.Nil(t, e.Search("   "))
}

func TestSearchScoringTiers(t *testing.T) {
	e := NewEngine([]index.SearchRecord{
		rec("exact", "Liberty", "something else"),
		rec("prefix", "Liberty Bell History", "something else"),
		rec("title-word", "The Liberty Bell", "something else"),
		rec("title-substr", "Antiliberty Movements", "something else"),
		rec("body-word", "Unrelated Title", "a document about liberty in passing"),
		rec("body-substr", "Another Title", "pamphlets with antiliberty leanings"),
		rec("no-match", "Nothing Here", "nothing relevant"),
	})

	results := e.Search("Liberty")
	require.Len(t, results, 6)

	want := []struct {
		id    string
		score int
	}{
		{"exact", 10000},
		{"prefix", 5000},
		{"title-word", 3000},
		{"title-substr", 1500},
		{"body-word", 800},
		{"body-substr", 200},
	}
	for i, w := range want {
		assert.Equal(t, w.id, results[i].TopicID, "position %d", i)
		assert.Equal(t, w.score, results[i].Score, "position %d", i)
	}
}

func TestSearchTitleMatchBeatsBodyMatch(t *testing.T) {
	e := NewEngine([]index.SearchRecord{
		rec("body", "Some Document", "pamphlets with antiliberty leanings"),
		rec("title", "Liberty", "unrelated body"),
	})

	results := e.Search("Liberty")
	require.Len(t, results, 2)
	assert.Equal(t, "title", results[0].TopicID)
	assert.Equal(t, 10000, results[0].Score)
	assert.Equal(t, 200, results[1].Score)
}

func TestSearchWholeWordBeatsSubstring(t *testing.T) {
	e := NewEngine([]index.SearchRecord{
		rec("substr", "Antiliberty Movements", "x"),
		rec("word", "The Liberty Bell", "x"),
	})

	results := e.Search("Liberty")
	require.Len(t, results, 2)
	assert.Equal(t, "word", results[0].TopicID)
	assert.Equal(t, 3000, results[0].Score)
	assert.Equal(t, "substr", results[1].TopicID)
	assert.Equal(t, 1500, results[1].Score)
}

func TestSearchStableTieBreak(t *testing.T) {
	// identical scores must keep corpus order on every call
	var records []index.SearchRecord
	for i := 0; i < 10; i++ {
		records = append(records, rec(fmt.Sprintf("t%d", i), fmt.Sprintf("Entry %d", i), "all mention liberty here"))
	}
	e := NewEngine(records)

	first := e.Search("liberty")
	require.Len(t, first, 10)
	for i, r := range first {
		assert.Equal(t, fmt.Sprintf("t%d", i), r.TopicID)
	}

	second := e.Search("liberty")
	assert.Equal(t, first, second)
}

func TestSearchResultCap(t *testing.T) {
	var records []index.SearchRecord
	for i := 0; i < 80; i++ {
		records = append(records, rec(fmt.Sprintf("t%d", i), fmt.Sprintf("Entry %d", i), "liberty appears in every body"))
	}
	// one high-scoring record buried late in the corpus
	records = append(records, rec("top", "Liberty", "x"))

	e := NewEngine(records)
	results := e.Search("liberty")

	require.Len(t, results, MaxResults)
	assert.Equal(t, "top", results[0].TopicID)
}

func TestSearchCaseInsensitive(t *testing.T) {
	e := NewEngine([]index.SearchRecord{rec("a", "Legislative Branch", "Congress makes the laws")})

	results := e.Search("LEGISLATIVE BRANCH")
	require.Len(t, results, 1)
	assert.Equal(t, 10000, results[0].Score)
}

func TestSnippetWindowing(t *testing.T) {
	prefix := strings.Repeat("a", 100)
	hay := prefix + " liberty " + strings.Repeat("b", 200)

	s := snippet(hay, "liberty")

	// window starts 60 bytes before the match and spans 160 bytes
	require.True(t, strings.HasPrefix(s, "…"))
	require.True(t, strings.HasSuffix(s, "…"))
	core := strings.TrimSuffix(strings.TrimPrefix(s, "…"), "…")
	assert.Len(t, core, 160)
	assert.Contains(t, core, "liberty")
}

func TestSnippetClampsAtStart(t *testing.T) {
	hay := "liberty " + strings.Repeat("b", 300)

	s := snippet(hay, "liberty")
	core := strings.TrimSuffix(strings.TrimPrefix(s, "…"), "…")
	assert.True(t, strings.HasPrefix(core, "liberty"))
	assert.Len(t, core, 160)
}

func TestSnippetClampsAtEnd(t *testing.T) {
	hay := "short mention of liberty"

	s := snippet(hay, "liberty")
	assert.Equal(t, "…"+hay+"…", s)
}

func TestSnippetKeepsRunesIntact(t *testing.T) {
	// multibyte runes around both window edges must not be split
	hay := strings.Repeat("é", 100) + " liberty " + strings.Repeat("ü", 200)

	s := snippet(hay, "liberty")
	assert.True(t, utf8.ValidString(s), "snippet contains a split rune: %q", s)
	assert.Contains(t, s, "liberty")
}

func TestSearchEndToEndScenario(t *testing.T) {
	domains := []models.Domain{
		{
			ID:    "foundations",
			Title: "Foundations",
			Categories: []models.Category{
				{
					ID:    "branches",
					Title: "Branches",
					Topics: []models.Topic{
						{ID: "legislative", Title: "Legislative Branch", Summary: "Congress makes the laws..."},
					},
				},
			},
		},
	}
	ix := index.Build(domains)
	e := NewEngine(ix.Records())

	results := e.Search("legislative branch")
	require.Len(t, results, 1)
	assert.Equal(t, "legislative", results[0].TopicID)
	assert.Equal(t, "Foundations › Branches", results[0].Breadcrumb)
	assert.Equal(t, 10000, results[0].Score)
	assert.NotEmpty(t, results[0].Snippet)
}
