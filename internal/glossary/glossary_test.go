package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civichub/internal/index"
	"civichub/pkg/models"
)

func testGlossary() *Glossary {
	domains := []models.Domain{
		{
			ID:    "foundations",
			Title: "Foundations",
			Categories: []models.Category{
				{
					ID:    "branches",
					Title: "Branches",
					Topics: []models.Topic{
						{ID: "judicial", Title: "Judicial Branch", Summary: "Courts interpret the laws."},
					},
				},
			},
		},
	}
	terms := []models.GlossaryTerm{
		{
			Term:          "Judicial Review",
			Definition:    "The power of courts to strike down unconstitutional laws.",
			SeeAlso:       []string{"Checks and Balances"},
			RelatedTopics: []string{"judicial", "removed-topic"},
		},
		{
			Term:       "Suffrage",
			Definition: "The right to vote.",
		},
	}
	return New(terms, index.Build(domains))
}

func TestLookupCaseInsensitive(t *testing.T) {
	g := testGlossary()

	entry, ok := g.Lookup("judicial review")
	require.True(t, ok)
	assert.Equal(t, "Judicial Review", entry.Term)

	entry, ok = g.Lookup("  SUFFRAGE ")
	require.True(t, ok)
	assert.Equal(t, "Suffrage", entry.Term)

	_, ok = g.Lookup("unknown term")
	assert.False(t, ok)
}

func TestLookupResolvesRelatedTopics(t *testing.T) {
	g := testGlossary()

	entry, ok := g.Lookup("Judicial Review")
	require.True(t, ok)

	// "removed-topic" is not in the corpus and must be dropped silently
	require.Len(t, entry.Topics, 1)
	assert.Equal(t, "judicial", entry.Topics[0].TopicID)
	assert.Equal(t, "Judicial Branch", entry.Topics[0].Title)
	assert.Equal(t, "Foundations › Branches", entry.Topics[0].Breadcrumb)
}

func TestTermsKeepCorpusOrder(t *testing.T) {
	g := testGlossary()

	terms := g.Terms()
	require.Len(t, terms, 2)
	assert.Equal(t, "Judicial Review", terms[0].Term)
	assert.Equal(t, "Suffrage", terms[1].Term)
}
