package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLoadsCorpus(t *testing.T) {
	p := NewProvider()
	assert.False(t, p.Loaded())

	require.NoError(t, p.Initialize(context.Background()))
	assert.True(t, p.Loaded())

	assert.NotEmpty(t, p.Domains())
	assert.Len(t, p.States(), 50)
	assert.NotEmpty(t, p.Glossary())
	assert.NotEmpty(t, p.QuizPool())
}

func TestTopicIDsAreUnique(t *testing.T) {
	p := NewProvider()
	require.NoError(t, p.Initialize(context.Background()))

	seen := make(map[string]bool)
	for _, d := range p.Domains() {
		for _, c := range d.Categories {
			for _, topic := range c.Topics {
				require.NotEmpty(t, topic.ID)
				assert.False(t, seen[topic.ID], "duplicate topic id %q", topic.ID)
				seen[topic.ID] = true
			}
		}
	}
}

func TestFoundingDocumentsPresent(t *testing.T) {
	p := NewProvider()
	require.NoError(t, p.Initialize(context.Background()))

	ids := make(map[string]bool)
	for _, d := range p.Domains() {
		for _, c := range d.Categories {
			for _, topic := range c.Topics {
				ids[topic.ID] = true
			}
		}
	}

	for _, id := range []string{
		"declaration",
		"articles-of-confederation",
		"constitution",
		"bill-of-rights",
		"federalist-papers",
	} {
		assert.True(t, ids[id], "missing founding document %q", id)
	}
}

func TestStateLookup(t *testing.T) {
	p := NewProvider()
	require.NoError(t, p.Initialize(context.Background()))

	st, ok := p.StateByCode("VT")
	require.True(t, ok)
	assert.Equal(t, "Vermont", st.Name)
	assert.Equal(t, "state:VT", st.FavoriteID())

	_, ok = p.StateByCode("ZZ")
	assert.False(t, ok)
}

func TestQuizAnswersInRange(t *testing.T) {
	p := NewProvider()
	require.NoError(t, p.Initialize(context.Background()))

	for _, q := range p.QuizPool() {
		assert.GreaterOrEqual(t, q.Answer, 0, "question %s", q.ID)
		assert.Less(t, q.Answer, len(q.Options), "question %s", q.ID)
	}
}
