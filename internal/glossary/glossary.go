// Package glossary provides term lookup and cross-referencing into the
// topic index.
package glossary

import (
	"strings"

	"civichub/internal/index"
	"civichub/pkg/models"
)

// RelatedTopic is one resolved cross-reference from a glossary term.
type RelatedTopic struct {
	TopicID    string `json:"topic_id"`
	Title      string `json:"title"`
	Breadcrumb string `json:"breadcrumb"`
}

// Entry is a glossary term with its cross-references resolved.
type Entry struct {
	models.GlossaryTerm
	Topics []RelatedTopic `json:"topics,omitempty"`
}

type Glossary struct {
	terms  []models.GlossaryTerm
	byTerm map[string]*models.GlossaryTerm
	ix     *index.Index
}

func New(terms []models.GlossaryTerm, ix *index.Index) *Glossary {
	g := &Glossary{
		terms:  terms,
		byTerm: make(map[string]*models.GlossaryTerm, len(terms)),
		ix:     ix,
	}
	for i := range terms {
		g.byTerm[strings.ToLower(terms[i].Term)] = &terms[i]
	}
	return g
}

// Terms returns every term in corpus order.
func (g *Glossary) Terms() []models.GlossaryTerm {
	return g.terms
}

// Lookup finds a term case-insensitively and resolves its related topic ids
// through the index. Topic ids that no longer exist in the corpus are
// dropped from the result, not errors.
func (g *Glossary) Lookup(term string) (Entry, bool) {
	t, ok := g.byTerm[strings.ToLower(strings.TrimSpace(term))]
	if !ok {
		return Entry{}, false
	}

	entry := Entry{GlossaryTerm: *t}
	for _, id := range t.RelatedTopics {
		ref, ok := g.ix.Lookup(id)
		if !ok {
			continue
		}
		entry.Topics = append(entry.Topics, RelatedTopic{
			TopicID:    id,
			Title:      ref.Topic.Title,
			Breadcrumb: ref.Domain.Title + index.BreadcrumbSeparator + ref.Category.Title,
		})
	}
	return entry, true
}
