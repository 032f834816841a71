package models

type GlossaryTerm struct {
	Term          string   `json:"term"`
	Definition    string   `json:"definition"`
	SeeAlso       []string `json:"see_also,omitempty"`
	RelatedTopics []string `json:"related_topics,omitempty"`
}
