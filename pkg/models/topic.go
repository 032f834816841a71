package models

// Topic is the smallest unit of educational content. IDs are stable slugs
// and unique across the whole corpus; they are the only key used for
// lookup, favoriting and history.
type Topic struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Summary           string `json:"summary"`
	FullText          string `json:"full_text,omitempty"`
	HistoricalContext string `json:"historical_context,omitempty"`
	ImageRef          string `json:"image_ref,omitempty"`
}

type Category struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Topics      []Topic `json:"topics"`
}

// Domain is a top-level subject area. Corpus order is significant for
// display and for search tie-breaking.
type Domain struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Icon        string     `json:"icon,omitempty"`
	Description string     `json:"description,omitempty"`
	Categories  []Category `json:"categories"`
}
