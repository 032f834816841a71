package models

// SearchResult is one ranked match returned by the search engine.
type SearchResult struct {
	TopicID    string `json:"topic_id"`
	Title      string `json:"title"`
	Breadcrumb string `json:"breadcrumb"`
	Snippet    string `json:"snippet"`
	Score      int    `json:"score"`
}
