package models

import "time"

// HistoryEntry records one topic detail view. Entries are kept most-recent
// first; a re-visit moves the entry to the front instead of duplicating it.
type HistoryEntry struct {
	TopicID     string    `json:"topic_id"`
	Title       string    `json:"title"`
	DomainTitle string    `json:"domain_title,omitempty"`
	ViewedAt    time.Time `json:"viewed_at"`
}
