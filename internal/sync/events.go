package sync

import "time"

const (
	EventFavoriteUpdate = "favorite.update"
	EventFavoriteRemove = "favorite.remove"
	EventHistoryVisit   = "history.visit"
)

// PrefEvent is broadcast to subscribers whenever a user's preferences
// change, so other devices on the same account can refresh.
type PrefEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	RefID     string    `json:"ref_id"`
	Title     string    `json:"title,omitempty"`
	Favorited bool      `json:"favorited,omitempty"`
	At        time.Time `json:"at"`
}
