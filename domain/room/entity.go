// Package room defines the in-memory watch-room state shared between the
// chat and playback polling endpoints. Rooms are keyed by the share-link
// hash; state is never persisted.
package room

import "time"

// ChatMessage is a single entry in a room's chat log. Messages are
// immutable once appended.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"` // "chat", "system", ...
}

// PlaybackState is the authoritative playback pointer for a room. Version
// starts at 1 on the first update and increases by exactly one on every
// subsequent update.
type PlaybackState struct {
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}
