package roomsync

import (
	"time"

	domain "github.com/zkeq/Self-Cinema/domain/room"
)

// PostMessageRequest appends a chat message to a room. Sender, ID,
// Timestamp and Type are optional; the service fills defaults.
type PostMessageRequest struct {
	RoomID    string     `json:"room_id"`
	Sender    string     `json:"sender,omitempty"`
	Content   string     `json:"content"`
	ID        string     `json:"id,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Type      string     `json:"type,omitempty"`
}

// PostMessageResponse returns the stored message.
type PostMessageResponse struct {
	Message domain.ChatMessage `json:"message"`
}

// PollMessagesRequest reads a room's log after the optional since cursor.
type PollMessagesRequest struct {
	RoomID string     `json:"room_id"`
	Since  *time.Time `json:"since,omitempty"`
}

// PollMessagesResponse returns messages oldest-first.
type PollMessagesResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// UpdatePlaybackRequest sets a room's playback pointer.
type UpdatePlaybackRequest struct {
	RoomID string `json:"room_id"`
	URL    string `json:"url"`
}

// UpdatePlaybackResponse returns the stored state.
type UpdatePlaybackResponse struct {
	State domain.PlaybackState `json:"state"`
}

// PollPlaybackRequest reads a room's playback pointer. CurrentURL is the
// viewer's local source, used for the same-episode comparison.
type PollPlaybackRequest struct {
	RoomID     string `json:"room_id"`
	CurrentURL string `json:"current_url,omitempty"`
}

// PollPlaybackResponse returns the latest state. Found is false when the
// room has never been updated; that is an expected condition, not a
// transport error.
type PollPlaybackResponse struct {
	Found         bool                  `json:"found"`
	State         *domain.PlaybackState `json:"state,omitempty"`
	IsSameSource  bool                  `json:"is_same_source"`
	IsSameEpisode bool                  `json:"is_same_episode"`
}
