package roomsync

import (
	"context"
	"time"

	"github.com/google/uuid"
	catalogdomain "github.com/zkeq/Self-Cinema/domain/catalog"
	domain "github.com/zkeq/Self-Cinema/domain/room"
)

// DefaultSender is used when a chat message arrives without a sender name.
const DefaultSender = "anonymous"

// DefaultMessageType tags plain chat messages; clients may supply other
// tags such as "system".
const DefaultMessageType = "chat"

// EpisodeResolver resolves a video URL to its catalog episode. Used by the
// playback comparison to decide whether two different URLs point at the
// same episode (e.g. mirrored CDN links).
type EpisodeResolver interface {
	EpisodeByURL(ctx context.Context, videoURL string) (*catalogdomain.Episode, error)
}

// Comparison is the result of reconciling a viewer's playback URL against
// the host's.
type Comparison struct {
	IsSameSource  bool `json:"is_same_source"`
	IsSameEpisode bool `json:"is_same_episode"`
}

// Service provides the watch-room polling operations on top of the two
// in-memory stores. The stores are injected so tests can construct the
// service without process-wide state.
type Service struct {
	chat     *ChatRoomStore
	playback *PlaybackStore
	episodes EpisodeResolver
}

// NewService creates a room sync service.
func NewService(chat *ChatRoomStore, playback *PlaybackStore, episodes EpisodeResolver) *Service {
	return &Service{
		chat:     chat,
		playback: playback,
		episodes: episodes,
	}
}

// PostMessage validates and appends a chat message to the room's log.
// Sender, id, timestamp and type may be client-supplied; missing fields
// are filled with defaults before the append.
func (s *Service) PostMessage(_ context.Context, roomID string, msg domain.ChatMessage) (domain.ChatMessage, error) {
	if msg.Content == "" {
		return domain.ChatMessage{}, ErrEmptyContent
	}
	if msg.Sender == "" {
		msg.Sender = DefaultSender
	}
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	if msg.Type == "" {
		msg.Type = DefaultMessageType
	}

	return s.chat.AddMessage(roomID, msg), nil
}

// PollMessages returns the room's messages after the since cursor, or the
// full log when since is nil. An unknown room is a valid empty room, not
// an error.
func (s *Service) PollMessages(_ context.Context, roomID string, since *time.Time) []domain.ChatMessage {
	return s.chat.Messages(roomID, since)
}

// UpdatePlayback validates and stores the host's playback pointer.
func (s *Service) UpdatePlayback(_ context.Context, roomID, url string) (domain.PlaybackState, error) {
	if url == "" {
		return domain.PlaybackState{}, ErrEmptyURL
	}
	return s.playback.Update(roomID, url), nil
}

// PollPlayback returns the room's current playback state and, when the
// viewer submitted its own current URL, the comparison against the host's.
// A viewer that submits nothing is assumed in sync. Returns ErrNoPlayback
// when the room has never been updated.
func (s *Service) PollPlayback(ctx context.Context, roomID, currentURL string) (domain.PlaybackState, Comparison, error) {
	st, ok := s.playback.Get(roomID)
	if !ok {
		return domain.PlaybackState{}, Comparison{}, ErrNoPlayback
	}

	if currentURL == "" || currentURL == st.URL {
		return st, Comparison{IsSameSource: true, IsSameEpisode: true}, nil
	}

	return st, Comparison{
		IsSameSource:  false,
		IsSameEpisode: s.sameEpisode(ctx, st.URL, currentURL),
	}, nil
}

// sameEpisode reports whether both URLs resolve to the same series and
// episode number in the catalog. Either URL failing to resolve means the
// episodes cannot be proven equal.
func (s *Service) sameEpisode(ctx context.Context, hostURL, viewerURL string) bool {
	if s.episodes == nil {
		return false
	}

	host, err := s.episodes.EpisodeByURL(ctx, hostURL)
	if err != nil {
		return false
	}
	viewer, err := s.episodes.EpisodeByURL(ctx, viewerURL)
	if err != nil {
		return false
	}

	return host.SeriesID == viewer.SeriesID && host.Episode == viewer.Episode
}
