package roomsync

import (
	"sync"
	"time"

	domain "github.com/zkeq/Self-Cinema/domain/room"
)

// DefaultHistorySize is the maximum number of messages kept per room when
// no explicit capacity is configured.
const DefaultHistorySize = 200

// ChatRoomStore keeps a bounded, per-room chat log readable through a
// timestamp cursor. Rooms are created lazily on first append. Messages are
// kept in arrival order; if clients supply backdated timestamps the since
// filter and the raw log can disagree on order. That is a known limitation
// of the polling contract and is deliberately not corrected here.
type ChatRoomStore struct {
	mu       sync.RWMutex
	logs     map[string][]domain.ChatMessage
	activity map[string]time.Time
	capacity int
}

// NewChatRoomStore creates a chat store keeping at most capacity messages
// per room.
func NewChatRoomStore(capacity int) *ChatRoomStore {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &ChatRoomStore{
		logs:     make(map[string][]domain.ChatMessage),
		activity: make(map[string]time.Time),
		capacity: capacity,
	}
}

// AddMessage appends msg to the room's log, creating the log if absent.
// When the log is full the oldest message is dropped so the capacity is
// never exceeded. Returns the stored message unchanged.
func (s *ChatRoomStore) AddMessage(roomID string, msg domain.ChatMessage) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := append(s.logs[roomID], msg)
	if len(log) > s.capacity {
		log = log[len(log)-s.capacity:]
	}
	s.logs[roomID] = log
	s.activity[roomID] = time.Now()
	return msg
}

// Messages returns the room's log oldest-first as an independent copy.
// With a non-nil since only messages whose timestamp is strictly greater
// are returned, so a client that passes back the timestamp of the last
// message it saw never receives that message again. An unknown room yields
// an empty slice.
func (s *ChatRoomStore) Messages(roomID string, since *time.Time) []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.logs[roomID]
	out := make([]domain.ChatMessage, 0, len(log))
	for _, m := range log {
		if since != nil && !m.Timestamp.After(*since) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Len reports how many messages a room currently holds.
func (s *ChatRoomStore) Len(roomID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs[roomID])
}

// Rooms reports how many rooms currently hold chat history.
func (s *ChatRoomStore) Rooms() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}

// EvictIdle drops rooms whose last append is before cutoff and reports how
// many were removed. Only the idle-room janitor calls this; with the
// janitor disabled rooms live for the process lifetime.
func (s *ChatRoomStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for roomID, last := range s.activity {
		if last.Before(cutoff) {
			delete(s.logs, roomID)
			delete(s.activity, roomID)
			evicted++
		}
	}
	return evicted
}
