package roomsync

import (
	"sync"
	"time"

	domain "github.com/zkeq/Self-Cinema/domain/room"
)

// PlaybackStore holds one playback pointer per room. A room's state moves
// from absent to version 1 on the first update and the version increases
// by exactly one on every update after that; URL and UpdatedAt always
// change together under the same lock, so concurrent updates can never
// produce duplicate or out-of-order versions.
type PlaybackStore struct {
	mu     sync.RWMutex
	states map[string]domain.PlaybackState
}

// NewPlaybackStore creates an empty playback store.
func NewPlaybackStore() *PlaybackStore {
	return &PlaybackStore{
		states: make(map[string]domain.PlaybackState),
	}
}

// Update replaces the room's playback pointer with url at the next
// version and returns the stored state.
func (s *PlaybackStore) Update(roomID, url string) domain.PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.states[roomID]
	st.URL = url
	st.UpdatedAt = time.Now()
	st.Version++
	s.states[roomID] = st
	return st
}

// Get returns the room's current state. The second return value is false
// when the room has never been updated, which callers must treat as a
// distinct "no state yet" condition rather than a zero state.
func (s *PlaybackStore) Get(roomID string) (domain.PlaybackState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[roomID]
	return st, ok
}

// Rooms reports how many rooms currently hold playback state.
func (s *PlaybackStore) Rooms() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// EvictIdle drops rooms not updated since cutoff and reports how many
// were removed. Only the idle-room janitor calls this.
func (s *PlaybackStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for roomID, st := range s.states {
		if st.UpdatedAt.Before(cutoff) {
			delete(s.states, roomID)
			evicted++
		}
	}
	return evicted
}
