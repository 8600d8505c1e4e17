package roomsync

import (
	"log"
	"time"
)

// janitor periodically evicts watch rooms idle beyond the configured TTL.
// The original behavior (rooms live forever) is preserved by leaving the
// TTL at zero, in which case no janitor is started.
type janitor struct {
	chat     *ChatRoomStore
	playback *PlaybackStore
	ttl      time.Duration
	done     chan struct{}
}

func newJanitor(chat *ChatRoomStore, playback *PlaybackStore, ttl time.Duration) *janitor {
	return &janitor{
		chat:     chat,
		playback: playback,
		ttl:      ttl,
		done:     make(chan struct{}),
	}
}

// run sweeps at half the TTL interval until stop is called.
func (j *janitor) run() {
	interval := j.ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-j.ttl)
			chatEvicted := j.chat.EvictIdle(cutoff)
			playbackEvicted := j.playback.EvictIdle(cutoff)
			if chatEvicted > 0 || playbackEvicted > 0 {
				log.Printf("[roomsync] evicted idle rooms (chat: %d, playback: %d)", chatEvicted, playbackEvicted)
			}
		case <-j.done:
			return
		}
	}
}

func (j *janitor) stop() {
	close(j.done)
}
