package roomsync

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestPlaybackStoreVersionStartsAtOne(t *testing.T) {
	store := NewPlaybackStore()

	st := store.Update("room1", "http://x/1.mp4")
	if st.Version != 1 {
		t.Errorf("first update version = %d, want 1", st.Version)
	}
	if st.URL != "http://x/1.mp4" {
		t.Errorf("url = %q, want http://x/1.mp4", st.URL)
	}
	if st.UpdatedAt.IsZero() {
		t.Error("updated_at not set")
	}
}

func TestPlaybackStoreVersionMonotonic(t *testing.T) {
	store := NewPlaybackStore()

	const updates = 20
	for i := 1; i <= updates; i++ {
		st := store.Update("room1", fmt.Sprintf("http://x/%d.mp4", i))
		if st.Version != int64(i) {
			t.Fatalf("update %d produced version %d", i, st.Version)
		}
	}

	st, ok := store.Get("room1")
	if !ok {
		t.Fatal("room1 absent after updates")
	}
	if st.Version != updates {
		t.Errorf("final version = %d, want %d", st.Version, updates)
	}
	if st.URL != fmt.Sprintf("http://x/%d.mp4", updates) {
		t.Errorf("final url = %q, want latest", st.URL)
	}
}

func TestPlaybackStoreConcurrentUpdates(t *testing.T) {
	store := NewPlaybackStore()

	const goroutines = 25
	const perGoroutine = 40
	versions := make(chan int64, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				st := store.Update("room1", fmt.Sprintf("http://x/%d-%d.mp4", g, i))
				versions <- st.Version
			}
		}(g)
	}
	wg.Wait()
	close(versions)

	// Every version 1..N must appear exactly once: no duplicates, no gaps.
	seen := make(map[int64]int)
	for v := range versions {
		seen[v]++
	}
	total := int64(goroutines * perGoroutine)
	for v := int64(1); v <= total; v++ {
		if seen[v] != 1 {
			t.Fatalf("version %d produced %d times, want exactly once", v, seen[v])
		}
	}

	st, _ := store.Get("room1")
	if st.Version != total {
		t.Errorf("final version = %d, want %d", st.Version, total)
	}
}

func TestPlaybackStoreUnknownRoomIsAbsent(t *testing.T) {
	store := NewPlaybackStore()

	st, ok := store.Get("nonexistent")
	if ok {
		t.Fatal("unknown room reported as present")
	}
	if st.Version != 0 || st.URL != "" {
		t.Errorf("absent room returned non-zero state: %+v", st)
	}
}

func TestPlaybackStoreRoomsAreIndependent(t *testing.T) {
	store := NewPlaybackStore()

	store.Update("room-a", "http://a/1.mp4")
	store.Update("room-a", "http://a/2.mp4")
	store.Update("room-b", "http://b/1.mp4")

	a, _ := store.Get("room-a")
	b, _ := store.Get("room-b")
	if a.Version != 2 {
		t.Errorf("room-a version = %d, want 2", a.Version)
	}
	if b.Version != 1 {
		t.Errorf("room-b version = %d, want 1", b.Version)
	}
}

func TestPlaybackStoreEvictIdle(t *testing.T) {
	store := NewPlaybackStore()

	store.Update("stale", "http://x/1.mp4")
	st := store.states["stale"]
	st.UpdatedAt = time.Now().Add(-2 * time.Hour)
	store.states["stale"] = st
	store.Update("fresh", "http://x/2.mp4")

	evicted := store.EvictIdle(time.Now().Add(-time.Hour))
	if evicted != 1 {
		t.Fatalf("evicted = %d, want 1", evicted)
	}
	if _, ok := store.Get("stale"); ok {
		t.Error("stale room still present after eviction")
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("fresh room was evicted")
	}
}
