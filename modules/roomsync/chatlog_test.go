package roomsync

import (
	"fmt"
	"testing"
	"time"

	domain "github.com/zkeq/Self-Cinema/domain/room"
)

func makeMessage(i int, ts time.Time) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        fmt.Sprintf("msg-%d", i),
		Sender:    "tester",
		Content:   fmt.Sprintf("message %d", i),
		Timestamp: ts,
		Type:      "chat",
	}
}

func TestChatRoomStoreCapacityBound(t *testing.T) {
	const capacity = 5
	store := NewChatRoomStore(capacity)
	base := time.Now()

	// Append capacity+3 messages; the oldest three must be evicted.
	for i := 1; i <= capacity+3; i++ {
		store.AddMessage("room1", makeMessage(i, base.Add(time.Duration(i)*time.Second)))
	}

	got := store.Messages("room1", nil)
	if len(got) != capacity {
		t.Fatalf("log length = %d, want %d", len(got), capacity)
	}

	// The survivors are the most recent messages in arrival order.
	for i, msg := range got {
		wantID := fmt.Sprintf("msg-%d", i+4)
		if msg.ID != wantID {
			t.Errorf("message[%d].ID = %s, want %s", i, msg.ID, wantID)
		}
	}
}

func TestChatRoomStoreLengthNeverExceedsCapacity(t *testing.T) {
	store := NewChatRoomStore(3)
	base := time.Now()

	for i := 1; i <= 10; i++ {
		store.AddMessage("room1", makeMessage(i, base))
		if n := store.Len("room1"); n > 3 {
			t.Fatalf("after %d appends log length = %d, capacity 3 exceeded", i, n)
		}
	}
}

func TestChatRoomStoreDefaultCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		store := NewChatRoomStore(capacity)
		if store.capacity != DefaultHistorySize {
			t.Errorf("NewChatRoomStore(%d) capacity = %d, want %d", capacity, store.capacity, DefaultHistorySize)
		}
	}
}

func TestChatRoomStoreSinceFilter(t *testing.T) {
	store := NewChatRoomStore(10)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		store.AddMessage("room1", makeMessage(i, base.Add(time.Duration(i)*time.Minute)))
	}

	// The cursor is strictly exclusive: the boundary message is not
	// re-delivered on the next poll.
	since := base.Add(3 * time.Minute)
	got := store.Messages("room1", &since)
	if len(got) != 2 {
		t.Fatalf("messages after cursor = %d, want 2", len(got))
	}
	if got[0].ID != "msg-4" || got[1].ID != "msg-5" {
		t.Errorf("got %s, %s, want msg-4, msg-5", got[0].ID, got[1].ID)
	}

	// Same arguments on unchanged state yield identical results.
	again := store.Messages("room1", &since)
	if len(again) != len(got) {
		t.Fatalf("repeated poll returned %d messages, want %d", len(again), len(got))
	}
	for i := range got {
		if again[i].ID != got[i].ID {
			t.Errorf("repeated poll message[%d] = %s, want %s", i, again[i].ID, got[i].ID)
		}
	}

	// The filtered result is exactly the suffix of the full log whose
	// timestamps are greater than the cursor.
	full := store.Messages("room1", nil)
	var wantSubset []domain.ChatMessage
	for _, m := range full {
		if m.Timestamp.After(since) {
			wantSubset = append(wantSubset, m)
		}
	}
	if len(wantSubset) != len(got) {
		t.Errorf("filtered result has %d messages, full-log subset has %d", len(got), len(wantSubset))
	}
}

func TestChatRoomStoreUnknownRoom(t *testing.T) {
	store := NewChatRoomStore(10)

	got := store.Messages("nonexistent", nil)
	if got == nil {
		t.Fatal("unknown room returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("unknown room returned %d messages, want 0", len(got))
	}
}

func TestChatRoomStoreSnapshotIsIndependent(t *testing.T) {
	store := NewChatRoomStore(10)
	store.AddMessage("room1", makeMessage(1, time.Now()))

	snapshot := store.Messages("room1", nil)
	snapshot[0].Content = "mutated"

	fresh := store.Messages("room1", nil)
	if fresh[0].Content != "message 1" {
		t.Errorf("internal state mutated through snapshot: content = %q", fresh[0].Content)
	}
}

func TestChatRoomStoreKeepsArrivalOrder(t *testing.T) {
	store := NewChatRoomStore(10)
	base := time.Now()

	// Client-supplied timestamps arrive out of order; the log still
	// reflects arrival order.
	store.AddMessage("room1", makeMessage(1, base.Add(time.Hour)))
	store.AddMessage("room1", makeMessage(2, base.Add(-time.Hour)))
	store.AddMessage("room1", makeMessage(3, base))

	got := store.Messages("room1", nil)
	for i, msg := range got {
		wantID := fmt.Sprintf("msg-%d", i+1)
		if msg.ID != wantID {
			t.Errorf("message[%d].ID = %s, want %s", i, msg.ID, wantID)
		}
	}
}

func TestChatRoomStoreRoomsAreIndependent(t *testing.T) {
	store := NewChatRoomStore(2)
	base := time.Now()

	for i := 1; i <= 4; i++ {
		store.AddMessage("room-a", makeMessage(i, base))
	}
	store.AddMessage("room-b", makeMessage(99, base))

	if n := store.Len("room-a"); n != 2 {
		t.Errorf("room-a length = %d, want 2", n)
	}
	if n := store.Len("room-b"); n != 1 {
		t.Errorf("room-b length = %d, want 1", n)
	}
}

func TestChatRoomStoreEvictIdle(t *testing.T) {
	store := NewChatRoomStore(10)
	store.AddMessage("stale", makeMessage(1, time.Now()))
	store.activity["stale"] = time.Now().Add(-2 * time.Hour)
	store.AddMessage("fresh", makeMessage(2, time.Now()))

	evicted := store.EvictIdle(time.Now().Add(-time.Hour))
	if evicted != 1 {
		t.Fatalf("evicted = %d, want 1", evicted)
	}
	if store.Len("stale") != 0 {
		t.Error("stale room still holds messages after eviction")
	}
	if store.Len("fresh") != 1 {
		t.Error("fresh room was evicted")
	}
}
