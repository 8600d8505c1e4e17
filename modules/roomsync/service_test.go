package roomsync

import (
	"context"
	"errors"
	"testing"
	"time"

	catalogdomain "github.com/zkeq/Self-Cinema/domain/catalog"
	domain "github.com/zkeq/Self-Cinema/domain/room"
)

// mockResolver implements EpisodeResolver for testing.
type mockResolver struct {
	episodes map[string]*catalogdomain.Episode
}

func newMockResolver() *mockResolver {
	return &mockResolver{
		episodes: make(map[string]*catalogdomain.Episode),
	}
}

func (m *mockResolver) add(url, seriesID string, episode int) {
	m.episodes[url] = &catalogdomain.Episode{
		ID:       url,
		SeriesID: seriesID,
		Episode:  episode,
		VideoURL: url,
	}
}

func (m *mockResolver) EpisodeByURL(_ context.Context, videoURL string) (*catalogdomain.Episode, error) {
	ep, ok := m.episodes[videoURL]
	if !ok {
		return nil, errors.New("episode not found")
	}
	return ep, nil
}

func newTestService() (*Service, *mockResolver) {
	resolver := newMockResolver()
	return NewService(NewChatRoomStore(10), NewPlaybackStore(), resolver), resolver
}

func TestPostMessageFillsDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	before := time.Now()
	stored, err := svc.PostMessage(ctx, "room1", domain.ChatMessage{Content: "hello"})
	if err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}

	if stored.Sender != DefaultSender {
		t.Errorf("sender = %q, want %q", stored.Sender, DefaultSender)
	}
	if stored.ID == "" {
		t.Error("id not assigned")
	}
	if stored.Type != DefaultMessageType {
		t.Errorf("type = %q, want %q", stored.Type, DefaultMessageType)
	}
	if stored.Timestamp.Before(before) {
		t.Error("timestamp not assigned")
	}
}

func TestPostMessageKeepsClientFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := domain.ChatMessage{
		ID:        "client-id",
		Sender:    "alice",
		Content:   "hi",
		Timestamp: ts,
		Type:      "system",
	}

	stored, err := svc.PostMessage(ctx, "room1", msg)
	if err != nil {
		t.Fatalf("PostMessage() error = %v", err)
	}
	if stored != msg {
		t.Errorf("stored message = %+v, want client fields preserved %+v", stored, msg)
	}
}

func TestPostMessageRejectsEmptyContent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.PostMessage(context.Background(), "room1", domain.ChatMessage{Sender: "alice"})
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("PostMessage() error = %v, want ErrEmptyContent", err)
	}
}

func TestUpdatePlaybackRejectsEmptyURL(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdatePlayback(context.Background(), "room1", "")
	if !errors.Is(err, ErrEmptyURL) {
		t.Errorf("UpdatePlayback() error = %v, want ErrEmptyURL", err)
	}
}

func TestPollPlaybackUnknownRoom(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.PollPlayback(context.Background(), "nonexistent", "")
	if !errors.Is(err, ErrNoPlayback) {
		t.Errorf("PollPlayback() error = %v, want ErrNoPlayback", err)
	}
}

func TestPollPlaybackSameSourceFastPath(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UpdatePlayback(ctx, "room1", "http://x/1.mp4"); err != nil {
		t.Fatalf("UpdatePlayback() error = %v", err)
	}

	// Identical URLs never consult the catalog.
	st, cmp, err := svc.PollPlayback(ctx, "room1", "http://x/1.mp4")
	if err != nil {
		t.Fatalf("PollPlayback() error = %v", err)
	}
	if !cmp.IsSameSource || !cmp.IsSameEpisode {
		t.Errorf("comparison = %+v, want both true", cmp)
	}
	if st.URL != "http://x/1.mp4" {
		t.Errorf("state url = %q", st.URL)
	}
}

func TestPollPlaybackNoViewerURL(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UpdatePlayback(ctx, "room1", "http://x/1.mp4"); err != nil {
		t.Fatalf("UpdatePlayback() error = %v", err)
	}

	_, cmp, err := svc.PollPlayback(ctx, "room1", "")
	if err != nil {
		t.Fatalf("PollPlayback() error = %v", err)
	}
	if !cmp.IsSameSource || !cmp.IsSameEpisode {
		t.Errorf("comparison without viewer url = %+v, want both true", cmp)
	}
}

func TestPollPlaybackEpisodeReconciliation(t *testing.T) {
	tests := []struct {
		name            string
		hostSeries      string
		hostEpisode     int
		viewerSeries    string
		viewerEpisode   int
		viewerResolves  bool
		wantSameEpisode bool
	}{
		{
			name:       "mirrored links for the same episode",
			hostSeries: "series-s", hostEpisode: 3,
			viewerSeries: "series-s", viewerEpisode: 3,
			viewerResolves:  true,
			wantSameEpisode: true,
		},
		{
			name:       "same series different episode",
			hostSeries: "series-s", hostEpisode: 3,
			viewerSeries: "series-s", viewerEpisode: 4,
			viewerResolves:  true,
			wantSameEpisode: false,
		},
		{
			name:       "different series same episode number",
			hostSeries: "series-s", hostEpisode: 3,
			viewerSeries: "series-t", viewerEpisode: 3,
			viewerResolves:  true,
			wantSameEpisode: false,
		},
		{
			name:       "viewer url does not resolve",
			hostSeries: "series-s", hostEpisode: 3,
			viewerResolves:  false,
			wantSameEpisode: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, resolver := newTestService()
			ctx := context.Background()

			resolver.add("http://host/a.mp4", tt.hostSeries, tt.hostEpisode)
			if tt.viewerResolves {
				resolver.add("http://viewer/b.mp4", tt.viewerSeries, tt.viewerEpisode)
			}

			if _, err := svc.UpdatePlayback(ctx, "room1", "http://host/a.mp4"); err != nil {
				t.Fatalf("UpdatePlayback() error = %v", err)
			}

			_, cmp, err := svc.PollPlayback(ctx, "room1", "http://viewer/b.mp4")
			if err != nil {
				t.Fatalf("PollPlayback() error = %v", err)
			}
			if cmp.IsSameSource {
				t.Error("is_same_source = true for different urls")
			}
			if cmp.IsSameEpisode != tt.wantSameEpisode {
				t.Errorf("is_same_episode = %v, want %v", cmp.IsSameEpisode, tt.wantSameEpisode)
			}
		})
	}
}

func TestPlaybackEndToEnd(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	st, err := svc.UpdatePlayback(ctx, "room1", "http://x/1.mp4")
	if err != nil || st.Version != 1 {
		t.Fatalf("first update: state=%+v err=%v, want version 1", st, err)
	}

	st, err = svc.UpdatePlayback(ctx, "room1", "http://x/2.mp4")
	if err != nil || st.Version != 2 {
		t.Fatalf("second update: state=%+v err=%v, want version 2", st, err)
	}

	st, cmp, err := svc.PollPlayback(ctx, "room1", "http://x/1.mp4")
	if err != nil {
		t.Fatalf("PollPlayback() error = %v", err)
	}
	if st.URL != "http://x/2.mp4" || st.Version != 2 {
		t.Errorf("state = %+v, want url http://x/2.mp4 version 2", st)
	}
	if cmp.IsSameSource {
		t.Error("is_same_source = true for stale viewer url")
	}
}

func TestPollMessagesUnknownRoomIsEmpty(t *testing.T) {
	svc, _ := newTestService()

	got := svc.PollMessages(context.Background(), "nonexistent", nil)
	if len(got) != 0 {
		t.Errorf("unknown room returned %d messages, want 0", len(got))
	}
}
