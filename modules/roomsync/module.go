package roomsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/zkeq/Self-Cinema/domain/room"
	"github.com/zkeq/Self-Cinema/modules/catalog"
)

// Config holds the room sync module configuration.
type Config struct {
	// HistorySize is the per-room chat log capacity.
	HistorySize int

	// IdleTTL evicts rooms idle beyond this duration. Zero disables
	// eviction.
	IdleTTL time.Duration
}

// DefaultConfig returns the default room sync configuration.
func DefaultConfig() Config {
	return Config{
		HistorySize: DefaultHistorySize,
		IdleTTL:     0,
	}
}

// RoomSyncModule provides the watch-room chat and playback polling
// services. All state is in memory and lost on restart.
type RoomSyncModule struct {
	config   Config
	chat     *ChatRoomStore
	playback *PlaybackStore
	service  *Service
	janitor  *janitor

	catalogAdapter *catalog.CatalogAdapter
}

// Compile-time interface checks.
var _ mono.Module = (*RoomSyncModule)(nil)
var _ mono.ServiceProviderModule = (*RoomSyncModule)(nil)
var _ mono.DependentModule = (*RoomSyncModule)(nil)
var _ mono.HealthCheckableModule = (*RoomSyncModule)(nil)

// NewModule creates a new RoomSyncModule.
func NewModule(cfg Config) *RoomSyncModule {
	return &RoomSyncModule{
		config: cfg,
	}
}

// Name returns the module name.
func (m *RoomSyncModule) Name() string {
	return "roomsync"
}

// Dependencies returns the list of module dependencies.
func (m *RoomSyncModule) Dependencies() []string {
	return []string{"catalog"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *RoomSyncModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "catalog" {
		m.catalogAdapter = catalog.NewCatalogAdapter(container)
	}
}

// Start initializes the in-memory stores and the optional idle-room
// janitor.
func (m *RoomSyncModule) Start(_ context.Context) error {
	if m.catalogAdapter == nil {
		return fmt.Errorf("catalog dependency not set")
	}

	m.chat = NewChatRoomStore(m.config.HistorySize)
	m.playback = NewPlaybackStore()
	m.service = NewService(m.chat, m.playback, m.catalogAdapter)

	if m.config.IdleTTL > 0 {
		m.janitor = newJanitor(m.chat, m.playback, m.config.IdleTTL)
		go m.janitor.run()
		log.Printf("[roomsync] idle-room janitor enabled (ttl: %s)", m.config.IdleTTL)
	}

	log.Printf("[roomsync] Module started (history size: %d)", m.chat.capacity)
	return nil
}

// Stop shuts down the module.
func (m *RoomSyncModule) Stop(_ context.Context) error {
	if m.janitor != nil {
		m.janitor.stop()
	}
	log.Println("[roomsync] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *RoomSyncModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "stores not initialized",
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"chat_rooms":     m.chat.Rooms(),
			"playback_rooms": m.playback.Rooms(),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *RoomSyncModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "post-chat-message", json.Unmarshal, json.Marshal, m.handlePostMessage,
	); err != nil {
		return fmt.Errorf("failed to register post-chat-message service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "poll-chat-messages", json.Unmarshal, json.Marshal, m.handlePollMessages,
	); err != nil {
		return fmt.Errorf("failed to register poll-chat-messages service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-playback", json.Unmarshal, json.Marshal, m.handleUpdatePlayback,
	); err != nil {
		return fmt.Errorf("failed to register update-playback service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "poll-playback", json.Unmarshal, json.Marshal, m.handlePollPlayback,
	); err != nil {
		return fmt.Errorf("failed to register poll-playback service: %w", err)
	}

	log.Println("[roomsync] Registered services: post-chat-message, poll-chat-messages, update-playback, poll-playback")
	return nil
}

// handlePostMessage appends a chat message to a room.
func (m *RoomSyncModule) handlePostMessage(ctx context.Context, req PostMessageRequest, _ *mono.Msg) (PostMessageResponse, error) {
	msg := domain.ChatMessage{
		ID:      req.ID,
		Sender:  req.Sender,
		Content: req.Content,
		Type:    req.Type,
	}
	if req.Timestamp != nil {
		msg.Timestamp = *req.Timestamp
	}

	stored, err := m.service.PostMessage(ctx, req.RoomID, msg)
	if err != nil {
		return PostMessageResponse{}, err
	}
	return PostMessageResponse{Message: stored}, nil
}

// handlePollMessages reads a room's chat log after the since cursor.
func (m *RoomSyncModule) handlePollMessages(ctx context.Context, req PollMessagesRequest, _ *mono.Msg) (PollMessagesResponse, error) {
	return PollMessagesResponse{
		Messages: m.service.PollMessages(ctx, req.RoomID, req.Since),
	}, nil
}

// handleUpdatePlayback sets a room's playback pointer.
func (m *RoomSyncModule) handleUpdatePlayback(ctx context.Context, req UpdatePlaybackRequest, _ *mono.Msg) (UpdatePlaybackResponse, error) {
	st, err := m.service.UpdatePlayback(ctx, req.RoomID, req.URL)
	if err != nil {
		return UpdatePlaybackResponse{}, err
	}
	return UpdatePlaybackResponse{State: st}, nil
}

// handlePollPlayback reads a room's playback pointer and comparison flags.
// A room that was never updated yields Found=false, not an error.
func (m *RoomSyncModule) handlePollPlayback(ctx context.Context, req PollPlaybackRequest, _ *mono.Msg) (PollPlaybackResponse, error) {
	st, cmp, err := m.service.PollPlayback(ctx, req.RoomID, req.CurrentURL)
	if err != nil {
		if errors.Is(err, ErrNoPlayback) {
			return PollPlaybackResponse{Found: false}, nil
		}
		return PollPlaybackResponse{}, err
	}

	return PollPlaybackResponse{
		Found:         true,
		State:         &st,
		IsSameSource:  cmp.IsSameSource,
		IsSameEpisode: cmp.IsSameEpisode,
	}, nil
}
