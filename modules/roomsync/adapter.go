package roomsync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// RoomSyncPort defines the interface for watch-room polling operations.
// This is the port other modules use to access room sync functionality.
type RoomSyncPort interface {
	PostMessage(ctx context.Context, req PostMessageRequest) (*PostMessageResponse, error)
	PollMessages(ctx context.Context, req PollMessagesRequest) (*PollMessagesResponse, error)
	UpdatePlayback(ctx context.Context, req UpdatePlaybackRequest) (*UpdatePlaybackResponse, error)
	PollPlayback(ctx context.Context, req PollPlaybackRequest) (*PollPlaybackResponse, error)
}

// RoomSyncAdapter implements RoomSyncPort using the service container.
type RoomSyncAdapter struct {
	container mono.ServiceContainer
}

// NewRoomSyncAdapter creates a new RoomSyncAdapter.
func NewRoomSyncAdapter(container mono.ServiceContainer) *RoomSyncAdapter {
	return &RoomSyncAdapter{
		container: container,
	}
}

// PostMessage appends a chat message to a room.
func (a *RoomSyncAdapter) PostMessage(ctx context.Context, req PostMessageRequest) (*PostMessageResponse, error) {
	var resp PostMessageResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "post-chat-message", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("post-chat-message request failed: %w", err)
	}
	return &resp, nil
}

// PollMessages reads a room's chat log after the since cursor.
func (a *RoomSyncAdapter) PollMessages(ctx context.Context, req PollMessagesRequest) (*PollMessagesResponse, error) {
	var resp PollMessagesResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "poll-chat-messages", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("poll-chat-messages request failed: %w", err)
	}
	return &resp, nil
}

// UpdatePlayback sets a room's playback pointer.
func (a *RoomSyncAdapter) UpdatePlayback(ctx context.Context, req UpdatePlaybackRequest) (*UpdatePlaybackResponse, error) {
	var resp UpdatePlaybackResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-playback", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("update-playback request failed: %w", err)
	}
	return &resp, nil
}

// PollPlayback reads a room's playback pointer and comparison flags.
func (a *RoomSyncAdapter) PollPlayback(ctx context.Context, req PollPlaybackRequest) (*PollPlaybackResponse, error) {
	var resp PollPlaybackResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "poll-playback", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("poll-playback request failed: %w", err)
	}
	return &resp, nil
}
