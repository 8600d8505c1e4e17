package roomsync

import "errors"

// Sentinel errors for watch-room operations.
var (
	// ErrEmptyContent is returned when a chat message has no content.
	ErrEmptyContent = errors.New("message content is required")

	// ErrEmptyURL is returned when a playback update has no url.
	ErrEmptyURL = errors.New("playback url is required")

	// ErrNoPlayback is returned when a room has never received a playback
	// update. This is a distinct "no state yet" condition, not a
	// validation failure.
	ErrNoPlayback = errors.New("no playback state for this room yet")
)
