package api

import "time"

// LoginRequest represents an admin login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// ChatMessageRequest represents a posted watch-room chat message. All
// fields except content are optional; defaults are filled server-side.
type ChatMessageRequest struct {
	ID        string     `json:"id"`
	Sender    string     `json:"sender" validate:"max=64"`
	Content   string     `json:"content" validate:"required,max=1000"`
	Timestamp *time.Time `json:"timestamp"`
	Type      string     `json:"type" validate:"max=32"`
}

// PlaybackUpdateRequest represents a playback pointer update.
type PlaybackUpdateRequest struct {
	URL string `json:"url" validate:"required,max=2048"`
}

// ShareCreateRequest represents a share link creation request. A zero
// ExpireHours makes the link permanent.
type ShareCreateRequest struct {
	ExpireHours int `json:"expire_hours" validate:"gte=0,lte=8760"`
}

// DeletedResponse acknowledges a delete.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
