package share

import (
	"time"
)

// CreateShareRequest represents a share creation request.
type CreateShareRequest struct {
	SeriesID    string `json:"series_id"`
	BaseURL     string `json:"base_url"`
	ExpireHours int    `json:"expire_hours"`
}

// CreateShareResponse represents a share creation response.
type CreateShareResponse struct {
	Hash      string     `json:"hash"`
	ShareURL  string     `json:"share_url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ResolveWatchRequest represents a watch page resolution request.
type ResolveWatchRequest struct {
	Hash string `json:"hash"`
}

// ResolveWatchResponse represents a watch page resolution response. An
// unknown or expired hash is reported through the flags, not an error.
type ResolveWatchResponse struct {
	Found   bool       `json:"found"`
	Expired bool       `json:"expired,omitempty"`
	Page    *WatchPage `json:"page,omitempty"`
}

// PurgeSeriesRequest represents a purge request for a deleted series.
type PurgeSeriesRequest struct {
	SeriesID string `json:"series_id"`
}

// PurgeSeriesResponse represents a purge response.
type PurgeSeriesResponse struct {
	Purged bool `json:"purged"`
}
