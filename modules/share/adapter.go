package share

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// SharePort defines the interface for share link operations. This is the
// port other modules use to access share functionality.
type SharePort interface {
	CreateShare(ctx context.Context, seriesID, baseURL string, expireHours int) (*CreateShareResponse, error)
	ResolveWatch(ctx context.Context, hash string) (*WatchPage, error)
	PurgeSeries(ctx context.Context, seriesID string) error
}

// ShareAdapter implements SharePort using the service container.
type ShareAdapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ SharePort = (*ShareAdapter)(nil)

// NewShareAdapter creates a new ShareAdapter.
func NewShareAdapter(container mono.ServiceContainer) *ShareAdapter {
	return &ShareAdapter{
		container: container,
	}
}

func (a *ShareAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// CreateShare creates a share link for a series.
func (a *ShareAdapter) CreateShare(ctx context.Context, seriesID, baseURL string, expireHours int) (*CreateShareResponse, error) {
	req := CreateShareRequest{SeriesID: seriesID, BaseURL: baseURL, ExpireHours: expireHours}
	var resp CreateShareResponse
	if err := a.call(ctx, "create-share", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResolveWatch resolves a share hash to its watch page. Returns
// ErrShareNotFound or ErrShareExpired for the corresponding outcomes.
func (a *ShareAdapter) ResolveWatch(ctx context.Context, hash string) (*WatchPage, error) {
	req := ResolveWatchRequest{Hash: hash}
	var resp ResolveWatchResponse
	if err := a.call(ctx, "resolve-watch", &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, ErrShareNotFound
	}
	if resp.Expired {
		return nil, ErrShareExpired
	}
	return resp.Page, nil
}

// PurgeSeries removes all share links of a series.
func (a *ShareAdapter) PurgeSeries(ctx context.Context, seriesID string) error {
	req := PurgeSeriesRequest{SeriesID: seriesID}
	var resp PurgeSeriesResponse
	return a.call(ctx, "purge-series", &req, &resp)
}
