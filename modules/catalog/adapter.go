package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/zkeq/Self-Cinema/domain/catalog"
)

// CatalogPort defines the interface for catalog operations. This is the
// port other modules use to access catalog functionality.
type CatalogPort interface {
	CreateSeries(ctx context.Context, input SeriesInput) (*SeriesView, error)
	ListSeries(ctx context.Context) ([]SeriesView, error)
	GetSeries(ctx context.Context, id string) (*SeriesView, error)
	UpdateSeries(ctx context.Context, id string, input SeriesInput) (*SeriesView, error)
	DeleteSeries(ctx context.Context, id string) error

	ListEpisodes(ctx context.Context, seriesID string) ([]EpisodeView, error)
	GetEpisode(ctx context.Context, id string) (*EpisodeView, error)
	CreateEpisode(ctx context.Context, input EpisodeInput) (*EpisodeView, error)
	UpdateEpisode(ctx context.Context, id string, input EpisodeInput) (*EpisodeView, error)
	DeleteEpisode(ctx context.Context, id string) error

	EpisodeByURL(ctx context.Context, videoURL string) (*domain.Episode, error)
}

// CatalogAdapter implements CatalogPort using the service container.
type CatalogAdapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ CatalogPort = (*CatalogAdapter)(nil)

// NewCatalogAdapter creates a new CatalogAdapter.
func NewCatalogAdapter(container mono.ServiceContainer) *CatalogAdapter {
	return &CatalogAdapter{
		container: container,
	}
}

func (a *CatalogAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// CreateSeries creates a new series.
func (a *CatalogAdapter) CreateSeries(ctx context.Context, input SeriesInput) (*SeriesView, error) {
	req := CreateSeriesRequest{Series: input}
	var resp SeriesResponse
	if err := a.call(ctx, "create-series", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Series, nil
}

// ListSeries returns all series.
func (a *CatalogAdapter) ListSeries(ctx context.Context) ([]SeriesView, error) {
	req := ListSeriesRequest{}
	var resp ListSeriesResponse
	if err := a.call(ctx, "list-series", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Series, nil
}

// GetSeries returns one series by ID.
func (a *CatalogAdapter) GetSeries(ctx context.Context, id string) (*SeriesView, error) {
	req := GetSeriesRequest{ID: id}
	var resp SeriesResponse
	if err := a.call(ctx, "get-series", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Series, nil
}

// UpdateSeries overwrites a series' writable fields.
func (a *CatalogAdapter) UpdateSeries(ctx context.Context, id string, input SeriesInput) (*SeriesView, error) {
	req := UpdateSeriesRequest{ID: id, Series: input}
	var resp SeriesResponse
	if err := a.call(ctx, "update-series", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Series, nil
}

// DeleteSeries removes a series and its episodes.
func (a *CatalogAdapter) DeleteSeries(ctx context.Context, id string) error {
	req := DeleteSeriesRequest{ID: id}
	var resp DeleteResponse
	return a.call(ctx, "delete-series", &req, &resp)
}

// ListEpisodes returns a series' episodes ordered by episode number.
func (a *CatalogAdapter) ListEpisodes(ctx context.Context, seriesID string) ([]EpisodeView, error) {
	req := ListEpisodesRequest{SeriesID: seriesID}
	var resp ListEpisodesResponse
	if err := a.call(ctx, "list-episodes", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Episodes, nil
}

// GetEpisode returns one episode by ID.
func (a *CatalogAdapter) GetEpisode(ctx context.Context, id string) (*EpisodeView, error) {
	req := GetEpisodeRequest{ID: id}
	var resp EpisodeResponse
	if err := a.call(ctx, "get-episode", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Episode, nil
}

// CreateEpisode creates an episode under an existing series.
func (a *CatalogAdapter) CreateEpisode(ctx context.Context, input EpisodeInput) (*EpisodeView, error) {
	req := CreateEpisodeRequest{Episode: input}
	var resp EpisodeResponse
	if err := a.call(ctx, "create-episode", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Episode, nil
}

// UpdateEpisode overwrites an episode's writable fields.
func (a *CatalogAdapter) UpdateEpisode(ctx context.Context, id string, input EpisodeInput) (*EpisodeView, error) {
	req := UpdateEpisodeRequest{ID: id, Episode: input}
	var resp EpisodeResponse
	if err := a.call(ctx, "update-episode", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Episode, nil
}

// DeleteEpisode removes an episode.
func (a *CatalogAdapter) DeleteEpisode(ctx context.Context, id string) error {
	req := DeleteEpisodeRequest{ID: id}
	var resp DeleteResponse
	return a.call(ctx, "delete-episode", &req, &resp)
}

// EpisodeByURL resolves a video url to its episode. Returns
// ErrEpisodeNotFound when the url is unknown, which the playback
// comparison treats as "cannot prove same episode".
func (a *CatalogAdapter) EpisodeByURL(ctx context.Context, videoURL string) (*domain.Episode, error) {
	req := EpisodeByURLRequest{VideoURL: videoURL}
	var resp EpisodeByURLResponse
	if err := a.call(ctx, "episode-by-url", &req, &resp); err != nil {
		return nil, err
	}
	if !resp.Found {
		return nil, ErrEpisodeNotFound
	}

	return &domain.Episode{
		ID:          resp.Episode.ID,
		SeriesID:    resp.Episode.SeriesID,
		Episode:     resp.Episode.Episode,
		Title:       resp.Episode.Title,
		Description: resp.Episode.Description,
		VideoURL:    resp.Episode.VideoURL,
		Duration:    resp.Episode.Duration,
		CoverImage:  resp.Episode.CoverImage,
		IsVip:       resp.Episode.IsVip,
		CreatedAt:   resp.Episode.CreatedAt,
	}, nil
}
