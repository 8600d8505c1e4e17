package share

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/zkeq/Self-Cinema/domain/share"
	"github.com/zkeq/Self-Cinema/modules/cache"
	"github.com/zkeq/Self-Cinema/modules/catalog"
)

var (
	// ErrShareExpired is returned when a share link has passed its expiry.
	ErrShareExpired = errors.New("share link has expired")
	// ErrSeriesIDRequired is returned when the series id is missing.
	ErrSeriesIDRequired = errors.New("series id is required")
)

// CatalogSource provides the catalog lookups needed to build a watch page.
type CatalogSource interface {
	GetSeries(ctx context.Context, id string) (*catalog.SeriesView, error)
	ListEpisodes(ctx context.Context, seriesID string) ([]catalog.EpisodeView, error)
}

// ShareResult describes a newly created share link.
type ShareResult struct {
	Hash      string
	ShareURL  string
	ExpiresAt *time.Time
}

// WatchPage is the public payload a share hash resolves to.
type WatchPage struct {
	Series   catalog.SeriesView    `json:"series"`
	Episodes []catalog.EpisodeView `json:"episodes"`
}

// Service handles share link business logic.
type Service struct {
	repo    ShareRepository
	catalog CatalogSource

	// cache is optional; nil disables watch-page caching.
	cache *cache.Cache
}

// NewService creates a new share Service.
func NewService(repo ShareRepository, catalogSource CatalogSource, c *cache.Cache) *Service {
	return &Service{
		repo:    repo,
		catalog: catalogSource,
		cache:   c,
	}
}

// CreateShare creates a share link for a series. A zero expireHours makes
// the link permanent. baseURL is the public origin the share url is built
// against.
func (s *Service) CreateShare(ctx context.Context, seriesID, baseURL string, expireHours int) (*ShareResult, error) {
	if seriesID == "" {
		return nil, ErrSeriesIDRequired
	}

	// Verify the series exists before handing out a link.
	if _, err := s.catalog.GetSeries(ctx, seriesID); err != nil {
		return nil, fmt.Errorf("failed to verify series: %w", err)
	}

	now := time.Now()
	link := &domain.ShareLink{
		Hash:      generateHash(seriesID, now),
		SeriesID:  seriesID,
		CreatedAt: now,
	}
	if expireHours > 0 {
		expires := now.Add(time.Duration(expireHours) * time.Hour)
		link.ExpiresAt = &expires
	}

	if err := s.repo.Create(link); err != nil {
		return nil, fmt.Errorf("failed to create share link: %w", err)
	}

	return &ShareResult{
		Hash:      link.Hash,
		ShareURL:  fmt.Sprintf("%s/watch/%s", strings.TrimRight(baseURL, "/"), link.Hash),
		ExpiresAt: link.ExpiresAt,
	}, nil
}

// ResolveWatch resolves a share hash to its watch page. The link is
// always checked against the database for existence and expiry; only the
// catalog payload is cached.
func (s *Service) ResolveWatch(ctx context.Context, hash string) (*WatchPage, error) {
	link, err := s.repo.FindByHash(hash)
	if err != nil {
		return nil, err
	}
	if link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt) {
		return nil, ErrShareExpired
	}

	if s.cache != nil {
		var page WatchPage
		found, err := s.cache.Get(ctx, hash, &page)
		if err != nil {
			log.Printf("[share] cache read failed for %s: %v", hash, err)
		} else if found {
			return &page, nil
		}
	}

	series, err := s.catalog.GetSeries(ctx, link.SeriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	episodes, err := s.catalog.ListEpisodes(ctx, link.SeriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to load episodes: %w", err)
	}

	page := &WatchPage{
		Series:   *series,
		Episodes: episodes,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hash, page); err != nil {
			log.Printf("[share] cache write failed for %s: %v", hash, err)
		}
	}

	return page, nil
}

// PurgeSeries removes all share links of a series along with their cached
// watch pages. Used when the series itself is deleted.
func (s *Service) PurgeSeries(ctx context.Context, seriesID string) error {
	if s.cache != nil {
		links, err := s.repo.ListBySeries(seriesID)
		if err != nil {
			return fmt.Errorf("failed to list share links: %w", err)
		}
		for _, link := range links {
			if err := s.cache.Delete(ctx, link.Hash); err != nil {
				log.Printf("[share] cache invalidation failed for %s: %v", link.Hash, err)
			}
		}
	}

	if err := s.repo.DeleteBySeries(seriesID); err != nil {
		return fmt.Errorf("failed to delete share links: %w", err)
	}
	return nil
}
