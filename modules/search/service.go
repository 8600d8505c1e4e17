package search

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds each provider request.
	DefaultTimeout = 8 * time.Second

	// maxConcurrentProviders bounds the fan-out.
	maxConcurrentProviders = 4
)

// Service aggregates keyword searches across all configured providers.
type Service struct {
	providers []Provider
	client    *http.Client
	timeout   time.Duration
}

// NewService creates a new search Service.
func NewService(providers []Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		providers: providers,
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Search fans out the keyword to every provider concurrently and merges
// the results. A failing provider is logged and skipped; the aggregate
// only fails when the keyword is invalid.
func (s *Service) Search(ctx context.Context, keyword string) ([]Resource, error) {
	if keyword == "" {
		return nil, ErrKeywordRequired
	}

	var mu sync.Mutex
	merged := make([]Resource, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProviders)

	for _, p := range s.providers {
		g.Go(func() error {
			reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			results, err := queryProvider(reqCtx, s.client, p, keyword)
			if err != nil {
				// Partial results beat no results.
				log.Printf("[search] provider %s failed: %v", p.Name, err)
				return nil
			}

			mu.Lock()
			merged = append(merged, results...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Providers returns the configured provider names.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name)
	}
	return names
}
