package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Config holds the search module configuration.
type Config struct {
	// Providers is a comma-separated "name=url" list of resource APIs.
	Providers string

	// Timeout bounds each provider request.
	Timeout time.Duration
}

// SearchModule provides third-party resource search aggregation.
type SearchModule struct {
	config  Config
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*SearchModule)(nil)
var _ mono.ServiceProviderModule = (*SearchModule)(nil)
var _ mono.HealthCheckableModule = (*SearchModule)(nil)

// NewModule creates a new SearchModule.
func NewModule(cfg Config) *SearchModule {
	return &SearchModule{
		config: cfg,
	}
}

// Name returns the module name.
func (m *SearchModule) Name() string {
	return "search"
}

// Start parses the provider list and initializes the service.
func (m *SearchModule) Start(_ context.Context) error {
	providers, err := parseProviders(m.config.Providers)
	if err != nil {
		return err
	}

	m.service = NewService(providers, m.config.Timeout)

	log.Printf("[search] Module started (providers: %d)", len(providers))
	return nil
}

// Stop shuts down the module.
func (m *SearchModule) Stop(_ context.Context) error {
	log.Println("[search] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *SearchModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"providers": m.service.Providers(),
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *SearchModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "search-resources", json.Unmarshal, json.Marshal, m.handleSearch,
	); err != nil {
		return fmt.Errorf("failed to register search-resources service: %w", err)
	}

	log.Println("[search] Registered services: search-resources")
	return nil
}

// handleSearch fans a keyword out to all providers.
func (m *SearchModule) handleSearch(ctx context.Context, req SearchRequest, _ *mono.Msg) (SearchResponse, error) {
	results, err := m.service.Search(ctx, req.Keyword)
	if err != nil {
		return SearchResponse{}, err
	}
	return SearchResponse{Results: results}, nil
}

// parseProviders parses a "name=url,name=url" provider list.
func parseProviders(raw string) ([]Provider, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var providers []Provider
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, baseURL, found := strings.Cut(entry, "=")
		if !found || name == "" || baseURL == "" {
			return nil, fmt.Errorf("invalid provider entry %q, want name=url", entry)
		}
		providers = append(providers, Provider{
			Name:    strings.TrimSpace(name),
			BaseURL: strings.TrimSpace(baseURL),
		})
	}
	return providers, nil
}
