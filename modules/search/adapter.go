package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// SearchPort defines the interface for resource search operations.
type SearchPort interface {
	Search(ctx context.Context, keyword string) ([]Resource, error)
}

// SearchAdapter implements SearchPort using the service container.
type SearchAdapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ SearchPort = (*SearchAdapter)(nil)

// NewSearchAdapter creates a new SearchAdapter.
func NewSearchAdapter(container mono.ServiceContainer) *SearchAdapter {
	return &SearchAdapter{
		container: container,
	}
}

// Search fans a keyword out to all configured providers.
func (a *SearchAdapter) Search(ctx context.Context, keyword string) ([]Resource, error) {
	req := SearchRequest{Keyword: keyword}
	var resp SearchResponse

	if err := helper.CallRequestReplyService(
		ctx, a.container, "search-resources", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("search-resources request failed: %w", err)
	}

	return resp.Results, nil
}
