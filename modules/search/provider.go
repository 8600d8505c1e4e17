package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// ErrKeywordRequired is returned when the search keyword is missing.
var ErrKeywordRequired = errors.New("search keyword is required")

// Provider is one third-party video-resource API endpoint.
type Provider struct {
	Name    string
	BaseURL string
}

// ResourceEpisode is a single playable entry parsed from a provider's
// play-url field.
type ResourceEpisode struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Resource is a normalized search hit from one provider.
type Resource struct {
	Provider string            `json:"provider"`
	Title    string            `json:"title"`
	Cover    string            `json:"cover"`
	Category string            `json:"category"`
	Year     string            `json:"year"`
	Note     string            `json:"note"`
	Episodes []ResourceEpisode `json:"episodes"`
}

// providerItem mirrors the common resource-API detail schema.
type providerItem struct {
	Name     string `json:"vod_name"`
	Pic      string `json:"vod_pic"`
	TypeName string `json:"type_name"`
	Year     string `json:"vod_year"`
	Remarks  string `json:"vod_remarks"`
	PlayURL  string `json:"vod_play_url"`
}

type providerResponse struct {
	List []providerItem `json:"list"`
}

// queryProvider fetches and normalizes one provider's results for a
// keyword. The caller controls the timeout through ctx.
func queryProvider(ctx context.Context, client *http.Client, p Provider, keyword string) ([]Resource, error) {
	endpoint := fmt.Sprintf("%s?ac=detail&wd=%s", p.BaseURL, url.QueryEscape(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	var parsed providerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	return lo.Map(parsed.List, func(item providerItem, _ int) Resource {
		return Resource{
			Provider: p.Name,
			Title:    item.Name,
			Cover:    item.Pic,
			Category: item.TypeName,
			Year:     item.Year,
			Note:     item.Remarks,
			Episodes: parsePlayURL(item.PlayURL),
		}
	}), nil
}

// parsePlayURL parses the "name$url#name$url" play-url encoding. When a
// provider lists several play sources separated by "$$$", only the first
// source is kept.
func parsePlayURL(raw string) []ResourceEpisode {
	if raw == "" {
		return nil
	}

	if idx := strings.Index(raw, "$$$"); idx >= 0 {
		raw = raw[:idx]
	}

	var episodes []ResourceEpisode
	for _, entry := range strings.Split(raw, "#") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, playURL, found := strings.Cut(entry, "$")
		if !found || playURL == "" {
			continue
		}
		episodes = append(episodes, ResourceEpisode{
			Name: name,
			URL:  playURL,
		})
	}
	return episodes
}
