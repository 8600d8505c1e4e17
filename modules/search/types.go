package search

// SearchRequest represents a resource search request.
type SearchRequest struct {
	Keyword string `json:"keyword"`
}

// SearchResponse represents a resource search response.
type SearchResponse struct {
	Results []Resource `json:"results"`
}
