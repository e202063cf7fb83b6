package vectorsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketSearch/domain"
)

type Config struct {
	BaseURL string
	APIKey  string
}

// VectorSearchRepository talks to the optional external vector index over
// HTTP. An empty result list is a legitimate "defer to local search" answer,
// not an error.
type VectorSearchRepository struct {
	cfg    Config
	client *http.Client
}

func NewVectorSearchRepository(cfg Config) *VectorSearchRepository {
	return &VectorSearchRepository{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type searchRequest struct {
	Query   string               `json:"query"`
	Filters domain.SearchFilters `json:"filters"`
	Limit   int                  `json:"limit"`
}

type searchResponse struct {
	Results []struct {
		ProductID uint64  `json:"product_id"`
		Score     float64 `json:"score"`
	} `json:"results"`
}

func (r *VectorSearchRepository) Search(ctx context.Context, query string, filters domain.SearchFilters, limit int) ([]domain.ScoredProduct, error) {
	payload, err := json.Marshal(searchRequest{
		Query:   query,
		Filters: filters,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	url := r.cfg.BaseURL + "/v1/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Add("Content-Type", "application/json")
	if r.cfg.APIKey != "" {
		req.Header.Add("Authorization", "Bearer "+r.cfg.APIKey)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vector search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vector search returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read vector search response: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal vector search response: %w", err)
	}

	results := make([]domain.ScoredProduct, 0, len(parsed.Results))
	for _, row := range parsed.Results {
		results = append(results, domain.ScoredProduct{
			ProductID: row.ProductID,
			Score:     row.Score,
			Source:    domain.SourceExternal,
		})
	}

	return results, nil
}
