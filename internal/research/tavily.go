// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-engine/internal/httputil"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// tavilyAPIURL is the Tavily search endpoint. Declared as a var so tests
// can substitute an httptest server.
var tavilyAPIURL = "https://api.tavily.com/search"

// TavilyProvider queries the Tavily search API.
type TavilyProvider struct {
	Client *http.Client
}

// tavilyRequest is the request body for the Tavily search API.
type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

// tavilyResponse is the response body from the Tavily search API.
type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search posts the query to Tavily and returns the result snippets.
func (p *TavilyProvider) Search(ctx context.Context, query string, cfg types.ResearchConfig) ([]types.SearchResult, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &types.ConfigError{Key: "tavily-api-key"}
	}

	depth := cfg.SearchDepth
	if depth == "" {
		depth = "advanced"
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 6
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:      cfg.APIKey,
		Query:       query,
		SearchDepth: depth,
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: timeoutOr(cfg.Timeout, 30*time.Second)}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, &types.ServiceError{Provider: "tavily", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &types.ServiceError{
			Provider: "tavily",
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(msg))),
		}
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &types.ServiceError{Provider: "tavily", Err: fmt.Errorf("parsing response: %w", err)}
	}

	results := make([]types.SearchResult, 0, len(tr.Results))
	for _, r := range tr.Results {
		results = append(results, types.SearchResult{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return results, nil
}

// timeoutOr returns d, or fallback when d is zero.
func timeoutOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
