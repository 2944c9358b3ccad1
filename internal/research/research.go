// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research queries a web search API and formats the results for the
// writing stage. Implements: prd001-research.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// Provider searches a single web API. Each provider implements this
// interface per the Strategy pattern; tests supply a mock. Providers
// identify themselves in the errors they return.
type Provider interface {
	Search(ctx context.Context, query string, cfg types.ResearchConfig) ([]types.SearchResult, error)
}

// Output holds the formatted research text and the raw snippets it was
// built from.
type Output struct {
	// Summary is the formatted, source-attributed text handed to the
	// writing stage.
	Summary string

	// Results are the raw snippets, kept for the run manifest.
	Results []types.SearchResult
}

// snippetLimit caps the content length of each snippet in the summary.
const snippetLimit = 600

// Runner drives the research stage against a configured provider.
type Runner struct {
	Provider Provider
	Config   types.ResearchConfig
}

// Research builds the search query for a topic, runs it against the
// provider, and returns the formatted output. The topic must be non-empty;
// this is checked before any network call.
func (r Runner) Research(ctx context.Context, topic string) (Output, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Output{}, fmt.Errorf("topic is empty: provide a research topic")
	}

	query := fmt.Sprintf("academic research %s recent studies findings", topic)

	results, err := r.Provider.Search(ctx, query, r.Config)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Summary: Format(topic, results),
		Results: results,
	}, nil
}

// Format renders search results as numbered, source-attributed text.
func Format(topic string, results []types.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Research Results for '%s':\n\n", topic)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, r.Title)
		fmt.Fprintf(&b, "   Content: %s\n", truncate(r.Content, snippetLimit))
		fmt.Fprintf(&b, "   Source: %s\n\n", r.URL)
	}
	return b.String()
}

// truncate shortens s to at most limit runes, appending an ellipsis when
// content was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
