// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-engine/internal/httputil"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// geminiAPIBase is the Gemini generateContent endpoint base. Package-level
// var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// defaultModel is used when the configuration does not name a model.
const defaultModel = "gemini-1.5-flash"

// GeminiBackend calls the Gemini API to generate paper text.
type GeminiBackend struct {
	Client *http.Client
}

// geminiRequest is the request body for the Gemini generateContent API.
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig *geminiGenConfig `json:"generationConfig,omitempty"`
}

// geminiContent is one conversation turn.
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiPart is a text block within a turn.
type geminiPart struct {
	Text string `json:"text"`
}

// geminiGenConfig carries sampling parameters.
type geminiGenConfig struct {
	Temperature float64 `json:"temperature"`
}

// geminiResponse is the response body from the Gemini generateContent API.
type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt to Gemini and returns the concatenated text of
// the first candidate.
func (b *GeminiBackend) Complete(ctx context.Context, prompt string, cfg types.GenerationConfig) (string, error) {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}
	if cfg.Temperature > 0 {
		reqBody.GenerationConfig = &geminiGenConfig{Temperature: cfg.Temperature}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", cfg.APIKey)

	client := b.Client
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return "", &types.ServiceError{Provider: "gemini", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &types.ServiceError{
			Provider: "gemini",
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(msg))),
		}
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", &types.ServiceError{Provider: "gemini", Err: fmt.Errorf("parsing response: %w", err)}
	}

	if len(gr.Candidates) == 0 {
		return "", &types.ServiceError{Provider: "gemini", Err: errors.New("response contained no candidates")}
	}

	var sb strings.Builder
	for _, part := range gr.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
