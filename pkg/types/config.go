package types

import "time"

// HTTPConfig holds shared HTTP settings used by adapters that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResearchConfig holds settings for the research stage.
type ResearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SearchDepth selects the provider's depth mode: basic or advanced
	// (default advanced).
	SearchDepth string `json:"search_depth" yaml:"search_depth"`

	// MaxResults is the maximum number of snippets to request (default 6).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-1.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// GenerationConfig holds settings for the writing stage.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// Temperature controls sampling randomness (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir is the directory for exported documents (default "doc").
	// Created on demand.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Research   ResearchConfig   `json:"research" yaml:"research"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Export     ExportConfig     `json:"export" yaml:"export"`
}
