// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate produces paper text from accumulated research via a
// Generative AI API. Implements: prd002-writing.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// Backend abstracts the Generative AI API so tests can supply a mock.
// Each implementation takes one rendered prompt and returns the raw model
// text unmodified.
type Backend interface {
	Complete(ctx context.Context, prompt string, cfg types.GenerationConfig) (string, error)
}

// Generator drives the writing stage. The model output is passed through
// unchanged: malformed or empty paper text is the caller's problem, not an
// error here.
type Generator struct {
	backend Backend
	cfg     types.GenerationConfig
}

// New returns a Generator using the given backend and configuration.
func New(backend Backend, cfg types.GenerationConfig) *Generator {
	return &Generator{backend: backend, cfg: cfg}
}

// Generate writes a paper about topic grounded in the research text.
// A missing API key fails before the backend is invoked.
func (g *Generator) Generate(ctx context.Context, topic, research string) (string, error) {
	if err := g.checkKey(); err != nil {
		return "", err
	}

	prompt, err := renderWritingPrompt(topic, research)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return g.backend.Complete(ctx, prompt, g.cfg)
}

// Revise applies a reader's change request to an existing paper and
// returns the rewritten content.
func (g *Generator) Revise(ctx context.Context, topic, content, changeRequest string) (string, error) {
	if err := g.checkKey(); err != nil {
		return "", err
	}

	prompt, err := renderRevisionPrompt(topic, content, changeRequest)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return g.backend.Complete(ctx, prompt, g.cfg)
}

func (g *Generator) checkKey() error {
	if strings.TrimSpace(g.cfg.APIKey) == "" {
		return &types.ConfigError{Key: "google-api-key"}
	}
	return nil
}
