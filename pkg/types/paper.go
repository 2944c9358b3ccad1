// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-engine pipeline.
// Implements: prd001-research (SearchResult);
//
//	prd002-writing (Message, Role);
//	prd003-export (ExportResult, RunManifest).
package types

import "time"

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks input supplied by the person running the pipeline.
	RoleUser Role = "user"

	// RoleAssistant marks text produced by the generation provider.
	RoleAssistant Role = "assistant"

	// RoleTool marks output of a tool call, such as search results.
	RoleTool Role = "tool"
)

// Message is one entry in the pipeline conversation. Messages are
// immutable once appended to the state.
type Message struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// SearchResult is a single snippet returned by the search provider.
type SearchResult struct {
	// Title is the page or article title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// URL is the source address used for attribution.
	URL string `json:"url" yaml:"url"`

	// Content is the snippet text.
	Content string `json:"content" yaml:"content"`
}

// ExportFormat identifies a document export format.
type ExportFormat string

const (
	FormatDocx ExportFormat = "docx"
	FormatPDF  ExportFormat = "pdf"
)

// ExportResult records the outcome of one document export.
type ExportResult struct {
	Format  ExportFormat `json:"format" yaml:"format"`
	Path    string       `json:"path" yaml:"path"`
	Success bool         `json:"success" yaml:"success"`
}

// RunManifest summarizes one pipeline invocation. It is written as YAML
// next to the exported documents.
type RunManifest struct {
	// RunID is a UUID assigned when the pipeline starts.
	RunID string `json:"run_id" yaml:"run_id"`

	// Topic is the research topic the run was invoked with.
	Topic string `json:"topic" yaml:"topic"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// Sources is the number of search snippets the research stage returned.
	Sources int `json:"sources" yaml:"sources"`

	Exports []ExportResult `json:"exports" yaml:"exports"`
}
