// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-engine/internal/export"
	"github.com/pdiddy/paper-engine/internal/research"
	"github.com/pdiddy/paper-engine/pkg/types"
)

// --- mocks ---

type mockResearcher struct {
	out   research.Output
	err   error
	calls int
}

func (m *mockResearcher) Research(_ context.Context, _ string) (research.Output, error) {
	m.calls++
	return m.out, m.err
}

type mockWriter struct {
	content string
	err     error
	calls   int
}

func (m *mockWriter) Generate(_ context.Context, _, _ string) (string, error) {
	m.calls++
	return m.content, m.err
}

type mockExporter struct {
	docxErr, pdfErr     error
	docxCalls, pdfCalls int
}

func (m *mockExporter) Docx(_, _ string) (string, error) {
	m.docxCalls++
	if m.docxErr != nil {
		return "", m.docxErr
	}
	return "doc/out.docx", nil
}

func (m *mockExporter) PDF(_, _ string) (string, error) {
	m.pdfCalls++
	if m.pdfErr != nil {
		return "", m.pdfErr
	}
	return "doc/out.pdf", nil
}

func snippets() research.Output {
	results := []types.SearchResult{
		{Title: "A", URL: "https://example.org/a", Content: "alpha"},
		{Title: "B", URL: "https://example.org/b", Content: "beta"},
		{Title: "C", URL: "https://example.org/c", Content: "gamma"},
	}
	return research.Output{Summary: research.Format("solar energy storage", results), Results: results}
}

func TestRunSuccess(t *testing.T) {
	r := &mockResearcher{out: snippets()}
	w := &mockWriter{content: "# Solar Energy Storage\n\nbody"}
	e := &mockExporter{}
	var progress bytes.Buffer

	s, err := New(r, w, e, &progress).Run(context.Background(), "solar energy storage")
	require.NoError(t, err)

	assert.Equal(t, "solar energy storage", s.Topic)
	assert.Equal(t, []string{"doc/out.docx", "doc/out.pdf"}, s.OutputPaths)
	assert.Len(t, s.Sources, 3)
	assert.Equal(t, w.content, s.PaperContent)

	// Conversation: user plan message, tool research message, assistant paper.
	require.Len(t, s.Conversation, 3)
	assert.Equal(t, types.RoleUser, s.Conversation[0].Role)
	assert.Equal(t, types.RoleTool, s.Conversation[1].Role)
	assert.Equal(t, types.RoleAssistant, s.Conversation[2].Role)

	require.Len(t, s.Exports, 2)
	assert.True(t, s.Exports[0].Success)
	assert.True(t, s.Exports[1].Success)

	assert.Contains(t, progress.String(), `researching "solar energy storage"`)
}

func TestRunEmptyTopicFailsBeforeResearch(t *testing.T) {
	r := &mockResearcher{}
	w := &mockWriter{}
	e := &mockExporter{}

	_, err := New(r, w, e, nil).Run(context.Background(), "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage plan:")
	assert.Zero(t, r.calls)
	assert.Zero(t, w.calls)
	assert.Zero(t, e.docxCalls)
}

func TestRunResearchFailureIsFailFast(t *testing.T) {
	r := &mockResearcher{err: &types.ServiceError{Provider: "tavily", Status: 502, Err: errors.New("bad gateway")}}
	w := &mockWriter{}
	e := &mockExporter{}

	s, err := New(r, w, e, nil).Run(context.Background(), "fusion")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage research:")

	var svcErr *types.ServiceError
	assert.ErrorAs(t, err, &svcErr)

	// Generation and export never ran.
	assert.Zero(t, w.calls)
	assert.Zero(t, e.docxCalls)
	assert.Zero(t, e.pdfCalls)

	// State written before the failure stays inspectable.
	assert.Equal(t, "fusion", s.Topic)
	require.Len(t, s.Conversation, 1)
	assert.Equal(t, types.RoleUser, s.Conversation[0].Role)
	assert.Empty(t, s.OutputPaths)
}

func TestRunWriteFailureSkipsExport(t *testing.T) {
	r := &mockResearcher{out: snippets()}
	w := &mockWriter{err: &types.ServiceError{Provider: "gemini", Status: 429, Err: errors.New("quota")}}
	e := &mockExporter{}

	s, err := New(r, w, e, nil).Run(context.Background(), "fusion")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage write:")
	assert.Zero(t, e.docxCalls)
	assert.NotEmpty(t, s.ResearchResults, "research output stays inspectable")
}

func TestRunEmptyPaperStillExports(t *testing.T) {
	r := &mockResearcher{out: snippets()}
	w := &mockWriter{content: ""}
	e := &mockExporter{}

	s, err := New(r, w, e, nil).Run(context.Background(), "quiet topic")
	require.NoError(t, err)
	assert.Equal(t, 1, e.docxCalls)
	assert.Equal(t, 1, e.pdfCalls)
	assert.Len(t, s.OutputPaths, 2)
}

func TestRunExportFailureRecordsPartialState(t *testing.T) {
	r := &mockResearcher{out: snippets()}
	w := &mockWriter{content: "# Paper"}
	e := &mockExporter{pdfErr: &types.FSError{Path: "doc/out.pdf", Err: errors.New("permission denied")}}

	s, err := New(r, w, e, nil).Run(context.Background(), "fusion")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage export:")

	// The docx succeeded before the pdf failed.
	require.Len(t, s.Exports, 2)
	assert.True(t, s.Exports[0].Success)
	assert.False(t, s.Exports[1].Success)
	assert.Equal(t, []string{"doc/out.docx"}, s.OutputPaths)
}

// TestRunEndToEnd drives the pipeline with mock providers and the real
// exporter: three snippets in, a ~500-word body out, two documents on disk.
func TestRunEndToEnd(t *testing.T) {
	body := "# Solar Energy Storage\n\n## Abstract\n" +
		strings.Repeat("Grid storage balances intermittent solar generation. ", 80)

	r := &mockResearcher{out: snippets()}
	w := &mockWriter{content: body}
	e := export.New(types.ExportConfig{OutputDir: t.TempDir()})

	s, err := New(r, w, e, nil).Run(context.Background(), "solar energy storage")
	require.NoError(t, err)

	require.Len(t, s.OutputPaths, 2)
	docxRe := regexp.MustCompile(`solar_energy_storage_\d{8}_\d{6}\.docx$`)
	pdfRe := regexp.MustCompile(`solar_energy_storage_\d{8}_\d{6}(_\d+)?\.pdf$`)
	assert.Regexp(t, docxRe, s.OutputPaths[0])
	assert.Regexp(t, pdfRe, s.OutputPaths[1])

	for _, p := range s.OutputPaths {
		info, err := os.Stat(p)
		require.NoError(t, err, "exported file %s must exist", p)
		assert.Positive(t, info.Size())
	}

	assert.Contains(t, s.PaperContent, "solar generation")
	assert.Contains(t, s.ResearchResults, "Research Results for 'solar energy storage'")
}
