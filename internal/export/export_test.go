// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// fixedExporter returns an Exporter writing into a temp dir with a frozen
// clock, so filename collisions are reproducible.
func fixedExporter(t *testing.T) *Exporter {
	t.Helper()
	e := New(types.ExportConfig{OutputDir: t.TempDir()})
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	e.now = func() time.Time { return at }
	return e
}

const samplePaper = `# Solar Energy Storage

## Abstract
Storage smooths the gap between generation and demand.

### Grid-Scale Batteries
Lithium-ion installations keep growing.

Body paragraph without markers.
`

func TestSafeTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"spaces to underscores", "solar energy storage", "solar_energy_storage"},
		{"strips punctuation", "AI: what's next?", "AI_whats_next"},
		{"keeps hyphens and underscores", "low-carbon_grid", "low-carbon_grid"},
		{"caps length", "a very long topic title that keeps going and going", "a_very_long_topic_title_that_k"},
		{"empty falls back", "???", "paper"},
		{"trims surrounding space", "  fusion  ", "fusion"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeTopic(tt.topic))
		})
	}
}

func TestParseBlocks(t *testing.T) {
	blocks := parseBlocks(samplePaper)

	want := []block{
		{1, "Solar Energy Storage"},
		{2, "Abstract"},
		{0, "Storage smooths the gap between generation and demand."},
		{3, "Grid-Scale Batteries"},
		{0, "Lithium-ion installations keep growing."},
		{0, "Body paragraph without markers."},
	}
	assert.Equal(t, want, blocks)
	assert.True(t, hasTitle(blocks))
}

func TestParseBlocksSkipsMalformedHeadings(t *testing.T) {
	blocks := parseBlocks("##### too deep\n#nospace\ntext")
	assert.Equal(t, []block{{0, "text"}}, blocks)
	assert.False(t, hasTitle(blocks))
}

func TestDocxWritesFile(t *testing.T) {
	e := fixedExporter(t)

	path, err := e.Docx(samplePaper, "solar energy storage")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(e.OutputDir(), "solar_energy_storage_20260314_150926.docx"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPDFWritesFile(t *testing.T) {
	e := fixedExporter(t)

	path, err := e.PDF(samplePaper, "solar energy storage")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(e.OutputDir(), "solar_energy_storage_20260314_150926.pdf"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportEmptyContentStillProducesFiles(t *testing.T) {
	e := fixedExporter(t)

	docxPath, err := e.Docx("", "solar energy storage")
	require.NoError(t, err)
	pdfPath, err := e.PDF("", "solar energy storage")
	require.NoError(t, err)

	for _, p := range []string{docxPath, pdfPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), "boilerplate document %s must not be empty", p)
	}
}

func TestSameSecondCollisionGetsCounterSuffix(t *testing.T) {
	e := fixedExporter(t)

	secondBody := "# Second version\n" +
		strings.Repeat("A much longer revision of the paper body. ", 50)

	first, err := e.PDF("# First version\nbody", "collision topic")
	require.NoError(t, err)
	second, err := e.PDF(secondBody, "collision topic")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(e.OutputDir(), "collision_topic_20260314_150926.pdf"), first)
	assert.Equal(t, second, filepath.Join(e.OutputDir(), "collision_topic_20260314_150926_2.pdf"))

	// The first file is untouched by the second export, and the second
	// file carries the second generation's (longer) content.
	firstInfo, err := os.Stat(first)
	require.NoError(t, err)
	assert.Positive(t, firstInfo.Size())

	secondInfo, err := os.Stat(second)
	require.NoError(t, err)
	assert.Positive(t, secondInfo.Size())
	assert.Greater(t, secondInfo.Size(), firstInfo.Size())
}

func TestTargetPathStatFailureIsFSError(t *testing.T) {
	e := fixedExporter(t)
	e.stat = func(string) (os.FileInfo, error) {
		return nil, &os.PathError{Op: "stat", Path: "doc", Err: os.ErrPermission}
	}

	_, err := e.Docx("body", "fusion")

	// A persistent stat failure must surface, not spin the counter loop.
	var fsErr *types.FSError
	require.ErrorAs(t, err, &fsErr)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestTargetPathCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "doc")
	e := New(types.ExportConfig{OutputDir: dir})

	_, err := e.Docx("x", "topic")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExportFSError(t *testing.T) {
	// A file where the output directory should be makes MkdirAll fail.
	base := t.TempDir()
	obstruction := filepath.Join(base, "doc")
	require.NoError(t, os.WriteFile(obstruction, []byte("not a dir"), 0o644))

	e := New(types.ExportConfig{OutputDir: obstruction})
	_, err := e.Docx("x", "topic")

	var fsErr *types.FSError
	require.ErrorAs(t, err, &fsErr)
	assert.Equal(t, obstruction, fsErr.Path)
}

func TestWriteManifest(t *testing.T) {
	e := fixedExporter(t)

	m := types.RunManifest{
		RunID:      "0b1f6f5e-8a33-4c2f-9f3e-1c2d3e4f5a6b",
		Topic:      "solar energy storage",
		StartedAt:  time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		Sources:    3,
		Exports: []types.ExportResult{
			{Format: types.FormatDocx, Path: "doc/a.docx", Success: true},
			{Format: types.FormatPDF, Path: "doc/a.pdf", Success: true},
		},
	}

	path, err := e.WriteManifest(m)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.RunManifest
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, m.Topic, got.Topic)
	assert.Equal(t, m.Sources, got.Sources)
	assert.Len(t, got.Exports, 2)
}
