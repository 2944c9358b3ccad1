// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes generated paper content to Word and PDF documents.
// Implements: prd003-export.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// maxTopicStem caps the topic-derived portion of an export filename.
const maxTopicStem = 30

// Exporter writes documents into a configured output directory, creating
// it on demand.
type Exporter struct {
	cfg types.ExportConfig

	// now is the clock used for filename timestamps. Tests substitute a
	// fixed clock to exercise collision handling.
	now func() time.Time

	// stat checks candidate paths for collisions. Tests substitute it to
	// exercise filesystem failures.
	stat func(string) (os.FileInfo, error)
}

// New returns an Exporter for the configured output directory
// (default "doc").
func New(cfg types.ExportConfig) *Exporter {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "doc"
	}
	return &Exporter{cfg: cfg, now: time.Now, stat: os.Stat}
}

// OutputDir returns the directory exports are written to.
func (e *Exporter) OutputDir() string { return e.cfg.OutputDir }

// targetPath derives the export path for a topic: <safe_topic>_<timestamp><ext>
// under the output directory. When two exports land in the same second the
// collision is resolved with a monotonic counter suffix rather than an
// overwrite.
func (e *Exporter) targetPath(topic, ext string) (string, error) {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return "", &types.FSError{Path: e.cfg.OutputDir, Err: err}
	}

	stem := fmt.Sprintf("%s_%s", safeTopic(topic), e.now().Format("20060102_150405"))
	for n := 1; ; n++ {
		name := stem + ext
		if n > 1 {
			name = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}
		path := filepath.Join(e.cfg.OutputDir, name)

		_, err := e.stat(path)
		switch {
		case err == nil:
			// Collision; try the next counter.
		case os.IsNotExist(err):
			return path, nil
		default:
			return "", &types.FSError{Path: path, Err: err}
		}
	}
}

// safeTopic reduces a topic to a filesystem-safe filename stem: only
// letters, digits, hyphens, and underscores survive, spaces become
// underscores, and the result is capped at maxTopicStem characters.
func safeTopic(topic string) string {
	var b strings.Builder
	for _, c := range strings.TrimSpace(topic) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteRune(c)
		case c == ' ':
			b.WriteRune('_')
		}
	}
	stem := b.String()
	if len(stem) > maxTopicStem {
		stem = stem[:maxTopicStem]
	}
	if stem == "" {
		return "paper"
	}
	return stem
}
