// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// WriteManifest writes the run manifest as YAML next to the exported
// documents and returns its path.
func (e *Exporter) WriteManifest(m types.RunManifest) (string, error) {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return "", &types.FSError{Path: e.cfg.OutputDir, Err: err}
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(e.cfg.OutputDir, fmt.Sprintf("run_%s.yaml", m.RunID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &types.FSError{Path: path, Err: err}
	}
	return path, nil
}
