// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// Diagram renders the stage sequence as a PNG image at path, creating the
// parent directory if needed.
func Diagram(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &types.FSError{Path: dir, Err: err}
		}
	}

	g := graphviz.New()
	defer g.Close()

	graph, err := g.Graph()
	if err != nil {
		return fmt.Errorf("creating graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	var prev *cgraph.Node
	for _, name := range StageNames() {
		n, err := graph.CreateNode(name)
		if err != nil {
			return fmt.Errorf("creating node %s: %w", name, err)
		}
		n.SetShape(cgraph.BoxShape)
		if prev != nil {
			if _, err := graph.CreateEdge("", prev, n); err != nil {
				return fmt.Errorf("creating edge to %s: %w", name, err)
			}
		}
		prev = n
	}

	if err := g.RenderFilename(graph, graphviz.PNG, path); err != nil {
		return &types.FSError{Path: path, Err: err}
	}
	return nil
}
