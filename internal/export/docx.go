// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/gomutex/godocx"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// Docx writes the paper content to a Word document and returns its path.
func (e *Exporter) Docx(content, topic string) (string, error) {
	path, err := e.targetPath(topic, ".docx")
	if err != nil {
		return "", err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("creating document: %w", err)
	}

	blocks := parseBlocks(content)

	if !hasTitle(blocks) {
		if _, err := doc.AddHeading(topic, 0); err != nil {
			return "", fmt.Errorf("adding title: %w", err)
		}
	}

	for _, b := range blocks {
		if b.level > 0 {
			if _, err := doc.AddHeading(b.text, uint(b.level)); err != nil {
				return "", fmt.Errorf("adding heading: %w", err)
			}
			continue
		}
		doc.AddParagraph(b.text)
	}

	if err := doc.SaveTo(path); err != nil {
		return "", &types.FSError{Path: path, Err: err}
	}
	return path, nil
}
