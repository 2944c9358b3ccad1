// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import "strings"

// block is one renderable unit of paper content: a heading (level 1-4) or
// a paragraph (level 0).
type block struct {
	level int
	text  string
}

// parseBlocks splits paper content into headings and paragraphs using the
// leading-marker convention the generation prompt asks for (# through ####).
// This is best-effort rendering, not a Markdown parser: blank lines are
// dropped and any other line starting with '#' is skipped.
func parseBlocks(content string) []block {
	var blocks []block
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#### "):
			blocks = append(blocks, block{level: 4, text: line[5:]})
		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, block{level: 3, text: line[4:]})
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, block{level: 2, text: line[3:]})
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, block{level: 1, text: line[2:]})
		case strings.HasPrefix(line, "#"):
			// Malformed or deeper heading marker; drop it.
		default:
			blocks = append(blocks, block{level: 0, text: line})
		}
	}
	return blocks
}

// hasTitle reports whether the content already carries a level-1 heading.
// When it does not, the exporters prepend the topic as a boilerplate title
// so even empty content produces a readable document.
func hasTitle(blocks []block) bool {
	for _, b := range blocks {
		if b.level == 1 {
			return true
		}
	}
	return false
}
