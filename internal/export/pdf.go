// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/paper-engine/pkg/types"
)

// PDF writes the paper content to a PDF document and returns its path.
func (e *Exporter) PDF(content, topic string) (string, error) {
	path, err := e.targetPath(topic, ".pdf")
	if err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	blocks := parseBlocks(content)

	if !hasTitle(blocks) {
		writePDFTitle(pdf, tr(topic))
	}

	for _, b := range blocks {
		switch b.level {
		case 1:
			writePDFTitle(pdf, tr(b.text))
		case 2:
			pdf.SetFont("Helvetica", "B", 13)
			pdf.MultiCell(0, 7, tr(b.text), "", "L", false)
			pdf.Ln(2)
		case 3, 4:
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(b.text), "", "L", false)
			pdf.Ln(1)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(b.text), "", "L", false)
			pdf.Ln(2)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", &types.FSError{Path: path, Err: err}
	}
	return path, nil
}

func writePDFTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 9, title, "", "C", false)
	pdf.Ln(6)
}
