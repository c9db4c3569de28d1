package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Exporter renders a titled document from an ordered sequence of text lines.
type Exporter interface {
	Export(title string, lines []string, w io.Writer) error
}

type pdfExporter struct{}

// NewPDFExporter creates an Exporter producing A4 portrait PDF documents.
func NewPDFExporter() Exporter {
	return &pdfExporter{}
}

// Export writes a PDF with the title centered on top and each line laid out
// below it.
func (e *pdfExporter) Export(title string, lines []string, w io.Writer) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 22)
	doc.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.MultiCell(0, 6, line, "", "L", false)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}
