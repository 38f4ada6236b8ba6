package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const pageWidthLandscape = 277.0

// PDFExporter renders tables as a landscape A4 document.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ContentType is the MIME type of Render output.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension is the file suffix for downloads.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render draws the title and a bordered table. Core fonts are Latin-1, so
// text goes through the UTF-8 translator.
func (e *PDFExporter) Render(t Table) ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	if t.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	colWidth := pageWidthLandscape / float64(len(t.Columns))
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(230, 232, 250)
	for _, col := range t.Columns {
		pdf.CellFormat(colWidth, 7, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, row := range t.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, tr(cell), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
