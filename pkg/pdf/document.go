// Package pdf backs the export engine's document capability with fpdf.
package pdf

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"github.com/OPMDOR/system-access-form/pkg/export"
)

// Document implements export.Document on an A4 portrait page in millimetres,
// using the built-in Courier face so table columns line up.
type Document struct {
	pdf *fpdf.Fpdf
}

// NewDocument is the export.DocumentFactory for fpdf-backed documents.
func NewDocument() (export.Document, error) {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetFont("Courier", "", 10)
	return &Document{pdf: p}, nil
}

func (d *Document) AddPage() {
	d.pdf.AddPage()
}

func (d *Document) SetFontSize(size float64) {
	d.pdf.SetFontSize(size)
}

func (d *Document) Text(x, y float64, s string) {
	d.pdf.Text(x, y, s)
}

func (d *Document) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
