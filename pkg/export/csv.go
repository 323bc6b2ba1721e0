package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
)

// CSVRenderer writes one category of the dataset as RFC 4180 delimited text.
// Fields containing the delimiter, a quote or a newline are quoted with
// internal quotes doubled.
type CSVRenderer struct {
	templates TemplateSet
}

func NewCSVRenderer(templates TemplateSet) *CSVRenderer {
	return &CSVRenderer{templates: templates}
}

func (r *CSVRenderer) Render(_ context.Context, ds *Dataset, opts Options) (*Result, error) {
	tpl, category, err := r.templates.Lookup(opts.Sheet)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tpl.Headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(tpl.Rows(ds)); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return newResult(buf.Bytes(), category, "csv", MediaTypeCSV), nil
}
