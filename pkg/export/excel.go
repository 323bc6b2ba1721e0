package export

import (
	"context"
	"fmt"
)

// Workbook is the spreadsheet-building capability the Excel renderer
// delegates to. Implementations live outside the engine (pkg/excel).
type Workbook interface {
	AddSheet(name string) error
	AppendRow(sheet string, cells []string) error
	StyleHeaderRow(sheet string, columns int) error
	SetColumnWidth(sheet string, column int, width float64) error
	SetAutoFilter(sheet string, rows, columns int) error
	Bytes() ([]byte, error)
}

// WorkbookFactory creates a fresh workbook per export call. A nil factory
// means the capability is absent and rendering fails before any work begins.
type WorkbookFactory func() (Workbook, error)

// Column widths auto-size to the longest rendered value, capped so one long
// subject line cannot blow up the sheet.
const (
	maxColumnWidth  = 50.0
	columnWidthPad  = 2.0
	statisticsSheet = "Statistics"
)

// ExcelRenderer produces one sheet per category plus a statistics sheet,
// with a styled header row, an autofilter over the populated region and
// auto-sized column widths.
type ExcelRenderer struct {
	templates   TemplateSet
	newWorkbook WorkbookFactory
}

func NewExcelRenderer(templates TemplateSet, factory WorkbookFactory) *ExcelRenderer {
	return &ExcelRenderer{templates: templates, newWorkbook: factory}
}

func (r *ExcelRenderer) Render(_ context.Context, ds *Dataset, _ Options) (*Result, error) {
	if r.newWorkbook == nil {
		return nil, fmt.Errorf("spreadsheet builder: %w", ErrMissingCapability)
	}
	wb, err := r.newWorkbook()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet builder: %w", err)
	}

	sheets := []struct {
		name     string
		category string
	}{
		{"Requests", CategoryRequests},
		{"Approvals", CategoryApprovals},
		{"Rejections", CategoryRejections},
		{"Comments", CategoryComments},
	}
	for _, s := range sheets {
		tpl, _, err := r.templates.Lookup(s.category)
		if err != nil {
			return nil, err
		}
		if err := writeSheet(wb, s.name, tpl.Headers, tpl.Rows(ds)); err != nil {
			return nil, err
		}
	}

	if err := writeSheet(wb, statisticsSheet, []string{"Metric", "Value"}, statisticsRows(ds.Summary)); err != nil {
		return nil, err
	}

	content, err := wb.Bytes()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return newResult(content, "report", "xlsx", MediaTypeXLSX), nil
}

func writeSheet(wb Workbook, name string, headers []string, rows [][]string) error {
	if err := wb.AddSheet(name); err != nil {
		return fmt.Errorf("add sheet %s: %w", name, err)
	}
	if err := wb.AppendRow(name, headers); err != nil {
		return fmt.Errorf("write header %s: %w", name, err)
	}
	for _, row := range rows {
		if err := wb.AppendRow(name, row); err != nil {
			return fmt.Errorf("write row %s: %w", name, err)
		}
	}
	if err := wb.StyleHeaderRow(name, len(headers)); err != nil {
		return fmt.Errorf("style header %s: %w", name, err)
	}
	for col := range headers {
		width := float64(len(headers[col]))
		for _, row := range rows {
			if col < len(row) && float64(len(row[col])) > width {
				width = float64(len(row[col]))
			}
		}
		width += columnWidthPad
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := wb.SetColumnWidth(name, col+1, width); err != nil {
			return fmt.Errorf("size column %s: %w", name, err)
		}
	}
	if err := wb.SetAutoFilter(name, len(rows)+1, len(headers)); err != nil {
		return fmt.Errorf("set autofilter %s: %w", name, err)
	}
	return nil
}

func statisticsRows(s *Summary) [][]string {
	return [][]string{
		{"Total Requests", fmt.Sprintf("%d", s.TotalRequests)},
		{"Pending Requests", fmt.Sprintf("%d", s.PendingRequests)},
		{"Approved Requests", fmt.Sprintf("%d", s.ApprovedRequests)},
		{"Rejected Requests", fmt.Sprintf("%d", s.RejectedRequests)},
		{"Total Approvals", fmt.Sprintf("%d", s.TotalApprovals)},
		{"Total Rejections", fmt.Sprintf("%d", s.TotalRejections)},
		{"Total Comments", fmt.Sprintf("%d", s.TotalComments)},
		{"Average Approval Time", s.AvgApprovalTime},
		{"Most Active Requester", s.MostActiveRequester},
		{"Most Common Workflow", s.MostCommonWorkflow},
	}
}
