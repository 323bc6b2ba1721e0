// Package excel backs the export engine's workbook capability with excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/OPMDOR/system-access-form/pkg/export"
)

// Workbook implements export.Workbook on top of an excelize file. Rows are
// appended sequentially per sheet; the default Sheet1 is dropped once the
// first real sheet exists.
type Workbook struct {
	file    *excelize.File
	rows    map[string]int
	cleaned bool
}

// NewWorkbook is the export.WorkbookFactory for excelize-backed workbooks.
func NewWorkbook() (export.Workbook, error) {
	return &Workbook{
		file: excelize.NewFile(),
		rows: map[string]int{},
	}, nil
}

func (w *Workbook) AddSheet(name string) error {
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	if !w.cleaned {
		if err := w.file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
		w.cleaned = true
	}
	return nil
}

func (w *Workbook) AppendRow(sheet string, cells []string) error {
	w.rows[sheet]++
	ref, err := excelize.CoordinatesToCellName(1, w.rows[sheet])
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return w.file.SetSheetRow(sheet, ref, &values)
}

// StyleHeaderRow bolds and shades the first row of the sheet.
func (w *Workbook) StyleHeaderRow(sheet string, columns int) error {
	if columns == 0 {
		return nil
	}
	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return fmt.Errorf("new header style: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, "A1", end, style)
}

func (w *Workbook) SetColumnWidth(sheet string, column int, width float64) error {
	name, err := excelize.ColumnNumberToName(column)
	if err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, name, name, width)
}

// SetAutoFilter spans the populated region from A1.
func (w *Workbook) SetAutoFilter(sheet string, rows, columns int) error {
	if rows == 0 || columns == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(columns, rows)
	if err != nil {
		return err
	}
	return w.file.AutoFilter(sheet, "A1:"+end, nil)
}

func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
