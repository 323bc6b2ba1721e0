package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook_RoundTrip(t *testing.T) {
	t.Parallel()

	wb, err := NewWorkbook()
	require.NoError(t, err)

	require.NoError(t, wb.AddSheet("Requests"))
	require.NoError(t, wb.AppendRow("Requests", []string{"ID", "Requester"}))
	require.NoError(t, wb.AppendRow("Requests", []string{"R1", "alice"}))
	require.NoError(t, wb.StyleHeaderRow("Requests", 2))
	require.NoError(t, wb.SetColumnWidth("Requests", 1, 12))
	require.NoError(t, wb.SetAutoFilter("Requests", 2, 2))

	content, err := wb.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.NotContains(t, f.GetSheetList(), "Sheet1")

	rows, err := f.GetRows("Requests")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"ID", "Requester"}, {"R1", "alice"}}, rows)
}

func TestWorkbook_MultipleSheets(t *testing.T) {
	t.Parallel()

	wb, err := NewWorkbook()
	require.NoError(t, err)

	require.NoError(t, wb.AddSheet("Requests"))
	require.NoError(t, wb.AddSheet("Approvals"))
	require.NoError(t, wb.AppendRow("Approvals", []string{"Request ID"}))

	content, err := wb.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.ElementsMatch(t, []string{"Requests", "Approvals"}, f.GetSheetList())
}
