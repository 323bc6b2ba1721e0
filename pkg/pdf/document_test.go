package pdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocument_ProducesPDFBytes(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument()
	require.NoError(t, err)

	doc.AddPage()
	doc.SetFontSize(16)
	doc.Text(10, 20, "Access Request Report")
	doc.SetFontSize(10)
	doc.Text(10, 30, "Generated: 2025-03-10")

	content, err := doc.Output()
	require.NoError(t, err)
	require.True(t, len(content) > 4)
	require.Equal(t, "%PDF", string(content[:4]))
}

func TestDocument_MultiplePages(t *testing.T) {
	t.Parallel()

	doc, err := NewDocument()
	require.NoError(t, err)

	doc.AddPage()
	doc.Text(10, 20, "page one")
	doc.AddPage()
	doc.Text(10, 20, "page two")

	content, err := doc.Output()
	require.NoError(t, err)
	require.NotEmpty(t, content)
}
