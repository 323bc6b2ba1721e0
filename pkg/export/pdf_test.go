package export

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

type stubDocument struct {
	pages int
	lines []string
}

func (s *stubDocument) AddPage() { s.pages++ }

func (s *stubDocument) SetFontSize(float64) {}

func (s *stubDocument) Text(_, _ float64, t string) {
	s.lines = append(s.lines, t)
}
func (s *stubDocument) Output() ([]byte, error) {
	return []byte(strings.Join(s.lines, "\n")), nil
}

func TestPDFRenderer_MissingCapability(t *testing.T) {
	t.Parallel()

	r := NewPDFRenderer(nil)
	_, err := r.Render(context.Background(), fixtureDataset(), Options{})
	require.ErrorIs(t, err, ErrMissingCapability)
}

func TestPDFRenderer_Layout(t *testing.T) {
	t.Parallel()

	doc := &stubDocument{}
	r := NewPDFRenderer(func() (Document, error) { return doc, nil })

	res, err := r.Render(context.Background(), fixtureDataset(), Options{})
	require.NoError(t, err)

	out := string(res.Content)
	require.Equal(t, MediaTypePDF, res.MediaType)
	require.Contains(t, res.Filename, "access_requests_report_")
	require.Contains(t, out, "Access Request Report")
	require.Contains(t, out, "Generated: ")
	require.Contains(t, out, "Total Requests: 3")
	require.Contains(t, out, "Average Approval Time: 3h 0m")
	require.Equal(t, 1, doc.pages)
}

func TestPDFRenderer_TableCappedAt15Rows(t *testing.T) {
	t.Parallel()

	records := make([]*request.Request, 0, 40)
	for i := 0; i < 40; i++ {
		records = append(records, &request.Request{
			ID:         "R" + strings.Repeat("x", i%5),
			Requester:  "user",
			Subject:    "subject",
			WorkflowID: "wf",
			Metadata:   request.Metadata{Status: request.StatusPending, SubmittedAt: fixtureBase},
		})
	}
	ds := &Dataset{Requests: records, Summary: Summarize(records)}

	doc := &stubDocument{}
	r := NewPDFRenderer(func() (Document, error) { return doc, nil })
	_, err := r.Render(context.Background(), ds, Options{})
	require.NoError(t, err)

	tableRows := 0
	for _, line := range doc.lines {
		if strings.HasPrefix(line, "R") {
			tableRows++
		}
	}
	require.Equal(t, pdfMaxTableRows, tableRows)
}

func TestElide(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", elide("short", 10))
	require.Equal(t, "verylon...", elide("verylongidentifier", 10))
	require.Equal(t, pdfTextCap, len([]rune(elide(strings.Repeat("a", 100), 100))))
}

func TestElide_MultibyteRunes(t *testing.T) {
	t.Parallel()

	got := elide("zugriff für änderungsanträge größerer systeme", 10)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "zugriff...", got)

	got = elide("доступ к базе данных", 10)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "доступ ...", got)

	// Below the ellipsis threshold the cut still lands on a rune boundary.
	got = elide("äöü", 2)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "äö", got)
}
