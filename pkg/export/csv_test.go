package export

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

func TestCSVRenderer_DefaultsToRequests(t *testing.T) {
	t.Parallel()

	r := NewCSVRenderer(DefaultTemplates())
	res, err := r.Render(context.Background(), fixtureDataset(), Options{})
	require.NoError(t, err)

	require.Equal(t, MediaTypeCSV, res.MediaType)
	require.Equal(t, len(res.Content), res.Size)
	require.Contains(t, res.Filename, "access_requests_requests_")
	require.True(t, strings.HasSuffix(res.Filename, ".csv"))

	rows, err := csv.NewReader(strings.NewReader(string(res.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 requests
	require.Equal(t, []string{"ID", "Requester", "Subject", "Status", "Submitted", "Completed", "Level", "Workflow"}, rows[0])
	require.Equal(t, "R1", rows[1][0])
}

func TestCSVRenderer_EscapesDelimiterAndQuotes(t *testing.T) {
	t.Parallel()

	records := []*request.Request{{
		ID:         "R1",
		Requester:  "alice",
		Subject:    `Widget, "Pro"`,
		WorkflowID: "wf",
		Metadata:   request.Metadata{Status: request.StatusPending, SubmittedAt: fixtureBase},
	}}
	ds := &Dataset{Requests: records, Summary: Summarize(records)}

	r := NewCSVRenderer(DefaultTemplates())
	res, err := r.Render(context.Background(), ds, Options{})
	require.NoError(t, err)

	require.Contains(t, string(res.Content), `"Widget, ""Pro"""`)

	rows, err := csv.NewReader(strings.NewReader(string(res.Content))).ReadAll()
	require.NoError(t, err)
	require.Equal(t, `Widget, "Pro"`, rows[1][2])
}

func TestCSVRenderer_CategorySheets(t *testing.T) {
	t.Parallel()

	r := NewCSVRenderer(DefaultTemplates())
	ds := fixtureDataset()

	res, err := r.Render(context.Background(), ds, Options{Sheet: CategoryApprovals})
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(res.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 approvals
	require.Equal(t, "approved", rows[1][3])

	res, err = r.Render(context.Background(), ds, Options{Sheet: CategoryComments})
	require.NoError(t, err)
	require.Contains(t, res.Filename, "access_requests_comments_")
}

func TestCSVRenderer_MissingTemplate(t *testing.T) {
	t.Parallel()

	r := NewCSVRenderer(DefaultTemplates())
	_, err := r.Render(context.Background(), fixtureDataset(), Options{Sheet: "bogus"})
	require.ErrorIs(t, err, ErrMissingTemplate)
}
