package export

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

func TestJSONRenderer_MinimalProjection(t *testing.T) {
	t.Parallel()

	records := []*request.Request{{
		ID:         "R1",
		Requester:  "A",
		Subject:    "S",
		WorkflowID: "W1",
		Metadata:   request.Metadata{Status: request.StatusPending, SubmittedAt: fixtureBase},
	}}
	rel := Extract(records)
	ds := &Dataset{Requests: records, Approvals: rel.Approvals, Rejections: rel.Rejections, Comments: rel.Comments, Summary: Summarize(records)}

	res, err := NewJSONRenderer().Render(context.Background(), ds, Options{Mode: ModeMinimal})
	require.NoError(t, err)

	var got struct {
		Requests []map[string]any `json:"requests"`
		Summary  map[string]any   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(res.Content, &got))
	require.Len(t, got.Requests, 1)
	require.Equal(t, "R1", got.Requests[0]["id"])
	require.Equal(t, "A", got.Requests[0]["requester"])
	require.Equal(t, "W1", got.Requests[0]["workflow"])
	require.NotContains(t, got.Requests[0], "workflowId")
	require.EqualValues(t, 1, got.Summary["totalRequests"])
}

func TestJSONRenderer_SummaryMode(t *testing.T) {
	t.Parallel()

	res, err := NewJSONRenderer().Render(context.Background(), fixtureDataset(), Options{Mode: ModeSummary})
	require.NoError(t, err)
	require.Contains(t, res.Filename, "access_requests_summary_")

	var got Summary
	require.NoError(t, json.Unmarshal(res.Content, &got))
	require.Equal(t, 3, got.TotalRequests)
	require.Equal(t, "3h 0m", got.AvgApprovalTime)
}

func TestJSONRenderer_FullModeStripsSensitiveFields(t *testing.T) {
	t.Parallel()

	records := fixtureRequests()
	records[0].Workflow = map[string]any{"name": "standard", "approvers": []any{"mgr-1"}}
	records[0].Data = map[string]any{"system": "billing", "sensitiveInfo": "secret"}
	rel := Extract(records)
	ds := &Dataset{Requests: records, Approvals: rel.Approvals, Rejections: rel.Rejections, Comments: rel.Comments, Summary: Summarize(records)}

	res, err := NewJSONRenderer().Render(context.Background(), ds, Options{})
	require.NoError(t, err)

	var got struct {
		Requests   []map[string]any `json:"requests"`
		Approvals  []map[string]any `json:"approvals"`
		Statistics map[string]any   `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(res.Content, &got))
	require.Len(t, got.Requests, 3)

	wf := got.Requests[0]["workflow"].(map[string]any)
	require.Equal(t, "standard", wf["name"])
	require.NotContains(t, wf, "approvers")

	data := got.Requests[0]["data"].(map[string]any)
	require.NotContains(t, data, "sensitiveInfo")

	// Source records are untouched.
	require.Contains(t, records[0].Workflow, "approvers")

	require.Len(t, got.Approvals, 3)
	require.Equal(t, "R1", got.Approvals[0]["requestId"])
	require.NotNil(t, got.Statistics)
}

func TestJSONRenderer_UnknownMode(t *testing.T) {
	t.Parallel()

	_, err := NewJSONRenderer().Render(context.Background(), fixtureDataset(), Options{Mode: "bogus"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
