package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

const (
	ModeFull    = "full"
	ModeSummary = "summary"
	ModeMinimal = "minimal"
)

// JSONRenderer emits one of three projections: full (all collections plus
// statistics, with transient sub-fields stripped), summary (statistics only)
// or minimal (per-request projection plus the summary).
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type fullRequest struct {
	ID         string           `json:"id"`
	Requester  string           `json:"requester"`
	Subject    string           `json:"subject"`
	WorkflowID string           `json:"workflowId"`
	Workflow   map[string]any   `json:"workflow,omitempty"`
	Data       map[string]any   `json:"data,omitempty"`
	Metadata   request.Metadata `json:"metadata"`
}

type fullExport struct {
	Requests   []fullRequest  `json:"requests"`
	Approvals  []ApprovalRow  `json:"approvals"`
	Rejections []RejectionRow `json:"rejections"`
	Comments   []CommentRow   `json:"comments"`
	Statistics *Summary       `json:"statistics"`
}

type minimalRequest struct {
	ID          string    `json:"id"`
	Requester   string    `json:"requester"`
	Subject     string    `json:"subject"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
	Workflow    string    `json:"workflow"`
}

type minimalExport struct {
	Requests []minimalRequest `json:"requests"`
	Summary  *Summary         `json:"summary"`
}

func (r *JSONRenderer) Render(_ context.Context, ds *Dataset, opts Options) (*Result, error) {
	mode := opts.Mode
	if mode == "" {
		mode = ModeFull
	}

	var payload any
	switch mode {
	case ModeFull:
		payload = buildFullExport(ds)
	case ModeSummary:
		payload = ds.Summary
	case ModeMinimal:
		payload = buildMinimalExport(ds)
	default:
		return nil, fmt.Errorf("json mode %q: %w", mode, ErrUnsupportedFormat)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}

	return newResult(buf.Bytes(), mode, "json", MediaTypeJSON), nil
}

func buildFullExport(ds *Dataset) fullExport {
	out := fullExport{
		Requests:   make([]fullRequest, 0, len(ds.Requests)),
		Approvals:  ds.Approvals,
		Rejections: ds.Rejections,
		Comments:   ds.Comments,
		Statistics: ds.Summary,
	}
	for _, r := range ds.Requests {
		out.Requests = append(out.Requests, fullRequest{
			ID:         r.ID,
			Requester:  r.Requester,
			Subject:    r.Subject,
			WorkflowID: r.WorkflowID,
			Workflow:   stripKey(r.Workflow, "approvers"),
			Data:       stripKey(r.Data, "sensitiveInfo"),
			Metadata:   r.Metadata,
		})
	}
	return out
}

func buildMinimalExport(ds *Dataset) minimalExport {
	out := minimalExport{
		Requests: make([]minimalRequest, 0, len(ds.Requests)),
		Summary:  ds.Summary,
	}
	for _, r := range ds.Requests {
		out.Requests = append(out.Requests, minimalRequest{
			ID:          r.ID,
			Requester:   r.Requester,
			Subject:     r.Subject,
			Status:      r.Metadata.Status,
			SubmittedAt: r.Metadata.SubmittedAt,
			Workflow:    r.WorkflowID,
		})
	}
	return out
}

// stripKey copies the map without the named transient key. The source record
// is never modified.
func stripKey(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if _, ok := m[key]; !ok {
		return m
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == key {
			continue
		}
		out[k] = v
	}
	return out
}
