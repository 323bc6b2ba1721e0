package export

import (
	"fmt"
	"strconv"
	"time"
)

// Output categories. Each category has one template shared by the delimited,
// spreadsheet and document renderers.
const (
	CategoryRequests   = "requests"
	CategoryApprovals  = "approvals"
	CategoryRejections = "rejections"
	CategoryComments   = "comments"
)

// Template is an ordered header list plus the row mapping for one category.
// Rows returns cell values in the same order as Headers; escaping is the
// renderer's concern, not the template's.
type Template struct {
	Headers []string
	Rows    func(ds *Dataset) [][]string
}

// TemplateSet maps category names to templates.
type TemplateSet map[string]*Template

// Lookup resolves a category, defaulting to requests when empty.
func (ts TemplateSet) Lookup(category string) (*Template, string, error) {
	if category == "" {
		category = CategoryRequests
	}
	tpl, ok := ts[category]
	if !ok {
		return nil, category, fmt.Errorf("category %q: %w", category, ErrMissingTemplate)
	}
	return tpl, category, nil
}

const cellTimeLayout = "2006-01-02 15:04:05"

func cellTime(t time.Time) string {
	return t.Format(cellTimeLayout)
}

func cellTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return cellTime(*t)
}

// DefaultTemplates returns the built-in category templates.
func DefaultTemplates() TemplateSet {
	return TemplateSet{
		CategoryRequests: {
			Headers: []string{"ID", "Requester", "Subject", "Status", "Submitted", "Completed", "Level", "Workflow"},
			Rows: func(ds *Dataset) [][]string {
				rows := make([][]string, 0, len(ds.Requests))
				for _, r := range ds.Requests {
					rows = append(rows, []string{
						r.ID,
						r.Requester,
						r.Subject,
						r.Metadata.Status,
						cellTime(r.Metadata.SubmittedAt),
						cellTimePtr(r.Metadata.CompletedAt),
						strconv.Itoa(r.Metadata.CurrentLevel),
						r.WorkflowID,
					})
				}
				return rows
			},
		},
		CategoryApprovals: {
			Headers: []string{"Request ID", "Approver", "Level", "Action", "Date", "Comment"},
			Rows: func(ds *Dataset) [][]string {
				rows := make([][]string, 0, len(ds.Approvals))
				for _, a := range ds.Approvals {
					rows = append(rows, []string{
						a.RequestID,
						a.ApproverID,
						strconv.Itoa(a.Level),
						"approved",
						cellTime(a.ApprovedAt),
						a.Comment,
					})
				}
				return rows
			},
		},
		CategoryRejections: {
			Headers: []string{"Request ID", "Rejector", "Level", "Action", "Date", "Reason"},
			Rows: func(ds *Dataset) [][]string {
				rows := make([][]string, 0, len(ds.Rejections))
				for _, rj := range ds.Rejections {
					rows = append(rows, []string{
						rj.RequestID,
						rj.ApproverID,
						strconv.Itoa(rj.Level),
						"rejected",
						cellTime(rj.RejectedAt),
						rj.Reason,
					})
				}
				return rows
			},
		},
		CategoryComments: {
			Headers: []string{"Request ID", "User", "Type", "Date", "Text"},
			Rows: func(ds *Dataset) [][]string {
				rows := make([][]string, 0, len(ds.Comments))
				for _, c := range ds.Comments {
					rows = append(rows, []string{
						c.RequestID,
						c.User,
						c.Type,
						cellTime(c.Timestamp),
						c.Text,
					})
				}
				return rows
			},
		},
	}
}
