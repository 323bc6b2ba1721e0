package export

import (
	"sort"
	"strings"
	"time"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	defaultSortField = "submittedAt"
)

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Criteria are the query options applied to a request snapshot. All fields
// are optional and combine with AND semantics. Sort defaults to submittedAt
// descending; Limit is applied after filtering and sorting.
type Criteria struct {
	DateRange  *DateRange `json:"dateRange,omitempty"`
	Status     string     `json:"status,omitempty"`
	Requester  string     `json:"requester,omitempty"`
	WorkflowID string     `json:"workflowId,omitempty"`
	SortBy     string     `json:"sortBy,omitempty"`
	SortOrder  string     `json:"sortOrder,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}

// Filter applies the criteria to a snapshot and returns a new ordered slice.
// The input is never mutated. No matches yields an empty slice, not an error.
func Filter(records []*request.Request, c Criteria) []*request.Request {
	out := make([]*request.Request, 0, len(records))
	for _, r := range records {
		if !matches(r, c) {
			continue
		}
		out = append(out, r)
	}

	field := c.SortBy
	if field == "" {
		field = defaultSortField
	}
	order := c.SortOrder
	if order == "" {
		order = SortDesc
	}
	// Stable sort keeps input order on equal keys, which is the documented
	// tie-break policy.
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareField(out[i], out[j], field)
		if order == SortAsc {
			return cmp < 0
		}
		return cmp > 0
	})

	if c.Limit > 0 && len(out) > c.Limit {
		out = out[:c.Limit]
	}
	return out
}

func matches(r *request.Request, c Criteria) bool {
	if c.DateRange != nil {
		at := r.Metadata.SubmittedAt
		if at.Before(c.DateRange.Start) || at.After(c.DateRange.End) {
			return false
		}
	}
	if c.Status != "" && r.Metadata.Status != c.Status {
		return false
	}
	if c.Requester != "" && r.Requester != c.Requester {
		return false
	}
	if c.WorkflowID != "" && r.WorkflowID != c.WorkflowID {
		return false
	}
	return true
}

// compareField orders two requests by the named field. Date-like fields
// (names containing "At") compare as timestamps; unknown fields compare
// equal, so callers should validate field names upstream.
func compareField(a, b *request.Request, field string) int {
	if strings.Contains(field, "At") {
		at, aok := timeField(a, field)
		bt, bok := timeField(b, field)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		}
		return at.Compare(bt)
	}

	if field == "currentLevel" {
		return a.Metadata.CurrentLevel - b.Metadata.CurrentLevel
	}

	av, aok := stringField(a, field)
	bv, bok := stringField(b, field)
	if !aok || !bok {
		return 0
	}
	return strings.Compare(av, bv)
}

func timeField(r *request.Request, field string) (time.Time, bool) {
	switch field {
	case "submittedAt":
		return r.Metadata.SubmittedAt, true
	case "completedAt":
		if r.Metadata.CompletedAt == nil {
			return time.Time{}, false
		}
		return *r.Metadata.CompletedAt, true
	}
	return time.Time{}, false
}

// stringField reads metadata fields first, then the request's own fields.
func stringField(r *request.Request, field string) (string, bool) {
	switch field {
	case "status":
		return r.Metadata.Status, true
	case "id":
		return r.ID, true
	case "requester":
		return r.Requester, true
	case "subject":
		return r.Subject, true
	case "workflowId":
		return r.WorkflowID, true
	}
	return "", false
}
