package export

import (
	"fmt"
	"time"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

// Summary is the aggregate view rendered into every export format.
type Summary struct {
	TotalRequests    int    `json:"totalRequests"`
	PendingRequests  int    `json:"pendingRequests"`
	ApprovedRequests int    `json:"approvedRequests"`
	RejectedRequests int    `json:"rejectedRequests"`
	TotalApprovals   int    `json:"totalApprovals"`
	TotalRejections  int    `json:"totalRejections"`
	TotalComments    int    `json:"totalComments"`
	// AvgApprovalTime is "N/A" when no approved request has a completion time.
	AvgApprovalTime     string `json:"avgApprovalTime"`
	MostActiveRequester string `json:"mostActiveRequester"`
	MostCommonWorkflow  string `json:"mostCommonWorkflow"`
}

// Summarize computes the aggregate counts and derived metrics over a request
// set. Ties for most-active requester and most-common workflow resolve to the
// first-seen key, which keeps the output deterministic for a given snapshot
// order.
func Summarize(records []*request.Request) *Summary {
	s := &Summary{TotalRequests: len(records)}

	var approvedDur time.Duration
	approvedCompleted := 0

	requesterCounts := map[string]int{}
	requesterOrder := make([]string, 0, len(records))
	workflowCounts := map[string]int{}
	workflowOrder := make([]string, 0, len(records))

	for _, r := range records {
		switch r.Metadata.Status {
		case request.StatusPending:
			s.PendingRequests++
		case request.StatusApproved:
			s.ApprovedRequests++
			if r.Metadata.CompletedAt != nil {
				approvedDur += r.Metadata.CompletedAt.Sub(r.Metadata.SubmittedAt)
				approvedCompleted++
			}
		case request.StatusRejected:
			s.RejectedRequests++
		}

		s.TotalApprovals += len(r.Metadata.Approvals)
		s.TotalRejections += len(r.Metadata.Rejections)
		s.TotalComments += len(r.Metadata.Comments)

		if _, seen := requesterCounts[r.Requester]; !seen {
			requesterOrder = append(requesterOrder, r.Requester)
		}
		requesterCounts[r.Requester]++
		if _, seen := workflowCounts[r.WorkflowID]; !seen {
			workflowOrder = append(workflowOrder, r.WorkflowID)
		}
		workflowCounts[r.WorkflowID]++
	}

	if approvedCompleted == 0 {
		s.AvgApprovalTime = "N/A"
	} else {
		s.AvgApprovalTime = formatDuration(approvedDur / time.Duration(approvedCompleted))
	}

	s.MostActiveRequester = firstMax(requesterOrder, requesterCounts)
	s.MostCommonWorkflow = firstMax(workflowOrder, workflowCounts)
	return s
}

func firstMax(order []string, counts map[string]int) string {
	best := ""
	bestCount := 0
	for _, k := range order {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}

// formatDuration renders a duration in its two coarsest applicable units,
// truncating everything finer: "2d 3h", "3h 0m", "45m 12s", "12s".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
