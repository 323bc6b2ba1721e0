package export

import "github.com/OPMDOR/system-access-form/modules/requests/domain/request"

// ApprovalRow is an approval event tagged with its owning request id.
type ApprovalRow struct {
	RequestID string `json:"requestId"`
	request.Approval
}

type RejectionRow struct {
	RequestID string `json:"requestId"`
	request.Rejection
}

type CommentRow struct {
	RequestID string `json:"requestId"`
	request.Comment
}

// Relations holds the flattened event collections of a filtered snapshot.
type Relations struct {
	Approvals  []ApprovalRow
	Rejections []RejectionRow
	Comments   []CommentRow
}

// Extract flattens the event sequences of the given requests, preserving
// request order and then intra-request event order. It does no filtering.
func Extract(records []*request.Request) Relations {
	var rel Relations
	for _, r := range records {
		for _, a := range r.Metadata.Approvals {
			rel.Approvals = append(rel.Approvals, ApprovalRow{RequestID: r.ID, Approval: a})
		}
		for _, rj := range r.Metadata.Rejections {
			rel.Rejections = append(rel.Rejections, RejectionRow{RequestID: r.ID, Rejection: rj})
		}
		for _, c := range r.Metadata.Comments {
			rel.Comments = append(rel.Comments, CommentRow{RequestID: r.ID, Comment: c})
		}
	}
	return rel
}
