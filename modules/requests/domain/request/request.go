package request

import (
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is one access-approval workflow instance. The engine never mutates
// requests; they are created and advanced by the request-management layer.
type Request struct {
	ID         string         `json:"id"`
	Requester  string         `json:"requester"`
	Subject    string         `json:"subject"`
	WorkflowID string         `json:"workflowId"`
	Workflow   map[string]any `json:"workflow,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	Metadata   Metadata       `json:"metadata"`
}

// Metadata carries the workflow state of a request. A terminal status
// (approved/rejected) implies CompletedAt is set; pending implies it is not.
// CurrentLevel is non-decreasing over the request lifetime; the export engine
// reports it but does not enforce it.
type Metadata struct {
	Status       string      `json:"status"`
	SubmittedAt  time.Time   `json:"submittedAt"`
	CompletedAt  *time.Time  `json:"completedAt,omitempty"`
	CurrentLevel int         `json:"currentLevel"`
	Approvals    []Approval  `json:"approvals"`
	Rejections   []Rejection `json:"rejections"`
	Comments     []Comment   `json:"comments"`
}

type Approval struct {
	ApproverID string    `json:"approverId"`
	Level      int       `json:"level"`
	ApprovedAt time.Time `json:"approvedAt"`
	Comment    string    `json:"comment,omitempty"`
}

type Rejection struct {
	ApproverID string    `json:"approverId"`
	Level      int       `json:"level"`
	RejectedAt time.Time `json:"rejectedAt"`
	Reason     string    `json:"reason,omitempty"`
}

type Comment struct {
	User      string    `json:"user"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// Completed reports whether the request reached a terminal status.
func (r *Request) Completed() bool {
	return r.Metadata.Status == StatusApproved || r.Metadata.Status == StatusRejected
}
