package export

import (
	"time"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

var fixtureBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

// fixtureRequests returns three requests: two approved (2h and 4h to
// completion) and one pending, with a handful of events spread across them.
func fixtureRequests() []*request.Request {
	return []*request.Request{
		{
			ID:         "R1",
			Requester:  "alice",
			Subject:    "prod database access",
			WorkflowID: "wf-standard",
			Metadata: request.Metadata{
				Status:       request.StatusApproved,
				SubmittedAt:  fixtureBase,
				CompletedAt:  timePtr(fixtureBase.Add(2 * time.Hour)),
				CurrentLevel: 2,
				Approvals: []request.Approval{
					{ApproverID: "mgr-1", Level: 1, ApprovedAt: fixtureBase.Add(time.Hour), Comment: "ok"},
					{ApproverID: "sec-1", Level: 2, ApprovedAt: fixtureBase.Add(2 * time.Hour)},
				},
				Comments: []request.Comment{
					{User: "alice", Type: "note", Timestamp: fixtureBase.Add(30 * time.Minute), Text: "urgent"},
				},
			},
		},
		{
			ID:         "R2",
			Requester:  "alice",
			Subject:    "vpn access",
			WorkflowID: "wf-standard",
			Metadata: request.Metadata{
				Status:       request.StatusApproved,
				SubmittedAt:  fixtureBase.Add(24 * time.Hour),
				CompletedAt:  timePtr(fixtureBase.Add(28 * time.Hour)),
				CurrentLevel: 1,
				Approvals: []request.Approval{
					{ApproverID: "mgr-2", Level: 1, ApprovedAt: fixtureBase.Add(28 * time.Hour)},
				},
			},
		},
		{
			ID:         "R3",
			Requester:  "bob",
			Subject:    "admin console",
			WorkflowID: "wf-elevated",
			Metadata: request.Metadata{
				Status:       request.StatusPending,
				SubmittedAt:  fixtureBase.Add(48 * time.Hour),
				CurrentLevel: 0,
				Comments: []request.Comment{
					{User: "sec-1", Type: "question", Timestamp: fixtureBase.Add(49 * time.Hour), Text: "why admin?"},
				},
			},
		},
	}
}

func fixtureDataset() *Dataset {
	records := fixtureRequests()
	rel := Extract(records)
	return &Dataset{
		Requests:   records,
		Approvals:  rel.Approvals,
		Rejections: rel.Rejections,
		Comments:   rel.Comments,
		Summary:    Summarize(records),
	}
}
