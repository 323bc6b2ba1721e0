package persistence

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

const snapshotJSON = `[
  {
    "id": "REQ-001",
    "requester": "alice",
    "subject": "prod database access",
    "workflowId": "standard-approval",
    "data": {"system": "postgres", "role": "readonly"},
    "metadata": {
      "status": "approved",
      "submittedAt": "2025-03-10T09:00:00Z",
      "completedAt": "2025-03-10T12:00:00Z",
      "currentLevel": 2,
      "approvals": [
        {"approverId": "mgr-1", "level": 1, "approvedAt": "2025-03-10T10:00:00Z", "comment": "ok"}
      ],
      "rejections": [],
      "comments": [
        {"user": "alice", "type": "note", "timestamp": "2025-03-10T09:05:00Z", "text": "urgent"}
      ]
    }
  },
  {
    "id": "REQ-002",
    "requester": "bob",
    "subject": "vpn access",
    "workflowId": "standard-approval",
    "metadata": {
      "status": "pending",
      "submittedAt": "2025-03-11T08:00:00Z",
      "currentLevel": 1,
      "approvals": [],
      "rejections": [],
      "comments": []
    }
  }
]`

func TestLoadSnapshot(t *testing.T) {
	t.Parallel()

	records, err := LoadSnapshot(strings.NewReader(snapshotJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	require.Equal(t, "REQ-001", first.ID)
	require.Equal(t, "alice", first.Requester)
	require.Equal(t, "standard-approval", first.WorkflowID)
	require.Equal(t, request.StatusApproved, first.Metadata.Status)
	require.NotNil(t, first.Metadata.CompletedAt)
	require.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), *first.Metadata.CompletedAt)
	require.Len(t, first.Metadata.Approvals, 1)
	require.Equal(t, "mgr-1", first.Metadata.Approvals[0].ApproverID)
	require.Equal(t, "postgres", first.Data["system"])
	require.True(t, first.Completed())

	second := records[1]
	require.Nil(t, second.Metadata.CompletedAt)
	require.False(t, second.Completed())
}

func TestLoadSnapshot_Malformed(t *testing.T) {
	t.Parallel()

	_, err := LoadSnapshot(strings.NewReader(`{"not": "an array"}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode request snapshot")
}

func TestLoadSnapshotFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "requests.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotJSON), 0o644))

	records, err := LoadSnapshotFile(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	_, err = LoadSnapshotFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestInMemoryRequestRepository_HoldsSliceByReference(t *testing.T) {
	t.Parallel()

	records := []*request.Request{
		{ID: "R1", Metadata: request.Metadata{Status: request.StatusPending}},
	}
	repo := NewInMemoryRequestRepository(records)

	got, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// The repository exposes the live collection, not a copy.
	records[0].Metadata.Status = request.StatusApproved
	got, err = repo.All(context.Background())
	require.NoError(t, err)
	require.Equal(t, request.StatusApproved, got[0].Metadata.Status)
}
