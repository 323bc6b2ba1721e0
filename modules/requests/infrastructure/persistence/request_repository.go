package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

// InMemoryRequestRepository adapts a live in-memory request collection to the
// read-only Repository view. It holds the slice by reference, so All returns
// the current snapshot without copying.
type InMemoryRequestRepository struct {
	records []*request.Request
}

func NewInMemoryRequestRepository(records []*request.Request) *InMemoryRequestRepository {
	return &InMemoryRequestRepository{records: records}
}

func (r *InMemoryRequestRepository) All(_ context.Context) ([]*request.Request, error) {
	return r.records, nil
}

func (r *InMemoryRequestRepository) Count(_ context.Context) (int, error) {
	return len(r.records), nil
}

// LoadSnapshot decodes a JSON array of requests, as produced by the
// request-management layer's dump.
func LoadSnapshot(rd io.Reader) ([]*request.Request, error) {
	var records []*request.Request
	dec := json.NewDecoder(rd)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode request snapshot: %w", err)
	}
	return records, nil
}

// LoadSnapshotFile reads a snapshot from disk.
func LoadSnapshotFile(path string) ([]*request.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open request snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadSnapshot(f)
}
