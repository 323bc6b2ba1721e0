package request

import "context"

// Repository is the read-only view the export engine gets over the live
// request collection. The snapshot is taken by reference at call time;
// callers must not mutate the collection while an export is in flight.
type Repository interface {
	All(ctx context.Context) ([]*Request, error)
	Count(ctx context.Context) (int, error)
}
