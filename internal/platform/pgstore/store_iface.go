package pgstore

import (
	"context"

	"wageengine/internal/domain/wage"
)

// StoreAPI loads the reference data a single ComputeMonthlyTotals or
// GetDailySegments invocation needs, already scoped to one year/month and
// assembled into the explicit ReferenceSnapshot argument (§9 redesign
// note: no ambient, process-wide caches).
type StoreAPI interface {
	LoadSnapshot(ctx context.Context, year, month int) (wage.ReferenceSnapshot, error)
	PersonIDsWithReports(ctx context.Context, snap wage.ReferenceSnapshot) []wage.PersonID
	IsMonthLocked(ctx context.Context, year, month int) (bool, error)
}
