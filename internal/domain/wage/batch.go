package wage

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"wageengine/internal/platform/metrics"
)

// BatchRequest names one (person, month) computation to run as part of a
// batch invocation.
type BatchRequest struct {
	Person   PersonID
	Snapshot ReferenceSnapshot
}

// BatchResult pairs a BatchRequest with its outcome.
type BatchResult struct {
	Person   PersonID
	Totals   MonthlyTotals
	Warnings []Warning
	Err      error
}

// RunBatch implements §5's concurrency allowance: multiple (person,
// month) invocations may run in parallel, each against its own
// ReferenceSnapshot, with no shared mutable state. concurrency bounds how
// many run at once; a non-positive value means unbounded. collector may be
// nil; when set, each computation's outcome and duration are recorded.
func (e *Engine) RunBatch(ctx context.Context, requests []BatchRequest, concurrency int, collector *metrics.Collector) ([]BatchResult, error) {
	results := make([]BatchResult, len(requests))
	group, groupCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		group.SetLimit(concurrency)
	}

	for i, req := range requests {
		i, req := i, req
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			started := time.Now()
			totals, warnings, err := e.ComputeMonthlyTotals(req.Person, req.Snapshot)
			if collector != nil {
				collector.Record(err, time.Since(started))
			}
			results[i] = BatchResult{Person: req.Person, Totals: totals, Warnings: warnings, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
