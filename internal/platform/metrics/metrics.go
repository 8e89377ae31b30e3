package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks outcomes across a batch of per-person wage
// computations, replacing the original per-HTTP-request counters with
// per-computation ones (RunBatch has no status codes or rate limiting).
type Collector struct {
	totalComputations uint64
	errorComputations uint64
	totalDurationMs    uint64
}

func New() *Collector {
	return &Collector{}
}

// Record logs the outcome of one ComputeMonthlyTotals invocation inside a
// batch run.
func (c *Collector) Record(err error, duration time.Duration) {
	atomic.AddUint64(&c.totalComputations, 1)
	if err != nil {
		atomic.AddUint64(&c.errorComputations, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalComputations)
	errs := atomic.LoadUint64(&c.errorComputations)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"computationsTotal": total,
		"errorsTotal":       errs,
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
	}
}
