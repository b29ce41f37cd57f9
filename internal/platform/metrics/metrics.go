package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process counters for the HTTP surface and the
// snapshot refresher. Exposed as JSON on /metrics.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	refreshRuns     uint64
	refreshFailures uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordRefresh(failed bool) {
	atomic.AddUint64(&c.refreshRuns, 1)
	if failed {
		atomic.AddUint64(&c.refreshFailures, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":      total,
		"errorsTotal":        errs,
		"avgDurationMs":      avg,
		"totalDurationMs":    totalMs,
		"refreshRunsTotal":   atomic.LoadUint64(&c.refreshRuns),
		"refreshFailedTotal": atomic.LoadUint64(&c.refreshFailures),
	}
}
