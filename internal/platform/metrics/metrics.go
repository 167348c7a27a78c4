package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-lifetime counters for HTTP traffic and evaluation
// activity. All methods are safe for concurrent use.
type Collector struct {
	totalRequests      uint64
	errorRequests      uint64
	rateLimited        uint64
	totalDurationMs    uint64
	cyclesDeployed     uint64
	submissionsCreated uint64
	evaluationsFiled   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) CycleDeployed(pendingRows int) {
	atomic.AddUint64(&c.cyclesDeployed, 1)
	if pendingRows > 0 {
		atomic.AddUint64(&c.submissionsCreated, uint64(pendingRows))
	}
}

func (c *Collector) EvaluationSubmitted() {
	atomic.AddUint64(&c.evaluationsFiled, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":         total,
		"errorsTotal":           errs,
		"rateLimitedTotal":      limited,
		"avgDurationMs":         avg,
		"totalDurationMs":       totalMs,
		"cyclesDeployedTotal":   atomic.LoadUint64(&c.cyclesDeployed),
		"pendingRowsTotal":      atomic.LoadUint64(&c.submissionsCreated),
		"evaluationsFiledTotal": atomic.LoadUint64(&c.evaluationsFiled),
	}
}
