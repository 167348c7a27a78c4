package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotAggregatesRequests(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 2*time.Millisecond)

	snap := c.Snapshot()
	assert.Equal(t, uint64(3), snap["requestsTotal"])
	assert.Equal(t, uint64(1), snap["errorsTotal"])
	assert.Equal(t, uint64(1), snap["rateLimitedTotal"])
	assert.Equal(t, uint64(42), snap["totalDurationMs"])
	assert.InDelta(t, 14.0, snap["avgDurationMs"], 0.001)
}

func TestSnapshotCountsEvaluationActivity(t *testing.T) {
	c := New()
	c.CycleDeployed(4)
	c.CycleDeployed(0)
	c.EvaluationSubmitted()

	snap := c.Snapshot()
	assert.Equal(t, uint64(2), snap["cyclesDeployedTotal"])
	assert.Equal(t, uint64(4), snap["pendingRowsTotal"])
	assert.Equal(t, uint64(1), snap["evaluationsFiledTotal"])
	assert.Equal(t, float64(0), snap["avgDurationMs"])
}
