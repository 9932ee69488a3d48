package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_ReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithInterval(time.Second), withClock(func() time.Time { return now }))

	for range 99 {
		now = now.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, p.FPS())

	now = now.Add(10 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 100.0, p.FPS(), 0.01)

	now = now.Add(time.Millisecond)
	assert.False(t, p.Tick())
}

func TestProfiler_NoElapsedTimeNeverReports(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithInterval(0), withClock(func() time.Time { return now }))
	assert.False(t, p.Tick())

	now = now.Add(time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 2000.0, p.FPS(), 0.01)
}
