package monitoring

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTick(t *testing.T) {
	m := NewTickMonitor(50*time.Millisecond, zerolog.Nop())

	m.ObserveTick("a", 10*time.Millisecond)
	m.ObserveTick("a", 30*time.Millisecond)
	m.ObserveTick("a", 80*time.Millisecond)
	m.ObserveTick("b", 5*time.Millisecond)

	metrics := m.GetMetrics()
	require.Len(t, metrics.Sessions, 2)

	a := metrics.Sessions["a"]
	assert.Equal(t, 3, a.Ticks)
	assert.Equal(t, 1, a.Slow)
	assert.Equal(t, 80*time.Millisecond, a.Max)
	assert.Equal(t, 80*time.Millisecond, a.Last)
	assert.Equal(t, 40*time.Millisecond, a.Average())

	assert.Equal(t, 0, metrics.Sessions["b"].Slow)
	assert.Equal(t, 50*time.Millisecond, metrics.SlowTickThreshold)
}

func TestForget(t *testing.T) {
	m := NewTickMonitor(0, zerolog.Nop())
	m.ObserveTick("a", time.Second)
	m.Forget("a")
	assert.Empty(t, m.GetMetrics().Sessions)
	assert.Equal(t, time.Duration(0), TickStats{}.Average())
}

func TestSampleTracksPeak(t *testing.T) {
	m := NewTickMonitor(0, zerolog.Nop())
	m.sample()

	metrics := m.GetMetrics()
	assert.Positive(t, metrics.Goroutines)
	assert.GreaterOrEqual(t, metrics.GoroutinePeak, metrics.Goroutines)
}

func TestStartStop(t *testing.T) {
	m := NewTickMonitor(0, zerolog.Nop())
	m.Start()
	m.Stop()
	m.Stop()
}
