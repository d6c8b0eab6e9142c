package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationMetricsCounters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewAllocationMetrics(registry)

	m.AddItems("create", 3)
	m.AddShortages("create", 1)
	m.IncFailure("reallocate")
	m.ObserveRun("create", 250*time.Millisecond)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.items.WithLabelValues("create")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.shortages.WithLabelValues("create")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.failures.WithLabelValues("reallocate")))

	count := testutil.CollectAndCount(m.duration)
	require.Equal(t, 1, count)
}

func TestAllocationMetricsNormalizesEmptyTrigger(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewAllocationMetrics(registry)

	m.AddItems("", 2)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.items.WithLabelValues("unknown")))
}

func TestAllocationMetricsNilSafe(t *testing.T) {
	var m *AllocationMetrics

	assert.NotPanics(t, func() {
		m.AddItems("create", 1)
		m.AddShortages("create", 1)
		m.IncFailure("create")
		m.ObserveRun("create", time.Second)
	})

	unregistered := NewAllocationMetrics(nil)
	assert.NotPanics(t, func() {
		unregistered.AddItems("create", 1)
		unregistered.ObserveRun("create", time.Second)
	})
}
