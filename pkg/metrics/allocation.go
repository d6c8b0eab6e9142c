package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AllocationMetrics records metadata for allocation engine runs.
type AllocationMetrics struct {
	duration  *prometheus.HistogramVec
	items     *prometheus.CounterVec
	shortages *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// NewAllocationMetrics registers the allocation metrics on the provided registerer.
func NewAllocationMetrics(reg prometheus.Registerer) *AllocationMetrics {
	if reg == nil {
		return &AllocationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "allocation_run_duration_seconds",
		Help:    "Duration of allocation engine runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_items_total",
		Help: "Consumption rules processed by allocation runs.",
	}, []string{"trigger"})
	shortages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_shortages_total",
		Help: "Items that ended an allocation run short.",
	}, []string{"trigger"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_failures_total",
		Help: "Allocation runs aborted by a storage failure.",
	}, []string{"trigger"})
	reg.MustRegister(duration, items, shortages, failures)
	return &AllocationMetrics{
		duration:  duration,
		items:     items,
		shortages: shortages,
		failures:  failures,
	}
}

// ObserveRun records the duration for a run kicked off by the named trigger.
func (a *AllocationMetrics) ObserveRun(trigger string, duration time.Duration) {
	if a == nil || a.duration == nil {
		return
	}
	a.duration.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// AddItems counts the rules processed in a run.
func (a *AllocationMetrics) AddItems(trigger string, n int) {
	if a == nil || a.items == nil {
		return
	}
	a.items.WithLabelValues(normalizeLabel(trigger)).Add(float64(n))
}

// AddShortages counts the items that came up short in a run.
func (a *AllocationMetrics) AddShortages(trigger string, n int) {
	if a == nil || a.shortages == nil {
		return
	}
	a.shortages.WithLabelValues(normalizeLabel(trigger)).Add(float64(n))
}

// IncFailure increments the aborted-run counter.
func (a *AllocationMetrics) IncFailure(trigger string) {
	if a == nil || a.failures == nil {
		return
	}
	a.failures.WithLabelValues(normalizeLabel(trigger)).Inc()
}

func normalizeLabel(trigger string) string {
	if trigger == "" {
		return "unknown"
	}
	return trigger
}
