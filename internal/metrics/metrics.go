// Package metrics exposes Prometheus collectors for sync observability.
// The API server serves them on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "showgrid",
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Sync jobs per source and final status.",
	}, []string{"source", "status"})

	eventsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "showgrid",
		Subsystem: "sync",
		Name:      "events_created_total",
		Help:      "Events created in the catalog per source.",
	}, []string{"source"})

	eventsUpdatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "showgrid",
		Subsystem: "sync",
		Name:      "events_updated_total",
		Help:      "Events updated in the catalog per source.",
	}, []string{"source"})

	venuesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "showgrid",
		Subsystem: "sync",
		Name:      "venues_created_total",
		Help:      "Venues created in the catalog per source.",
	}, []string{"source"})

	syncErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "showgrid",
		Subsystem: "sync",
		Name:      "errors_total",
		Help:      "Item-level errors accumulated during sync per source.",
	}, []string{"source"})

	syncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "showgrid",
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Wall-clock duration of one source sync job.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"source"})
)

// ObserveSyncRun records the outcome of one source sync job.
func ObserveSyncRun(source, status string, created, updated, venues, errs int, dur time.Duration) {
	syncRunsTotal.WithLabelValues(source, status).Inc()
	eventsCreatedTotal.WithLabelValues(source).Add(float64(created))
	eventsUpdatedTotal.WithLabelValues(source).Add(float64(updated))
	venuesCreatedTotal.WithLabelValues(source).Add(float64(venues))
	syncErrorsTotal.WithLabelValues(source).Add(float64(errs))
	syncDuration.WithLabelValues(source).Observe(dur.Seconds())
}
