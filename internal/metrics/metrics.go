// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lynxats_errors_total",
			Help: "Total number of logged errors.",
		},
		[]string{"type"},
	)
	ConnectAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lynxats_db_connect_attempts_total",
			Help: "Database connect attempts by backend and result.",
		},
		[]string{"backend", "result"},
	)
	Invalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lynxats_db_invalidations_total",
			Help: "Times a cached database connection was dropped after a driver or watchdog report.",
		},
		[]string{"backend"},
	)
	SourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lynxats_dashboard_source_failures_total",
			Help: "Dashboard sources that failed and were replaced by an empty result.",
		},
		[]string{"source"},
	)
	DashboardDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lynxats_dashboard_aggregate_duration_seconds",
			Help:    "Duration of a dashboard aggregation.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(ConnectAttempts)
		prometheus.MustRegister(Invalidations)
		prometheus.MustRegister(SourceFailures)
		prometheus.MustRegister(DashboardDuration)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
