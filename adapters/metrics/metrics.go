// Package metrics provides Prometheus metrics collection for MockGate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for MockGate.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Definition metrics
	DefinitionWrites     *prometheus.CounterVec
	ValidationRejections *prometheus.CounterVec

	// Snapshot metrics
	SnapshotExports      prometheus.Counter
	SnapshotImports      prometheus.Counter
	SnapshotRowsImported *prometheus.CounterVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter
	ConfigLastReload   prometheus.Gauge
}

// New creates a new metrics collector with all metrics registered.
func New() *Collector {
	return &Collector{
		// Request metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mockgate",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		RequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mockgate",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),

		// Definition metrics
		DefinitionWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "definition_writes_total",
				Help:      "Total successful definition mutations",
			},
			[]string{"entity", "op"},
		),
		ValidationRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "validation_rejections_total",
				Help:      "Total definition mutations rejected by validation",
			},
			[]string{"entity"},
		),

		// Snapshot metrics
		SnapshotExports: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "snapshot_exports_total",
				Help:      "Total number of snapshot exports",
			},
		),
		SnapshotImports: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "snapshot_imports_total",
				Help:      "Total number of successful snapshot imports",
			},
		),
		SnapshotRowsImported: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "snapshot_rows_imported_total",
				Help:      "Total rows written by snapshot imports",
			},
			[]string{"entity"},
		),

		// Config metrics
		ConfigReloads: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
		ConfigLastReload: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mockgate",
				Name:      "config_last_reload_timestamp",
				Help:      "Unix timestamp of last successful config reload",
			},
		),
	}
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mockgate",
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mockgate",
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		DefinitionWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "definition_writes_total",
				Help:      "Total successful definition mutations",
			},
			[]string{"entity", "op"},
		),
		ValidationRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "validation_rejections_total",
				Help:      "Total definition mutations rejected by validation",
			},
			[]string{"entity"},
		),
		SnapshotExports: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "snapshot_exports_total",
				Help:      "Total number of snapshot exports",
			},
		),
		SnapshotImports: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "snapshot_imports_total",
				Help:      "Total number of successful snapshot imports",
			},
		),
		SnapshotRowsImported: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "snapshot_rows_imported_total",
				Help:      "Total rows written by snapshot imports",
			},
			[]string{"entity"},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "mockgate",
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
		ConfigLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mockgate",
				Name:      "config_last_reload_timestamp",
				Help:      "Unix timestamp of last successful config reload",
			},
		),
	}
}

// NormalizePath caps the label value for paths that never matched a route
// pattern. Matched requests are labeled with the chi pattern, so only
// unmatched paths (404s, probes) reach this.
// TODO: collapse numeric id segments instead of truncating.
func NormalizePath(path string) string {
	if len(path) > 50 {
		return path[:50] + "..."
	}
	return path
}
