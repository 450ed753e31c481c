// Package prometheus exposes the service's operational metrics: resolution
// throughput and latency per source/target pair, and the size of the loaded
// taxonomy datasets.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taxview"

// Metrics aggregates every collector the service registers.  A single
// instance is created at startup and injected into the application services;
// all methods are safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	resolutionsTotal   *prometheus.CounterVec
	resolutionDuration *prometheus.HistogramVec
	datasetEntries     *prometheus.GaugeVec
	datasetReloads     prometheus.Counter
}

// NewMetrics constructs and registers all collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		resolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Cross-taxonomy resolutions by source, target, method and outcome.",
		}, []string{"source", "target", "method", "outcome"}),
		resolutionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolution_duration_seconds",
			Help:      "Latency of full MapAll calls by source taxonomy.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"source"}),
		datasetEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_entries",
			Help:      "Number of lookup entries loaded per taxonomy.",
		}, []string{"taxonomy"}),
		datasetReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reloads_total",
			Help:      "Number of snapshot reloads triggered by file changes.",
		}),
	}

	reg.MustRegister(
		m.resolutionsTotal,
		m.resolutionDuration,
		m.datasetEntries,
		m.datasetReloads,
	)
	return m
}

// ObserveResolution records one per-target resolution outcome.
func (m *Metrics) ObserveResolution(source, target, method string, matched bool) {
	outcome := "matched"
	if !matched {
		outcome = "unmapped"
	}
	m.resolutionsTotal.WithLabelValues(source, target, method, outcome).Inc()
}

// ObserveMapAll records the latency of one complete MapAll call.
func (m *Metrics) ObserveMapAll(source string, elapsed time.Duration) {
	m.resolutionDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// SetDatasetEntries records the loaded lookup size for one taxonomy.
func (m *Metrics) SetDatasetEntries(taxonomy string, n int) {
	m.datasetEntries.WithLabelValues(taxonomy).Set(float64(n))
}

// IncDatasetReload counts one snapshot reload.
func (m *Metrics) IncDatasetReload() {
	m.datasetReloads.Inc()
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
