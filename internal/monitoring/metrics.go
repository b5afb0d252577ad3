// Package monitoring exposes Prometheus metrics for report processing.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/ingest"
)

// Collector registers and records the tracker's metrics on its own registry,
// keeping test instances isolated from the default global one.
type Collector struct {
	registry *prometheus.Registry

	reportsProcessed prometheus.Counter
	reportFailures   *prometheus.CounterVec
	reportRows       prometheus.Histogram
	computeDuration  prometheus.Histogram
	dataWarnings     *prometheus.CounterVec
	exports          *prometheus.CounterVec
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		reportsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_reports_processed_total",
			Help: "Completed report computations",
		}),
		reportFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_report_failures_total",
			Help: "Report runs rejected for structural errors",
		}, []string{"reason"}),
		reportRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_report_rows",
			Help:    "Ingredient rows per computed report",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		computeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tracker_report_compute_seconds",
			Help:    "Time spent parsing and reconciling one report",
			Buckets: prometheus.DefBuckets,
		}),
		dataWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_data_warnings_total",
			Help: "Data quality warnings by kind",
		}, []string{"kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_report_exports_total",
			Help: "Report exports by format",
		}, []string{"format"}),
	}

	c.registry.MustRegister(
		c.reportsProcessed,
		c.reportFailures,
		c.reportRows,
		c.computeDuration,
		c.dataWarnings,
		c.exports,
	)
	return c
}

// ObserveReport records a completed report run.
func (c *Collector) ObserveReport(rows int, warnings []ingest.Warning, elapsed time.Duration) {
	c.reportsProcessed.Inc()
	c.reportRows.Observe(float64(rows))
	c.computeDuration.Observe(elapsed.Seconds())
	for _, w := range warnings {
		c.dataWarnings.WithLabelValues(string(w.Kind)).Inc()
	}
}

// RecordFailure records a rejected report run.
func (c *Collector) RecordFailure(reason string) {
	c.reportFailures.WithLabelValues(reason).Inc()
}

// RecordExport records a served export download.
func (c *Collector) RecordExport(format string) {
	c.exports.WithLabelValues(format).Inc()
}

// Handler returns the HTTP handler serving the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
