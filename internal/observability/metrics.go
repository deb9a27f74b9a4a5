package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// seeding pipeline. Record-level counters are labeled by source program so a
// run against several extracts stays attributable.
type Metrics struct {
	RecordsRead      *prometheus.CounterVec // labels: source, entity={station,result}
	StationsInserted *prometheus.CounterVec // labels: source
	StationsMerged   *prometheus.CounterVec // labels: source
	ResultsInserted  *prometheus.CounterVec // labels: source
	ResultsSkipped   *prometheus.CounterVec // labels: source, reason={validation,duplicate}
	RecordErrors     *prometheus.CounterVec // labels: source, kind={mapping,validation,geometry}
	OrphanResults    *prometheus.CounterVec // labels: source

	JobRunning    prometheus.Gauge
	BatchSize     prometheus.Histogram
	BatchDuration prometheus.Histogram
	JobDuration   *prometheus.HistogramVec // labels: source, status
}

// NewMetrics creates and registers all seeder metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsRead,
		m.StationsInserted,
		m.StationsMerged,
		m.ResultsInserted,
		m.ResultsSkipped,
		m.RecordErrors,
		m.OrphanResults,
		m.JobRunning,
		m.BatchSize,
		m.BatchDuration,
		m.JobDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbseeder",
			Name:      "records_read_total",
			Help:      "Raw records read from source extracts.",
		}, []string{"source", "entity"}),
		StationsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbseeder",
			Name:      "stations_inserted_total",
			Help:      "New stations staged for insert.",
		}, []string{"source"}),
		StationsMerged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbseeder",
			Name:      "stations_merged_total",
			Help:      "Existing stations additively merged.",
		}, []string{"source"}),
		ResultsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbseeder",
			Name:      "results_inserted_total",
			Help:      "Result rows committed to the destination.",
		}, []string{"source"}),
		ResultsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbseeder",
			Name:      "results_skipped_total",
			Help:      "Result rows skipped before staging.",
		}, []string{"source", "reason"}),
		RecordErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbseeder",
			Name:      "record_errors_total",
			Help:      "Per-record errors by kind; none of these abort a job.",
		}, []string{"source", "kind"}),
		OrphanResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbseeder",
			Name:      "orphan_results_total",
			Help:      "Results loaded without a matching station under the lenient orphan policy.",
		}, []string{"source"}),
		JobRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dbseeder",
			Name:      "job_running",
			Help:      "1 while a source job is being processed.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dbseeder",
			Name:      "batch_size",
			Help:      "Rows per committed database batch.",
			Buckets:   []float64{10, 50, 100, 500, 1000, 2500, 5000, 10000},
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dbseeder",
			Name:      "batch_duration_seconds",
			Help:      "Duration of one database batch commit.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dbseeder",
			Name:      "job_duration_seconds",
			Help:      "End-to-end duration of a source job.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600, 14400},
		}, []string{"source", "status"}),
	}
}
