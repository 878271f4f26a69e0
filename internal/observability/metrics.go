package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the scan pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	ReportsProduced  prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Scanner metrics.
	SpansFound   *prometheus.CounterVec // labels: confidence={complete,partial,unknown-edition}
	ScanDuration prometheus.Histogram
	BytesScanned prometheus.Histogram

	// Fetch metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error,too_large}
	FetchCache    *prometheus.CounterVec // labels: result={hit,miss}
	FetchDuration prometheus.Histogram
	FetchEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grib_etl",
			Name:      "messages_consumed_total",
			Help:      "Total scan requests read from the source topic.",
		}),
		ReportsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grib_etl",
			Name:      "reports_produced_total",
			Help:      "Total scan reports written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "grib_etl",
			Name:      "transform_errors_total",
			Help:      "Total scan request failures (bad request JSON or fetch errors).",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "grib_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grib_etl",
			Name:      "batch_size",
			Help:      "Number of scan requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grib_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SpansFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grib_etl",
			Name:      "spans_found_total",
			Help:      "GRIB message spans located, by scan confidence.",
		}, []string{"confidence"}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grib_etl",
			Name:      "scan_duration_seconds",
			Help:      "Duration of a single buffer scan.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		BytesScanned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grib_etl",
			Name:      "bytes_scanned",
			Help:      "Size of scanned file buffers in bytes.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grib_etl",
			Name:      "fetch_requests_total",
			Help:      "GRIB file download attempts by outcome.",
		}, []string{"outcome"}),
		FetchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grib_etl",
			Name:      "fetch_cache_total",
			Help:      "Fetch cache lookups by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "grib_etl",
			Name:      "fetch_duration_seconds",
			Help:      "GRIB file download duration in seconds.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}),
		FetchEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "grib_etl",
			Name:      "fetch_enabled",
			Help:      "1 when URL fetching is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.ReportsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SpansFound,
		m.ScanDuration,
		m.BytesScanned,
		m.FetchRequests,
		m.FetchCache,
		m.FetchDuration,
		m.FetchEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "grib_etl", Name: "messages_consumed_total"}),
		ReportsProduced:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "grib_etl", Name: "reports_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "grib_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "grib_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "grib_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "grib_etl", Name: "batch_processing_duration_seconds"}),
		SpansFound:              prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "grib_etl", Name: "spans_found_total"}, []string{"confidence"}),
		ScanDuration:            prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "grib_etl", Name: "scan_duration_seconds"}),
		BytesScanned:            prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "grib_etl", Name: "bytes_scanned"}),
		FetchRequests:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "grib_etl", Name: "fetch_requests_total"}, []string{"outcome"}),
		FetchCache:              prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "grib_etl", Name: "fetch_cache_total"}, []string{"result"}),
		FetchDuration:           prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "grib_etl", Name: "fetch_duration_seconds"}),
		FetchEnabled:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "grib_etl", Name: "fetch_enabled"}),
	}
}
