// Package metrics records conversion counters in a private Prometheus
// registry. The CLI writes them to a node-exporter textfile after each run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"layout-converter/internal/mapping"
)

// Outcome label values.
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
)

// Recorder implements convert.Metrics.
type Recorder struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	rows        *prometheus.CounterVec
	warnings    *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "layoutconv_conversions_total",
			Help: "Conversions by output format and outcome",
		}, []string{"format", "outcome"}),
		rows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "layoutconv_rows_total",
			Help: "Rows written by output format",
		}, []string{"format"}),
		warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "layoutconv_warnings_total",
			Help: "Conversion warnings by code",
		}, []string{"code"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "layoutconv_validation_errors_total",
			Help: "Blocking config validation errors by code",
		}, []string{"code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "layoutconv_conversion_duration_seconds",
			Help:    "Time spent converting a table",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"format"}),
	}
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ConversionCompleted records a finished conversion.
func (r *Recorder) ConversionCompleted(format mapping.Format, rows int, warnings map[string]int, elapsed time.Duration) {
	f := string(format)

	r.conversions.WithLabelValues(f, OutcomeCompleted).Inc()
	r.rows.WithLabelValues(f).Add(float64(rows))
	r.duration.WithLabelValues(f).Observe(elapsed.Seconds())

	for code, n := range warnings {
		r.warnings.WithLabelValues(code).Add(float64(n))
	}
}

// ConversionRejected records a conversion stopped by validation.
func (r *Recorder) ConversionRejected(format mapping.Format, codes []string) {
	r.conversions.WithLabelValues(string(format), OutcomeRejected).Inc()

	for _, code := range codes {
		r.rejections.WithLabelValues(code).Inc()
	}
}

// WriteToTextfile writes the metrics in the text exposition format, as read
// by the node exporter's textfile collector.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
