package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for DocumentsTotal.
const (
	OutcomeOK          = "ok"
	OutcomeUnsupported = "unsupported"
	OutcomeMalformed   = "malformed"
	OutcomeCanceled    = "canceled"
	OutcomeError       = "error"
)

var (
	DocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents analyzed by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"stage"},
	)

	TokensPerDocument = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tokens_per_document",
			Help:      "Tokens kept after stopword filtering per document",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(DocumentsTotal, StageDuration, TokensPerDocument)
}

func ObserveDocument(format, outcome string) {
	if format == "" {
		format = "unknown"
	}
	DocumentsTotal.WithLabelValues(format, outcome).Inc()
}

func ObserveStage(stage string, d time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func ObserveTokens(n int) {
	TokensPerDocument.Observe(float64(n))
}
