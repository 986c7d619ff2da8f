package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	decisionsTotal *prometheus.CounterVec
	agreement      *prometheus.GaugeVec
	estimatesTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		decisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalfuse_decisions_total",
				Help: "Total number of fused consensus decisions",
			},
			[]string{"symbol", "decision"},
		),
		agreement: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "signalfuse_agreement_score",
				Help: "Last agreement score per symbol",
			},
			[]string{"symbol"},
		),
		estimatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalfuse_execution_estimates_total",
				Help: "Total number of execution cost estimates",
			},
			[]string{"symbol", "strategy"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalfuse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signalfuse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordDecision records a fused decision.
func (r *Recorder) RecordDecision(symbol, decision string) {
	r.decisionsTotal.WithLabelValues(symbol, decision).Inc()
}

// RecordAgreement records the latest agreement score for a symbol.
func (r *Recorder) RecordAgreement(symbol string, score int) {
	r.agreement.WithLabelValues(symbol).Set(float64(score))
}

// RecordEstimate records an execution estimate by recommended strategy.
func (r *Recorder) RecordEstimate(symbol, strategy string) {
	r.estimatesTotal.WithLabelValues(symbol, strategy).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
