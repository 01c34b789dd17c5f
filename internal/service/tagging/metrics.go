package tagging

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const TargetModel = "model"

const (
	BatchStatusOK         = "ok"
	BatchStatusAuthFailed = "auth_failed"
	BatchStatusError      = "error"
)

// Metrics holds the service collectors on a private registry. A nil *Metrics
// records nothing.
type Metrics struct {
	registry *prometheus.Registry
	rows     *prometheus.CounterVec
	batches  *prometheus.CounterVec
	remote   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_tagger_rows_total",
			Help: "Rows processed, by outcome.",
		}, []string{"outcome"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_tagger_batches_total",
			Help: "Batches processed, by status.",
		}, []string{"status"}),
		remote: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "content_tagger_remote_request_seconds",
			Help:    "Latency of remote calls, by target.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"target"}),
	}

	m.registry.MustRegister(m.rows, m.batches, m.remote)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveRow(outcome RowOutcome) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) ObserveBatch(status string) {
	if m == nil {
		return
	}
	m.batches.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRemote(target string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.remote.WithLabelValues(target).Observe(elapsed.Seconds())
}
