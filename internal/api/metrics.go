package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
)

// Metrics holds the server's collectors on a private registry so several
// servers (or tests) never collide on global registration.
type Metrics struct {
	reg      *prometheus.Registry
	analyses *prometheus.CounterVec
	findings *prometheus.CounterVec
	notices  *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mfippa",
			Name:      "analyses_total",
			Help:      "Documents analyzed, by input kind.",
		}, []string{"source_kind"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mfippa",
			Name:      "findings_total",
			Help:      "Findings produced, by rule and severity.",
		}, []string{"rule", "severity"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mfippa",
			Name:      "unsupported_inputs_total",
			Help:      "Uploads answered with a notice instead of an analysis.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mfippa",
			Name:      "analyze_duration_seconds",
			Help:      "Time spent in the classifier.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	m.reg.MustRegister(m.analyses, m.findings, m.notices, m.duration)
	return m
}

func (m *Metrics) observe(kind string, a *ir.Analysis, took time.Duration) {
	m.analyses.WithLabelValues(kind).Inc()
	m.duration.Observe(took.Seconds())
	for _, f := range a.Findings {
		m.findings.WithLabelValues(f.RuleID, string(f.Severity)).Inc()
	}
}

func (m *Metrics) notice(kind string) {
	m.notices.WithLabelValues(kind).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
