package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers access evaluation and teaser session lifecycle.
type Metrics struct {
	Decisions        *prometheus.CounterVec
	EvaluateDuration prometheus.Histogram
	EvidenceLatency  *prometheus.HistogramVec
	EvidenceFailures *prometheus.CounterVec
	TeaserEvents     *prometheus.CounterVec
	ActiveWatchers   prometheus.Gauge
}

// New registers access metrics with reg, or the default registerer when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_access_decisions_total",
			Help: "Total number of access decisions by reason, access level and deciding stage",
		}, []string{"reason", "access_level", "decided_by"}),
		EvaluateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eyecandy_access_evaluate_duration_seconds",
			Help:    "End-to-end duration of an access evaluation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		EvidenceLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eyecandy_access_evidence_duration_seconds",
			Help:    "Latency of each collaborator consulted during evaluation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		EvidenceFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_access_evidence_failures_total",
			Help: "Collaborator failures converted into failure signals",
		}, []string{"source"}),
		TeaserEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_access_teaser_events_total",
			Help: "Teaser session lifecycle events (started, resumed, expired, cancelled)",
		}, []string{"event"}),
		ActiveWatchers: f.NewGauge(prometheus.GaugeOpts{
			Name: "eyecandy_access_teaser_watchers",
			Help: "Number of teaser countdowns currently watched for expiry",
		}),
	}
}

func (m *Metrics) RecordDecision(reason, accessLevel, decidedBy string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(reason, accessLevel, decidedBy).Inc()
}

func (m *Metrics) ObserveEvaluate(d time.Duration) {
	if m == nil {
		return
	}
	m.EvaluateDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveEvidence(source string, d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
	if failed {
		m.EvidenceFailures.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) RecordTeaser(event string) {
	if m == nil {
		return
	}
	m.TeaserEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) AddWatchers(delta float64) {
	if m == nil {
		return
	}
	m.ActiveWatchers.Add(delta)
}
