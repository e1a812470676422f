package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ConfigChanges   *prometheus.CounterVec
	RuleSetLoadTime prometheus.Histogram
}

// New registers performer metrics with reg, or the default registerer when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		ConfigChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_performer_config_changes_total",
			Help: "Total number of performer access configuration changes by kind",
		}, []string{"kind"}),
		RuleSetLoadTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eyecandy_performer_ruleset_load_duration_seconds",
			Help:    "Duration of loading a performer's full access rule set",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

func (m *Metrics) IncrementChange(kind string) {
	m.ConfigChanges.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveRuleSetLoad(seconds float64) {
	m.RuleSetLoadTime.Observe(seconds)
}
