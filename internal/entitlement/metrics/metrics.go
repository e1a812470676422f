package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Checks  *prometheus.CounterVec
	Changes *prometheus.CounterVec
}

// New registers entitlement metrics with reg, or the default registerer when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_entitlement_checks_total",
			Help: "Total number of entitlement checks by result (active, none, error)",
		}, []string{"result"}),
		Changes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_entitlement_changes_total",
			Help: "Total number of entitlement grants and revocations",
		}, []string{"op", "kind"}),
	}
}

func (m *Metrics) RecordCheck(result string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordChange(op, kind string) {
	if m == nil {
		return
	}
	m.Changes.WithLabelValues(op, kind).Inc()
}
