package geolocation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers provider lookups and the location cache.
type Metrics struct {
	LookupsTotal          *prometheus.CounterVec // by outcome: resolved, unresolvable, error, circuit_open
	LookupDurationSeconds prometheus.Histogram
	CacheHitsTotal        prometheus.Counter
	CacheMissesTotal      prometheus.Counter
	CacheEntries          prometheus.Gauge
	CircuitTransitions    *prometheus.CounterVec // by new state
}

// NewMetrics registers the geolocation metrics with reg, or the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		LookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_geolocation_lookups_total",
			Help: "Total number of geolocation lookups by outcome",
		}, []string{"outcome"}),
		LookupDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eyecandy_geolocation_lookup_duration_seconds",
			Help:    "Duration of geolocation provider calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		CacheHitsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "eyecandy_geolocation_cache_hits_total",
			Help: "Total number of geolocation cache hits",
		}),
		CacheMissesTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "eyecandy_geolocation_cache_misses_total",
			Help: "Total number of geolocation cache misses",
		}),
		CacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "eyecandy_geolocation_cache_entries",
			Help: "Current number of cached locations",
		}),
		CircuitTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eyecandy_geolocation_circuit_transitions_total",
			Help: "Circuit breaker transitions for the geolocation provider",
		}, []string{"state"}),
	}
}

func (m *Metrics) RecordLookup(outcome string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(outcome).Inc()
	if durationSeconds > 0 {
		m.LookupDurationSeconds.Observe(durationSeconds)
	}
}

func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.Inc()
		return
	}
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.CacheEntries.Set(float64(n))
}

func (m *Metrics) RecordCircuit(state string) {
	if m == nil {
		return
	}
	m.CircuitTransitions.WithLabelValues(state).Inc()
}
