package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions      *prometheus.CounterVec
	StoreErrors    *prometheus.CounterVec
	FallbackActive prometheus.Gauge
	Lockouts       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and outcome",
		}, []string{"class", "decision"}),
		StoreErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_ratelimit_store_errors_total",
			Help: "Failed rate limit store calls by store",
		}, []string{"store"}),
		FallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "onboard_ratelimit_fallback_active",
			Help: "1 while rate limiting runs on the in-memory fallback store",
		}),
		Lockouts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_auth_lockout_events_total",
			Help: "Sign-in lockout events: locked when a key is locked, blocked when a locked key retries",
		}, []string{"event"}),
	}
}

func (m *Metrics) RecordDecision(class string, allowed bool) {
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	m.Decisions.WithLabelValues(class, decision).Inc()
}

func (m *Metrics) IncrementStoreErrors(store string) {
	m.StoreErrors.WithLabelValues(store).Inc()
}

func (m *Metrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
		return
	}
	m.FallbackActive.Set(0)
}

func (m *Metrics) RecordLockout(event string) {
	m.Lockouts.WithLabelValues(event).Inc()
}
