package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus collectors.
type Metrics struct {
	PasswordClassifications *prometheus.CounterVec
	CountrySearches         *prometheus.CounterVec
	CountrySearchResults    prometheus.Histogram
	SignUps                 *prometheus.CounterVec
	SignIns                 *prometheus.CounterVec
	FormFieldErrors         *prometheus.CounterVec
	RequestDuration         *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PasswordClassifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_password_classifications_total",
			Help: "Password strength classifications by resulting tier",
		}, []string{"tier"}),
		CountrySearches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_country_searches_total",
			Help: "Country type-ahead searches by outcome (all, match, empty)",
		}, []string{"outcome"}),
		CountrySearchResults: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "onboard_country_search_results",
			Help:    "Number of countries returned per non-empty query",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		SignUps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_signups_total",
			Help: "Sign-up submissions by outcome",
		}, []string{"outcome"}),
		SignIns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_signins_total",
			Help: "Sign-in submissions by outcome",
		}, []string{"outcome"}),
		FormFieldErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "onboard_form_field_errors_total",
			Help: "Rejected form fields by form and field name",
		}, []string{"form", "field"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
	}
}

// ObservePasswordTier counts one classification.
func (m *Metrics) ObservePasswordTier(tier string) {
	if tier == "" {
		tier = "none"
	}
	m.PasswordClassifications.WithLabelValues(tier).Inc()
}

// ObserveCountrySearch counts a search and, for non-empty queries, records
// the result size.
func (m *Metrics) ObserveCountrySearch(query string, results int) {
	switch {
	case query == "":
		m.CountrySearches.WithLabelValues("all").Inc()
		return
	case results == 0:
		m.CountrySearches.WithLabelValues("empty").Inc()
	default:
		m.CountrySearches.WithLabelValues("match").Inc()
	}
	m.CountrySearchResults.Observe(float64(results))
}

// IncrementSignUps counts a sign-up outcome: created, invalid, rejected, error.
func (m *Metrics) IncrementSignUps(outcome string) {
	m.SignUps.WithLabelValues(outcome).Inc()
}

// IncrementSignIns counts a sign-in outcome: success, invalid, rejected, error.
func (m *Metrics) IncrementSignIns(outcome string) {
	m.SignIns.WithLabelValues(outcome).Inc()
}

// ObserveFieldErrors counts every rejected field of a form submission.
func (m *Metrics) ObserveFieldErrors(form string, fields map[string]string) {
	for field := range fields {
		m.FormFieldErrors.WithLabelValues(form, field).Inc()
	}
}
