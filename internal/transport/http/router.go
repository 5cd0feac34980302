// Package httptransport assembles the public HTTP surface from the feature
// handlers and the shared middleware chain.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
	ratelimitmw "onboard/internal/ratelimit/middleware"
	"onboard/internal/ratelimit/models"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/httputil"
	"onboard/pkg/platform/middleware/metadata"
	"onboard/pkg/platform/middleware/requesttime"
	"onboard/pkg/platform/middleware/version"
)

// Registrar mounts a feature's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps are the pieces NewRouter wires together.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	RateLimit      *ratelimitmw.Middleware
	RequestTimeout time.Duration
	TrustedProxies metadata.TrustedProxies

	Auth     Registrar
	Strength Registrar
	Country  Registrar
	Options  Registrar
	Health   http.Handler
}

// NewRouter builds the API router:
//
//	GET  /health
//	POST /v1/password/strength      lookup limit
//	GET  /v1/countries[?q=]         lookup limit
//	GET  /v1/countries/{code}       lookup limit
//	GET  /v1/options                lookup limit
//	POST /v1/auth/sign-up           auth limit
//	POST /v1/auth/sign-in           auth limit
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata(d.TrustedProxies))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.LatencyMiddleware(d.Metrics))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{
			Error:            "method_not_allowed",
			ErrorDescription: "method not allowed",
		})
	})

	if d.Health != nil {
		r.Method(http.MethodGet, "/health", d.Health)
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(version.Middleware(version.V1))
		v1.Use(middleware.Timeout(d.RequestTimeout))
		v1.Use(middleware.ContentTypeJSON)

		v1.Group(func(lookup chi.Router) {
			if d.RateLimit != nil {
				lookup.Use(d.RateLimit.RateLimit(models.ClassLookup))
			}
			for _, reg := range []Registrar{d.Strength, d.Country, d.Options} {
				if reg != nil {
					reg.Register(lookup)
				}
			}
		})

		v1.Group(func(auth chi.Router) {
			if d.RateLimit != nil {
				auth.Use(d.RateLimit.RateLimit(models.ClassAuth))
			}
			if d.Auth != nil {
				d.Auth.Register(auth)
			}
		})
	})

	return r
}

// NewMetricsRouter serves Prometheus metrics on the internal listener.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
