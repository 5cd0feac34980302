package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
	"onboard/internal/strength"
	"onboard/pkg/platform/httputil"
)

// AssessRequest carries the password to grade. It is never logged.
type AssessRequest struct {
	Password string `json:"password"`
}

type Handler struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, metrics: m}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/password/strength", h.HandleAssess)
}

// HandleAssess returns the tier and meter presentation for a password.
// Every string is valid input, so the only failure is a malformed body.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AssessRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}

	a := strength.Assess(req.Password)
	if h.metrics != nil {
		h.metrics.ObservePasswordTier(a.Tier.String())
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}
