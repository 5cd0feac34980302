package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"onboard/internal/platform/middleware"
	"onboard/pkg/platform/httputil"
)

// Pinger is a dependency that can report its own health.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Countries int               `json:"countries"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler reports liveness plus the state of optional dependencies.
// A nil Redis means rate limiting runs in memory and is reported "disabled".
type HealthHandler struct {
	redis     Pinger
	countries int
	timeout   time.Duration
	logger    *slog.Logger
}

func NewHealthHandler(redis Pinger, countries int, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{redis: redis, countries: countries, timeout: 2 * time.Second, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := HealthResponse{
		Status:    "ok",
		Countries: h.countries,
		Checks:    map[string]string{"redis": "disabled"},
	}
	status := http.StatusOK

	if h.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()
		if err := h.redis.Health(pingCtx); err != nil {
			h.logger.WarnContext(ctx, "redis health check failed",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
			resp.Status = "degraded"
			resp.Checks["redis"] = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Checks["redis"] = "ok"
		}
	}

	httputil.WriteJSON(w, status, resp)
}
