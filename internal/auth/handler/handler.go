package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onboard/internal/auth/models"
	"onboard/internal/form"
	"onboard/internal/platform/middleware"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/httputil"
)

// Service is the auth use-case surface the handler needs.
type Service interface {
	SignUp(ctx context.Context, f form.SignUp) (*models.SignUpResult, error)
	SignIn(ctx context.Context, f form.SignIn) (*models.SignInResult, error)
}

type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the auth routes. Callers wrap r with rate limiting.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/sign-up", h.HandleSignUp)
	r.Post("/auth/sign-in", h.HandleSignIn)
}

// HandleSignUp validates and submits the sign-up form.
func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[form.SignUp](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.auth.SignUp(ctx, *req)
	if err != nil {
		h.writeServiceError(ctx, w, err, requestID)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &models.SignUpResponse{
		Success:      true,
		Message:      res.Message,
		AccountID:    res.AccountID,
		PasswordTier: res.PasswordTier,
	})
}

// HandleSignIn validates and submits the sign-in form.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[form.SignIn](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.auth.SignIn(ctx, *req)
	if err != nil {
		h.writeServiceError(ctx, w, err, requestID)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &models.SignInResponse{
		Success: true,
		Message: res.Message,
	})
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, requestID string) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "auth request failed",
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
