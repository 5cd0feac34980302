package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onboard/internal/country"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/httputil"
	"onboard/pkg/platform/sentinel"
)

// CountryResponse is one selectable country.
type CountryResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	FlagURL string `json:"flag_url"`
}

// SearchResponse lists countries in ranked order.
type SearchResponse struct {
	Query   string            `json:"query"`
	Count   int               `json:"count"`
	Results []CountryResponse `json:"results"`
}

type Handler struct {
	index   *country.Index
	flags   country.FlagResolver
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(index *country.Index, flags country.FlagResolver, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{index: index, flags: flags, logger: logger, metrics: m}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/countries", h.HandleSearch)
	r.Get("/countries/{code}", h.HandleGet)
}

// HandleSearch ranks countries for ?q=. A missing or empty q lists every
// country in dataset order; no match is an empty list, not an error.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	records := h.index.Search(query)
	if h.metrics != nil {
		h.metrics.ObserveCountrySearch(query, len(records))
	}

	resp := SearchResponse{
		Query:   query,
		Count:   len(records),
		Results: make([]CountryResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Results = append(resp.Results, h.toResponse(rec))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet resolves a committed selection back to its name and flag.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	rec, err := h.index.Lookup(code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "country not found"))
			return
		}
		h.logger.ErrorContext(ctx, "country lookup failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "country lookup failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.toResponse(rec))
}

func (h *Handler) toResponse(rec country.Record) CountryResponse {
	return CountryResponse{Code: rec.Code, Name: rec.Name, FlagURL: h.flags.URL(rec.Code)}
}
