package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"onboard/internal/form"
	"onboard/pkg/platform/httputil"
)

// Defaults pre-fills the select fields of a blank sign-up form.
type Defaults struct {
	Country           string `json:"country"`
	InvestmentGoals   string `json:"investmentGoals"`
	RiskTolerance     string `json:"riskTolerance"`
	PreferredIndustry string `json:"preferredIndustry"`
}

// OptionsResponse lists every select-field choice of the sign-up form.
type OptionsResponse struct {
	InvestmentGoals     []form.Option `json:"investmentGoals"`
	RiskTolerance       []form.Option `json:"riskTolerance"`
	PreferredIndustries []form.Option `json:"preferredIndustries"`
	Defaults            Defaults      `json:"defaults"`
}

type Handler struct {
	resp OptionsResponse
}

func New() *Handler {
	return &Handler{resp: OptionsResponse{
		InvestmentGoals:     form.InvestmentGoals,
		RiskTolerance:       form.RiskToleranceOptions,
		PreferredIndustries: form.PreferredIndustries,
		Defaults: Defaults{
			Country:           form.Defaults.Country,
			InvestmentGoals:   form.Defaults.InvestmentGoals,
			RiskTolerance:     form.Defaults.RiskTolerance,
			PreferredIndustry: form.Defaults.PreferredIndustry,
		},
	}}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/options", h.HandleOptions)
}

func (h *Handler) HandleOptions(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.resp)
}
