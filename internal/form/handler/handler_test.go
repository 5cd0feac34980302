package handler

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboard/internal/form"
	"onboard/pkg/testutil"
)

func TestHandleOptions(t *testing.T) {
	r := chi.NewRouter()
	New().Register(r)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/options"))

	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[OptionsResponse](t, rr)
	assert.Equal(t, form.InvestmentGoals, resp.InvestmentGoals)
	assert.Len(t, resp.RiskTolerance, 3)
	require.NotEmpty(t, resp.PreferredIndustries)
	assert.Equal(t, "Technology", resp.PreferredIndustries[0].Value)
	assert.Equal(t, Defaults{
		Country:           "BD",
		InvestmentGoals:   "Growth",
		RiskTolerance:     "Medium",
		PreferredIndustry: "Technology",
	}, resp.Defaults)
}

func TestDefaultsAreSelectable(t *testing.T) {
	resp := New().resp
	assert.Contains(t, resp.InvestmentGoals, form.Option{Value: resp.Defaults.InvestmentGoals, Label: resp.Defaults.InvestmentGoals})
	assert.Contains(t, resp.RiskTolerance, form.Option{Value: resp.Defaults.RiskTolerance, Label: resp.Defaults.RiskTolerance})
	assert.Contains(t, resp.PreferredIndustries, form.Option{Value: resp.Defaults.PreferredIndustry, Label: resp.Defaults.PreferredIndustry})
}
