package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboard/internal/platform/metrics"
	"onboard/internal/strength"
	"onboard/pkg/testutil"
)

func newRouter(m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()
	New(slog.New(slog.DiscardHandler), m).Register(r)
	return r
}

func TestHandleAssess(t *testing.T) {
	tests := []struct {
		name     string
		password string
		tier     strength.Tier
		percent  int
		color    string
	}{
		{"empty", "", strength.TierNone, 0, "gray"},
		{"short", "abc", strength.TierWeak, 33, "red"},
		{"whitespace", "Abcdef1! ghijk", strength.TierWeak, 33, "red"},
		{"medium", "abcdefg1", strength.TierMedium, 66, "yellow"},
		{"strong", "Abcdefgh1!xy", strength.TierStrong, 100, "green"},
	}

	router := newRouter(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/password/strength", AssessRequest{Password: tt.password})
			rr := testutil.DoRequest(router, req)

			testutil.AssertStatusOK(t, rr)
			got := testutil.UnmarshalResponse[strength.Assessment](t, rr)
			assert.Equal(t, tt.tier, got.Tier)
			assert.Equal(t, tt.percent, got.Percent)
			assert.Equal(t, tt.color, got.Color)
		})
	}
}

func TestHandleAssessWireFormat(t *testing.T) {
	req := testutil.NewJSONRequest(t, http.MethodPost, "/password/strength", AssessRequest{Password: "Abcdefgh1!xy"})
	rr := testutil.DoRequest(newRouter(nil), req)

	testutil.AssertStatusOK(t, rr)
	assert.JSONEq(t, `{
		"tier": "Strong",
		"percent": 100,
		"color": "green",
		"classes": {"upper": true, "lower": true, "digit": true, "symbol": true},
		"length": 12
	}`, rr.Body.String())
}

func TestHandleAssessMalformedBody(t *testing.T) {
	req := testutil.NewRequestWithBody(t, http.MethodPost, "/password/strength", `{"password":`)
	rr := testutil.DoRequest(newRouter(nil), req)

	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestHandleAssessRecordsTier(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	router := newRouter(m)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/password/strength", AssessRequest{Password: "abcdefg1"})
	rr := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.PasswordClassifications.WithLabelValues("Medium")))
}
