package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"onboard/internal/country"
	"onboard/internal/platform/metrics"
	"onboard/pkg/testutil"
)

type CountryHandlerSuite struct {
	suite.Suite
	router  chi.Router
	metrics *metrics.Metrics
}

func TestCountryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CountryHandlerSuite))
}

func (s *CountryHandlerSuite) SetupTest() {
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.router = chi.NewRouter()
	h := New(
		country.NewIndex(country.Dataset()),
		country.FlagResolver{},
		slog.New(slog.DiscardHandler),
		s.metrics,
	)
	h.Register(s.router)
}

func (s *CountryHandlerSuite) search(q string) *SearchResponse {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/countries?q="+url.QueryEscape(q))
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	return testutil.UnmarshalResponse[SearchResponse](s.T(), rr)
}

func (s *CountryHandlerSuite) TestSearch() {
	s.Run("empty query lists everything in order", func() {
		resp := s.search("")
		s.Equal(249, resp.Count)
		s.Len(resp.Results, 249)
		s.Equal("AF", resp.Results[0].Code)
	})

	s.Run("prefix matches rank before contains matches", func() {
		resp := s.search("uni")
		names := make([]string, 0, len(resp.Results))
		for _, r := range resp.Results {
			names = append(names, r.Name)
		}
		s.Equal([]string{
			"United Arab Emirates",
			"United Kingdom",
			"United States",
			"United States Minor Outlying Islands",
			"Réunion",
			"Tanzania, United Republic of",
			"Tunisia",
		}, names)
		s.Equal("uni", resp.Query)
	})

	s.Run("case insensitive", func() {
		s.Equal(s.search("GER").Results, s.search("ger").Results)
	})

	s.Run("no match is an empty list", func() {
		resp := s.search("zzz")
		s.Zero(resp.Count)
		s.NotNil(resp.Results)
		s.Empty(resp.Results)
	})

	s.Run("results carry flag urls", func() {
		resp := s.search("Bangla")
		s.Require().Len(resp.Results, 1)
		s.Equal(CountryResponse{Code: "BD", Name: "Bangladesh", FlagURL: "https://flagcdn.com/24x18/bd.png"}, resp.Results[0])
	})

	s.Run("searches are counted", func() {
		s.Equal(1.0, promtest.ToFloat64(s.metrics.CountrySearches.WithLabelValues("empty")))
	})
}

func (s *CountryHandlerSuite) TestGet() {
	s.Run("known code any case", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/countries/de"))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[CountryResponse](s.T(), rr)
		s.Equal("DE", resp.Code)
		s.Equal("Germany", resp.Name)
		s.Equal("https://flagcdn.com/24x18/de.png", resp.FlagURL)
	})

	s.Run("unknown code", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/countries/XX"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}
