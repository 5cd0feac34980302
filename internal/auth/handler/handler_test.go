package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"onboard/internal/auth/adapters"
	"onboard/internal/auth/models"
	"onboard/internal/auth/service"
	"onboard/internal/country"
	"onboard/internal/form"
	"onboard/internal/strength"
	"onboard/pkg/testutil"
)

type AuthHandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupTest() {
	svc, err := service.New(
		adapters.NewStubAuthenticator(),
		form.NewValidator(country.NewIndex(country.Dataset())),
	)
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(svc, logger).Register(s.router)
}

func (s *AuthHandlerSuite) signUpBody() map[string]string {
	return map[string]string{
		"fullName":          "Jane Doe",
		"email":             "jane@example.com",
		"password":          "Abcdef12",
		"country":           "BD",
		"investmentGoals":   "Growth",
		"riskTolerance":     "Medium",
		"preferredIndustry": "Technology",
	}
}

func (s *AuthHandlerSuite) TestSignUp() {
	s.Run("created", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/sign-up", s.signUpBody())
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[models.SignUpResponse](s.T(), rr)
		s.True(resp.Success)
		s.Equal("Account created successfully", resp.Message)
		s.Equal(strength.TierMedium, resp.PasswordTier)
		s.NotEmpty(resp.AccountID)
	})

	s.Run("field errors", func() {
		body := s.signUpBody()
		body["email"] = "jane@example"
		body["riskTolerance"] = "Extreme"
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/sign-up", body)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		resp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("validation_error", resp.Error)
		s.Equal("Enter a valid email address", resp.Fields["email"])
		s.Equal("Select a valid risk tolerance", resp.Fields["riskTolerance"])
	})

	s.Run("unknown country", func() {
		body := s.signUpBody()
		body["country"] = "XX"
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/sign-up", body))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		testutil.AssertFieldError(s.T(), rr, "country", "Please select a valid country")
	})

	s.Run("malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/auth/sign-up", `{"email":`)
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *AuthHandlerSuite) TestSignIn() {
	s.Run("demo credentials", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/sign-in", map[string]string{
			"email": adapters.DemoEmail, "password": adapters.DemoPassword,
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "message", "Signed in successfully")
	})

	s.Run("wrong password", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/sign-in", map[string]string{
			"email": adapters.DemoEmail, "password": "password124",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
		resp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("unauthorized", resp.Error)
		s.Equal("Invalid email or password", resp.ErrorDescription)
	})

	s.Run("missing fields", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/sign-in", map[string]string{})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		resp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("Email is required", resp.Fields["email"])
		s.Equal("Password is required", resp.Fields["password"])
	})
}

type failingService struct{}

func (failingService) SignUp(context.Context, form.SignUp) (*models.SignUpResult, error) {
	return nil, io.ErrUnexpectedEOF
}

func (failingService) SignIn(context.Context, form.SignIn) (*models.SignInResult, error) {
	return nil, io.ErrUnexpectedEOF
}

func (s *AuthHandlerSuite) TestUncodedErrorIsInternal() {
	r := chi.NewRouter()
	New(failingService{}, slog.New(slog.DiscardHandler)).Register(r)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/sign-in", map[string]string{"email": "a@b.co", "password": "12345678"})
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
}
