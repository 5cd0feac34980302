package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"onboard/internal/auth/models"
	"onboard/internal/country"
	"onboard/internal/form"
	"onboard/internal/platform/metrics"
	rlmodels "onboard/internal/ratelimit/models"
	"onboard/internal/strength"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/privacy"
	"onboard/pkg/requestcontext"
)

// Authenticator is the external identity provider.
type Authenticator interface {
	SignIn(ctx context.Context, creds models.Credentials) (*models.Result, error)
	SignUp(ctx context.Context, reg models.Registration) (*models.Result, error)
}

// Lockout tracks rejected sign-ins per e-mail and client IP.
type Lockout interface {
	Check(ctx context.Context, identifier, ip string) (*rlmodels.RateLimitResult, error)
	RecordFailure(ctx context.Context, identifier, ip string) (*rlmodels.AuthLockout, error)
	Clear(ctx context.Context, identifier, ip string) error
}

const (
	formSignUp = "sign_up"
	formSignIn = "sign_in"

	msgSignUpFailed = "Failed to create account."
	msgSignInFailed = "Failed to sign in."
	msgInvalidCreds = "Invalid credentials"
	msgLockedOut    = "Too many failed sign-in attempts. Try again later."
)

// Service validates submitted forms and forwards them to the Authenticator.
// Passwords are never logged or attached to spans.
type Service struct {
	auth      Authenticator
	validator *form.Validator
	lockout   Lockout
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLockout enables sign-in lockout after repeated rejections.
func WithLockout(l Lockout) Option {
	return func(s *Service) {
		s.lockout = l
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(auth Authenticator, validator *form.Validator, opts ...Option) (*Service, error) {
	if auth == nil {
		return nil, errors.New("authenticator is required")
	}
	if validator == nil {
		return nil, errors.New("form validator is required")
	}
	s := &Service{
		auth:      auth,
		validator: validator,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer("onboard/internal/auth"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SignUp validates the form, grades the password and registers the account.
func (s *Service) SignUp(ctx context.Context, f form.SignUp) (*models.SignUpResult, error) {
	ctx, span := s.tracer.Start(ctx, "auth.SignUp")
	defer span.End()

	if err := s.validator.SignUp(f); err != nil {
		s.rejectForm(ctx, span, formSignUp, err)
		s.countSignUp("invalid")
		return nil, err
	}

	tier := strength.Classify(f.Password)
	span.SetAttributes(
		attribute.String("onboard.country", f.Country),
		attribute.String("onboard.password_tier", tier.String()),
	)
	if s.metrics != nil {
		s.metrics.ObservePasswordTier(tier.String())
	}

	res, err := s.auth.SignUp(ctx, models.Registration{
		FullName:          f.FullName,
		Email:             f.Email,
		Password:          f.Password,
		Country:           country.NormalizeCode(f.Country),
		InvestmentGoals:   f.InvestmentGoals,
		RiskTolerance:     f.RiskTolerance,
		PreferredIndustry: f.PreferredIndustry,
	})
	if err != nil {
		s.failAuthenticator(ctx, span, "sign-up authenticator call failed", err)
		s.countSignUp("error")
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, msgSignUpFailed)
	}
	if !res.Success {
		span.SetStatus(codes.Error, "rejected")
		s.countSignUp("rejected")
		s.logger.InfoContext(ctx, "sign-up rejected",
			"email", privacy.MaskEmail(f.Email),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.New(dErrors.CodeConflict, messageOr(res.Message, msgSignUpFailed))
	}

	s.countSignUp("created")
	s.logger.InfoContext(ctx, "account created",
		"email", privacy.MaskEmail(f.Email),
		"country", f.Country,
		"password_tier", tier.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.SignUpResult{
		Message:      res.Message,
		AccountID:    res.AccountID,
		PasswordTier: tier,
	}, nil
}

// SignIn validates the form and checks the credentials. With a Lockout
// configured, a locked e-mail and IP pair is refused before the
// authenticator is called, rejections are counted and success clears them.
func (s *Service) SignIn(ctx context.Context, f form.SignIn) (*models.SignInResult, error) {
	ctx, span := s.tracer.Start(ctx, "auth.SignIn")
	defer span.End()

	if err := s.validator.SignIn(f); err != nil {
		s.rejectForm(ctx, span, formSignIn, err)
		s.countSignIn("invalid")
		return nil, err
	}

	ip := requestcontext.ClientIP(ctx)
	if err := s.checkLockout(ctx, f.Email, ip); err != nil {
		span.SetStatus(codes.Error, "locked out")
		s.countSignIn("locked")
		return nil, err
	}

	res, err := s.auth.SignIn(ctx, models.Credentials{Email: f.Email, Password: f.Password})
	if err != nil {
		s.failAuthenticator(ctx, span, "sign-in authenticator call failed", err)
		s.countSignIn("error")
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, msgSignInFailed)
	}
	if !res.Success {
		span.SetStatus(codes.Error, "rejected")
		s.countSignIn("rejected")
		s.logger.InfoContext(ctx, "sign-in rejected",
			"email", privacy.MaskEmail(f.Email),
			"ip_prefix", privacy.AnonymizeIP(ip),
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.lockout != nil {
			if _, err := s.lockout.RecordFailure(ctx, f.Email, ip); err != nil {
				s.logger.WarnContext(ctx, "failed to record sign-in failure",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
			}
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, messageOr(res.Message, msgInvalidCreds))
	}

	if s.lockout != nil {
		if err := s.lockout.Clear(ctx, f.Email, ip); err != nil {
			s.logger.WarnContext(ctx, "failed to clear sign-in failures",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	s.countSignIn("success")
	s.logger.InfoContext(ctx, "signed in",
		"email", privacy.MaskEmail(f.Email),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.SignInResult{Message: res.Message}, nil
}

// checkLockout returns a rate limited error while the pair is locked. Store
// failures are logged and the attempt proceeds.
func (s *Service) checkLockout(ctx context.Context, email, ip string) error {
	if s.lockout == nil {
		return nil
	}
	res, err := s.lockout.Check(ctx, email, ip)
	if err != nil {
		s.logger.WarnContext(ctx, "auth lockout check failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil
	}
	if res.Allowed {
		return nil
	}
	s.logger.InfoContext(ctx, "sign-in refused while locked out",
		"email", privacy.MaskEmail(email),
		"ip_prefix", privacy.AnonymizeIP(ip),
		"retry_after", res.RetryAfter,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.NewRateLimited(msgLockedOut, time.Duration(res.RetryAfter)*time.Second)
}

func (s *Service) rejectForm(ctx context.Context, span trace.Span, formName string, err error) {
	span.SetStatus(codes.Error, "invalid form")
	de, ok := dErrors.As(err)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("onboard.invalid_fields", len(de.Fields)))
	if s.metrics != nil {
		s.metrics.ObserveFieldErrors(formName, de.Fields)
	}
	s.logger.DebugContext(ctx, "form rejected",
		"form", formName,
		"fields", len(de.Fields),
		"request_id", requestcontext.RequestID(ctx),
	)
}

func (s *Service) failAuthenticator(ctx context.Context, span trace.Span, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}

func (s *Service) countSignUp(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSignUps(outcome)
	}
}

func (s *Service) countSignIn(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSignIns(outcome)
	}
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
