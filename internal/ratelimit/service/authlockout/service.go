// Package authlockout locks an e-mail and client IP pair out of sign-in after
// repeated rejected credentials.
package authlockout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"onboard/internal/ratelimit/config"
	"onboard/internal/ratelimit/metrics"
	"onboard/internal/ratelimit/models"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/privacy"
	"onboard/pkg/requestcontext"
)

type Store interface {
	Get(ctx context.Context, key string) (*models.AuthLockout, error)
	RecordFailure(ctx context.Context, key string, window time.Duration) (*models.AuthLockout, error)
	Update(ctx context.Context, record *models.AuthLockout) error
	Clear(ctx context.Context, key string) error
}

type Service struct {
	store   Store
	logger  *slog.Logger
	config  config.AuthLockoutConfig
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg config.AuthLockoutConfig) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth lockout store is required")
	}
	svc := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		config: config.DefaultConfig().AuthLockout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.config.AttemptsPerWindow <= 0 || svc.config.Window <= 0 || svc.config.LockDuration <= 0 {
		return nil, errors.New("auth lockout attempts, window and duration must be positive")
	}
	return svc, nil
}

// Check reports whether identifier may attempt a sign-in from ip. A locked
// pair is denied with RetryAfter set to the remaining lock in seconds.
func (s *Service) Check(ctx context.Context, identifier, ip string) (*models.RateLimitResult, error) {
	rec, err := s.store.Get(ctx, models.NewAuthLockoutKey(identifier, ip).String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to get auth lockout record")
	}
	if rec == nil {
		rec = &models.AuthLockout{}
	}

	now := requestcontext.Now(ctx)
	if rec.IsLockedAt(now) {
		s.record("blocked")
		return &models.RateLimitResult{
			Allowed:    false,
			Limit:      s.config.AttemptsPerWindow,
			ResetAt:    *rec.LockedUntil,
			RetryAfter: models.RetryAfterSeconds(now, *rec.LockedUntil),
		}, nil
	}

	used := rec.FailureCount
	if rec.LockedUntil != nil || now.Sub(rec.LastFailureAt) > s.config.Window {
		used = 0
	}
	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     s.config.AttemptsPerWindow,
		Remaining: max(s.config.AttemptsPerWindow-used, 0),
		ResetAt:   now.Add(s.config.Window),
	}, nil
}

// RecordFailure counts a rejected sign-in and locks the pair once the count
// reaches the configured attempts.
func (s *Service) RecordFailure(ctx context.Context, identifier, ip string) (*models.AuthLockout, error) {
	current, err := s.store.RecordFailure(ctx, models.NewAuthLockoutKey(identifier, ip).String(), s.config.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record auth failure")
	}

	now := requestcontext.Now(ctx)
	if current.FailureCount < s.config.AttemptsPerWindow || current.IsLockedAt(now) {
		return current, nil
	}

	current.ApplyLock(s.config.LockDuration, now)
	if err := s.store.Update(ctx, current); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update auth lockout record")
	}
	s.record("locked")
	s.logger.WarnContext(ctx, "auth lockout triggered",
		"email", privacy.MaskEmail(identifier),
		"ip_prefix", privacy.AnonymizeIP(ip),
		"user_agent", requestcontext.UserAgent(ctx),
		"failures", current.FailureCount,
		"locked_until", current.LockedUntil,
		"request_id", requestcontext.RequestID(ctx),
	)
	return current, nil
}

// Clear forgets the failures of the pair after a successful sign-in.
func (s *Service) Clear(ctx context.Context, identifier, ip string) error {
	if err := s.store.Clear(ctx, models.NewAuthLockoutKey(identifier, ip).String()); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear auth failures")
	}
	return nil
}

func (s *Service) record(event string) {
	if s.metrics != nil {
		s.metrics.RecordLockout(event)
	}
}
