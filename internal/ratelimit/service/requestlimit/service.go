package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"onboard/internal/ratelimit/config"
	"onboard/internal/ratelimit/metrics"
	"onboard/internal/ratelimit/models"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/circuit"
	"onboard/pkg/platform/privacy"
	"onboard/pkg/requestcontext"
)

// BucketStore is a sliding-window counter store.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

// Service applies per-IP limits for an endpoint class. With a fallback
// configured, repeated primary store failures switch decisions to the
// fallback store until the primary recovers.
type Service struct {
	buckets  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
	config   *config.Config
	metrics  *metrics.Metrics

	probeInterval time.Duration
	lastProbe     atomic.Int64 // unix nanos of the last primary call while open
}

const defaultProbeInterval = 5 * time.Second

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithProbeInterval sets how often the primary is retried while the breaker is open.
func WithProbeInterval(d time.Duration) Option {
	return func(s *Service) {
		s.probeInterval = d
	}
}

// WithFallback sets the store used while breaker is open.
func WithFallback(store BucketStore, breaker *circuit.Breaker) Option {
	return func(s *Service) {
		s.fallback = store
		s.breaker = breaker
	}
}

func New(buckets BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}

	svc := &Service{
		buckets: buckets,
		config:  config.DefaultConfig(),
		logger:  slog.New(slog.DiscardHandler),

		probeInterval: defaultProbeInterval,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.fallback != nil && svc.breaker == nil {
		svc.breaker = circuit.New("ratelimit-buckets")
	}

	return svc, nil
}

// CheckIP consumes one request from the IP's bucket for class. Classes
// without a configured limit are denied.
func (s *Service) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	requestsPerWindow, window, ok := s.config.GetIPLimit(class)
	if !ok {
		s.logger.WarnContext(ctx, "rate limit config missing",
			"endpoint_class", class,
			"ip_prefix", privacy.AnonymizeIP(ip),
			"request_id", requestcontext.RequestID(ctx),
		)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    requestcontext.Now(ctx),
			RetryAfter: 60,
		}, nil
	}

	key := models.NewRateLimitKey(models.KeyPrefixIP, ip, class)
	result, err := s.allow(ctx, key.String(), requestsPerWindow, window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}

	if s.metrics != nil {
		s.metrics.RecordDecision(string(class), result.Allowed)
	}
	if !result.Allowed {
		s.logger.InfoContext(ctx, "ip rate limit exceeded",
			"endpoint_class", class,
			"ip_prefix", privacy.AnonymizeIP(ip),
			"limit", requestsPerWindow,
			"window_seconds", int(window.Seconds()),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return result, nil
}

func (s *Service) allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	if s.fallback == nil {
		result, err := s.buckets.Allow(ctx, key, limit, window)
		if err != nil {
			s.recordStoreError("primary")
		}
		return result, err
	}

	if s.breaker.IsOpen() && !s.shouldProbe() {
		return s.allowFallback(ctx, key, limit, window)
	}

	result, err := s.buckets.Allow(ctx, key, limit, window)
	if err != nil {
		s.recordStoreError("primary")
		useFallback, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "rate limit store unavailable, using in-memory fallback", "error", err)
			s.setFallbackActive(true)
			s.lastProbe.Store(time.Now().UnixNano())
		}
		if !useFallback {
			return nil, err
		}
		return s.allowFallback(ctx, key, limit, window)
	}

	usePrimary, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.logger.InfoContext(ctx, "rate limit store recovered")
		s.setFallbackActive(false)
	}
	if !usePrimary {
		return s.allowFallback(ctx, key, limit, window)
	}
	return result, nil
}

// shouldProbe lets one caller per probe interval through to the primary.
func (s *Service) shouldProbe() bool {
	now := time.Now().UnixNano()
	last := s.lastProbe.Load()
	if now-last < s.probeInterval.Nanoseconds() {
		return false
	}
	return s.lastProbe.CompareAndSwap(last, now)
}

func (s *Service) allowFallback(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	result, err := s.fallback.Allow(ctx, key, limit, window)
	if err != nil {
		s.recordStoreError("fallback")
		return nil, err
	}
	result.Degraded = true
	return result, nil
}

func (s *Service) recordStoreError(store string) {
	if s.metrics != nil {
		s.metrics.IncrementStoreErrors(store)
	}
}

func (s *Service) setFallbackActive(active bool) {
	if s.metrics != nil {
		s.metrics.SetFallbackActive(active)
	}
}
