package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"onboard/internal/auth/adapters"
	authhandler "onboard/internal/auth/handler"
	authservice "onboard/internal/auth/service"
	"onboard/internal/country"
	countryhandler "onboard/internal/country/handler"
	"onboard/internal/form"
	formhandler "onboard/internal/form/handler"
	"onboard/internal/platform/config"
	"onboard/internal/platform/httpserver"
	"onboard/internal/platform/logger"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/redis"
	ratelimitcfg "onboard/internal/ratelimit/config"
	ratelimitmetrics "onboard/internal/ratelimit/metrics"
	ratelimitmw "onboard/internal/ratelimit/middleware"
	"onboard/internal/ratelimit/service/authlockout"
	"onboard/internal/ratelimit/service/requestlimit"
	lockoutstore "onboard/internal/ratelimit/store/authlockout"
	"onboard/internal/ratelimit/store/bucket"
	strengthhandler "onboard/internal/strength/handler"
	httptransport "onboard/internal/transport/http"
	"onboard/pkg/platform/circuit"
	"onboard/pkg/platform/middleware/metadata"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	stubAuthDelay   = 300 * time.Millisecond
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and metrics listeners",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load(envFile)
	log := logger.New(cfg.IsDevelopment(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warn("redis close failed", "error", err)
			}
		}()
	}

	trusted, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("parse trusted proxies: %w", err)
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	rlMetrics := ratelimitmetrics.New(prometheus.DefaultRegisterer)
	limiter, err := buildLimiter(ctx, cfg, redisClient, rlMetrics, log)
	if err != nil {
		return err
	}
	lockout, err := buildLockout(ctx, cfg, rlMetrics, log)
	if err != nil {
		return err
	}

	index := country.NewIndex(country.Dataset())
	validator := form.NewValidator(index)
	auth, err := authservice.New(
		adapters.NewStubAuthenticator(adapters.WithDelay(stubAuthDelay)),
		validator,
		authservice.WithLogger(log),
		authservice.WithMetrics(appMetrics),
		authservice.WithLockout(lockout),
	)
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	var pinger httptransport.Pinger
	if redisClient != nil {
		pinger = redisClient
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        appMetrics,
		RateLimit:      ratelimitmw.New(limiter, log, ratelimitmw.WithDisabled(cfg.RateLimit.Disabled)),
		RequestTimeout: cfg.RequestTimeout,
		TrustedProxies: trusted,
		Auth:           authhandler.New(auth, log),
		Strength:       strengthhandler.New(log, appMetrics),
		Country:        countryhandler.New(index, country.FlagResolver{BaseURL: cfg.FlagBaseURL}, log, appMetrics),
		Options:        formhandler.New(),
		Health:         httptransport.NewHealthHandler(pinger, index.Len(), log),
	})

	api := httpserver.New(cfg.Addr, router)
	metricsSrv := httpserver.New(cfg.MetricsAddr, httptransport.NewMetricsRouter(prometheus.DefaultGatherer))

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{api, metricsSrv} {
		g.Go(func() error {
			log.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(api.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

// buildLimiter prefers Redis-backed buckets with an in-memory fallback behind
// a circuit breaker. Without Redis the memory store is primary and swept
// periodically.
func buildLimiter(ctx context.Context, cfg config.Server, redisClient *redis.Client, m *ratelimitmetrics.Metrics, log *slog.Logger) (*requestlimit.Service, error) {
	memory := bucket.New()
	memory.StartSweeper(ctx, sweepInterval)

	opts := []requestlimit.Option{
		requestlimit.WithLogger(log),
		requestlimit.WithConfig(ratelimitcfg.FromPlatform(cfg.RateLimit)),
		requestlimit.WithMetrics(m),
	}

	if redisClient == nil {
		log.Info("rate limiting with in-memory buckets")
		return requestlimit.New(memory, opts...)
	}

	log.Info("rate limiting with redis buckets", "fallback", "memory")
	opts = append(opts, requestlimit.WithFallback(memory, circuit.New("ratelimit-redis")))
	return requestlimit.New(bucket.NewRedis(redisClient.Client), opts...)
}

// buildLockout keeps sign-in failures in process memory, swept once they age
// out of the lockout window.
func buildLockout(ctx context.Context, cfg config.Server, m *ratelimitmetrics.Metrics, log *slog.Logger) (*authlockout.Service, error) {
	lockoutCfg := ratelimitcfg.FromPlatform(cfg.RateLimit).AuthLockout
	store := lockoutstore.New()
	store.StartSweeper(ctx, sweepInterval, lockoutCfg.Window)

	svc, err := authlockout.New(store,
		authlockout.WithConfig(lockoutCfg),
		authlockout.WithLogger(log),
		authlockout.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("build auth lockout: %w", err)
	}
	return svc, nil
}
