package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	MetricsAddr    string
	Environment    string
	LogLevel       string
	RequestTimeout time.Duration
	FlagBaseURL    string
	// TrustedProxies lists peer IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means the TCP peer is the client.
	TrustedProxies []string
	Redis          RedisConfig
	RateLimit      RateLimitConfig
}

// RedisConfig configures the optional Redis connection. An empty URL keeps
// rate limiting in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimitConfig sets per-IP sliding windows for the public endpoints and
// the sign-in lockout keyed by e-mail and IP.
type RateLimitConfig struct {
	Disabled     bool
	AuthLimit    int
	AuthWindow   time.Duration
	LookupLimit  int
	LookupWindow time.Duration

	LockoutAttempts int
	LockoutWindow   time.Duration
	LockoutDuration time.Duration
}

// IsDevelopment reports whether the service runs with developer defaults.
func (s Server) IsDevelopment() bool {
	return s.Environment == "development"
}

// Load primes the environment from a .env file when present, then reads it.
func Load(files ...string) Server {
	_ = godotenv.Load(files...)
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:           getString("ONBOARD_ADDR", ":8080"),
		MetricsAddr:    getString("ONBOARD_METRICS_ADDR", ":9090"),
		Environment:    strings.ToLower(getString("ONBOARD_ENV", "development")),
		LogLevel:       getString("ONBOARD_LOG_LEVEL", "info"),
		RequestTimeout: getDuration("ONBOARD_REQUEST_TIMEOUT", 10*time.Second),
		FlagBaseURL:    getString("ONBOARD_FLAG_BASE_URL", ""),
		TrustedProxies: getList("ONBOARD_TRUSTED_PROXIES"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimitConfig{
			Disabled:     os.Getenv("ONBOARD_DISABLE_RATE_LIMIT") == "true",
			AuthLimit:    getInt("ONBOARD_SIGNIN_LIMIT", 10),
			AuthWindow:   getDuration("ONBOARD_SIGNIN_WINDOW", time.Minute),
			LookupLimit:  getInt("ONBOARD_SEARCH_LIMIT", 300),
			LookupWindow: getDuration("ONBOARD_SEARCH_WINDOW", time.Minute),

			LockoutAttempts: getInt("ONBOARD_LOCKOUT_ATTEMPTS", 5),
			LockoutWindow:   getDuration("ONBOARD_LOCKOUT_WINDOW", 15*time.Minute),
			LockoutDuration: getDuration("ONBOARD_LOCKOUT_DURATION", 15*time.Minute),
		},
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getList splits a comma-separated variable, dropping blank entries.
func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
