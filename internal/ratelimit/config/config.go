package config

import (
	"time"

	platformcfg "onboard/internal/platform/config"
	"onboard/internal/ratelimit/models"
)

// Limit is the request budget for one endpoint class.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// AuthLockoutConfig bounds failed sign-ins per e-mail and client IP.
type AuthLockoutConfig struct {
	AttemptsPerWindow int
	Window            time.Duration
	LockDuration      time.Duration
}

// Config maps endpoint classes to per-IP limits.
type Config struct {
	IPLimits    map[models.EndpointClass]Limit
	AuthLockout AuthLockoutConfig
}

// DefaultConfig mirrors the platform defaults: 10 auth submissions and 300
// lookups per minute per client IP, and a 15 minute lock after 5 failed
// sign-ins within 15 minutes.
func DefaultConfig() *Config {
	return &Config{
		IPLimits: map[models.EndpointClass]Limit{
			models.ClassAuth:   {RequestsPerWindow: 10, Window: time.Minute},
			models.ClassLookup: {RequestsPerWindow: 300, Window: time.Minute},
		},
		AuthLockout: AuthLockoutConfig{
			AttemptsPerWindow: 5,
			Window:            15 * time.Minute,
			LockDuration:      15 * time.Minute,
		},
	}
}

// FromPlatform builds a Config from the server configuration.
func FromPlatform(cfg platformcfg.RateLimitConfig) *Config {
	c := DefaultConfig()
	if cfg.AuthLimit > 0 && cfg.AuthWindow > 0 {
		c.IPLimits[models.ClassAuth] = Limit{RequestsPerWindow: cfg.AuthLimit, Window: cfg.AuthWindow}
	}
	if cfg.LookupLimit > 0 && cfg.LookupWindow > 0 {
		c.IPLimits[models.ClassLookup] = Limit{RequestsPerWindow: cfg.LookupLimit, Window: cfg.LookupWindow}
	}
	if cfg.LockoutAttempts > 0 {
		c.AuthLockout.AttemptsPerWindow = cfg.LockoutAttempts
	}
	if cfg.LockoutWindow > 0 {
		c.AuthLockout.Window = cfg.LockoutWindow
	}
	if cfg.LockoutDuration > 0 {
		c.AuthLockout.LockDuration = cfg.LockoutDuration
	}
	return c
}

// GetIPLimit returns the limit for class; ok is false when none is configured.
func (c *Config) GetIPLimit(class models.EndpointClass) (requests int, window time.Duration, ok bool) {
	l, ok := c.IPLimits[class]
	if !ok {
		return 0, 0, false
	}
	return l.RequestsPerWindow, l.Window, true
}
