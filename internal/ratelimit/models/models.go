package models

import (
	"fmt"
	"strings"
	"time"
)

// EndpointClass groups endpoints that share a rate limit.
type EndpointClass string

const (
	// ClassAuth covers sign-in and sign-up submissions.
	ClassAuth EndpointClass = "auth"
	// ClassLookup covers type-ahead reads: country search, strength meter, options.
	ClassLookup EndpointClass = "lookup"
)

// IsValid checks if the endpoint class is one of the supported values.
func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassAuth, ClassLookup:
		return true
	}
	return false
}

// KeyPrefix identifies what a bucket is keyed by.
type KeyPrefix string

const (
	KeyPrefixIP      KeyPrefix = "ip"
	KeyPrefixLockout KeyPrefix = "al"
)

// RateLimitKey is the storage key of a single bucket: "rl:<prefix>:<class>:<id>".
type RateLimitKey struct {
	Prefix     KeyPrefix
	Class      EndpointClass
	Identifier string
}

// NewRateLimitKey builds a key, sanitising the caller-controlled identifier.
func NewRateLimitKey(prefix KeyPrefix, identifier string, class EndpointClass) RateLimitKey {
	return RateLimitKey{Prefix: prefix, Class: class, Identifier: SanitizeKeySegment(identifier)}
}

func (k RateLimitKey) String() string {
	return fmt.Sprintf("rl:%s:%s:%s", k.Prefix, k.Class, k.Identifier)
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
	Degraded   bool      `json:"degraded,omitempty"`    // decided by the in-memory fallback
}

// RetryAfterSeconds rounds the wait until resetAt up to whole seconds, never
// below one.
func RetryAfterSeconds(now, resetAt time.Time) int {
	d := resetAt.Sub(now)
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		return 1
	}
	return secs
}

// AuthLockoutKey addresses the failure record of one e-mail from one client
// IP: "al:<email>:<ip>".
type AuthLockoutKey struct {
	Identifier string
	IP         string
}

// NewAuthLockoutKey lowercases the e-mail so case variants share a record.
func NewAuthLockoutKey(identifier, ip string) AuthLockoutKey {
	return AuthLockoutKey{
		Identifier: SanitizeKeySegment(strings.ToLower(strings.TrimSpace(identifier))),
		IP:         SanitizeKeySegment(ip),
	}
}

func (k AuthLockoutKey) String() string {
	return fmt.Sprintf("%s:%s:%s", KeyPrefixLockout, k.Identifier, k.IP)
}

// AuthLockout tracks failed sign-ins for one lockout key.
type AuthLockout struct {
	Identifier    string     `json:"identifier"`
	FailureCount  int        `json:"failure_count"`
	LockedUntil   *time.Time `json:"locked_until,omitempty"`
	LastFailureAt time.Time  `json:"last_failure_at"`
}

// IsLockedAt reports whether the lock is still in force at now.
func (l *AuthLockout) IsLockedAt(now time.Time) bool {
	return l.LockedUntil != nil && now.Before(*l.LockedUntil)
}

// RecordFailureAt counts a failure at now. A count whose last failure is
// older than window, or whose lock has expired, starts over.
func (l *AuthLockout) RecordFailureAt(now time.Time, window time.Duration) {
	expiredLock := l.LockedUntil != nil && !now.Before(*l.LockedUntil)
	stale := !l.LastFailureAt.IsZero() && now.Sub(l.LastFailureAt) > window
	if expiredLock || stale {
		l.FailureCount = 0
		l.LockedUntil = nil
	}
	l.FailureCount++
	l.LastFailureAt = now
}

// ApplyLock locks the record for d starting at now.
func (l *AuthLockout) ApplyLock(d time.Duration, now time.Time) {
	until := now.Add(d)
	l.LockedUntil = &until
}
