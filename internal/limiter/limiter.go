// Package limiter defines interfaces and implementations for login rate limiting.
package limiter

import (
	"context"
	"time"
)

// Limiter controls login attempts and temporary lockouts, keyed by client IP.
type Limiter interface {
	// Allow reports whether login is currently allowed and optional retry-after.
	Allow(ctx context.Context, ip string) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, ip string) error
	// Failure records a failed attempt; reports whether the lockout threshold is reached.
	Failure(ctx context.Context, ip string) (bool, time.Duration, error)
}
