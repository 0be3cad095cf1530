package limiter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PG is a PostgreSQL-backed limiter over the login_attempts table.
// A client is locked out once maxFails failures accumulate, until lockout
// has elapsed since the last attempt. A successful login clears the row.
type PG struct {
	pool     pgxQuerier
	maxFails int
	lockout  time.Duration
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPG constructs a PostgreSQL-backed limiter. Any querier works, including
// *pgxpool.Pool.
func NewPG(q pgxQuerier, maxFails int, lockout time.Duration) *PG {
	return &PG{pool: q, maxFails: maxFails, lockout: lockout}
}

// Allow reports whether login is currently allowed and a retry-after duration.
func (l *PG) Allow(ctx context.Context, ip string) (bool, time.Duration, error) {
	const q = `SELECT attempts, last_attempt FROM login_attempts WHERE ip_address=$1`
	var attempts int
	var lastAttempt time.Time
	err := l.pool.QueryRow(ctx, q, ip).Scan(&attempts, &lastAttempt)
	switch err {
	case nil:
		if attempts >= l.maxFails {
			if remaining := l.lockout - time.Since(lastAttempt); remaining > 0 {
				return false, remaining, nil
			}
		}
		return true, 0, nil
	case pgx.ErrNoRows:
		return true, 0, nil
	default:
		return false, 0, err
	}
}

// Success clears the attempt counter for the IP.
func (l *PG) Success(ctx context.Context, ip string) error {
	const q = `DELETE FROM login_attempts WHERE ip_address=$1`
	_, err := l.pool.Exec(ctx, q, ip)
	return err
}

// Failure records a failed attempt; reports whether the threshold is reached.
func (l *PG) Failure(ctx context.Context, ip string) (bool, time.Duration, error) {
	const q = `
INSERT INTO login_attempts (ip_address, attempts, last_attempt)
VALUES ($1, 1, now())
ON CONFLICT (ip_address) DO UPDATE
SET attempts = login_attempts.attempts + 1, last_attempt = now()
RETURNING attempts`
	var attempts int
	if err := l.pool.QueryRow(ctx, q, ip).Scan(&attempts); err != nil {
		return false, 0, err
	}
	if attempts >= l.maxFails {
		return true, l.lockout, nil
	}
	return false, 0, nil
}
