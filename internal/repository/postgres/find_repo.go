package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
)

// FindRepo implements FindRepository using PostgreSQL.
type FindRepo struct{ db *DB }

// NewFindRepo constructs a find repository.
func NewFindRepo(db *DB) *FindRepo { return &FindRepo{db: db} }

// Record verifies a claim and stores the find in a single transaction.
// The fox row is locked for the duration, so the duplicate pre-check, the
// insert and the counter updates cannot interleave with a concurrent claim
// for the same fox. The UNIQUE(fox_id, user_id) constraint remains the
// final arbiter: a violation on insert is reported as a duplicate claim.
func (r *FindRepo) Record(ctx context.Context, foxID, userID int64, claimedSerial string, points int) (find *model.FoxFind, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			find, err = nil, e
		}
	}()

	var serial string
	var expiresAt *time.Time
	const selFox = `SELECT serial_number, expires_at FROM foxes WHERE id=$1 FOR UPDATE`
	if err = tx.QueryRow(ctx, selFox, foxID).Scan(&serial, &expiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	// Early exit only; the unique constraint decides under races.
	var already bool
	const selDup = `SELECT EXISTS(SELECT 1 FROM fox_finds WHERE fox_id=$1 AND user_id=$2)`
	if err = tx.QueryRow(ctx, selDup, foxID, userID).Scan(&already); err != nil {
		return nil, err
	}
	if already {
		return nil, errs.ErrDuplicateClaim
	}

	// Case-sensitive, no normalization.
	if serial != claimedSerial {
		return nil, errs.ErrSerialMismatch
	}

	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, errs.ErrFoxExpired
	}

	f := &model.FoxFind{FoxID: foxID, UserID: userID, SerialNumber: claimedSerial, PointsAwarded: points}
	const ins = `
INSERT INTO fox_finds (fox_id, user_id, serial_number, points_awarded)
VALUES ($1,$2,$3,$4)
RETURNING id, found_at`
	if err = tx.QueryRow(ctx, ins, foxID, userID, claimedSerial, points).Scan(&f.ID, &f.FoundAt); err != nil {
		if isUniqueViolation(err) {
			err = errs.ErrDuplicateClaim
		}
		return nil, err
	}

	var totalFinds int
	const bump = `UPDATE foxes SET total_finds = total_finds + 1 WHERE id=$1 RETURNING total_finds`
	if err = tx.QueryRow(ctx, bump, foxID).Scan(&totalFinds); err != nil {
		return nil, err
	}
	// First find: decided by the post-increment counter, never overwritten.
	if totalFinds == 1 {
		const first = `UPDATE foxes SET first_found_at = now() WHERE id=$1 AND first_found_at IS NULL`
		if _, err = tx.Exec(ctx, first, foxID); err != nil {
			return nil, err
		}
	}

	const credit = `
UPDATE users SET total_points = total_points + $2, foxes_found = foxes_found + 1, last_activity = now()
WHERE id=$1`
	if _, err = tx.Exec(ctx, credit, userID, points); err != nil {
		return nil, err
	}
	return f, nil
}

// Exists reports whether the user has already found the fox.
func (r *FindRepo) Exists(ctx context.Context, foxID, userID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM fox_finds WHERE fox_id=$1 AND user_id=$2)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, q, foxID, userID).Scan(&exists)
	return exists, err
}

// ListFinders returns everyone who found the fox, earliest first.
func (r *FindRepo) ListFinders(ctx context.Context, foxID int64) ([]model.Finder, error) {
	const q = `
SELECT u.username, ff.found_at, ff.points_awarded
FROM fox_finds ff
JOIN users u ON ff.user_id = u.id
WHERE ff.fox_id=$1
ORDER BY ff.found_at`
	rows, err := r.db.Pool.Query(ctx, q, foxID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Finder
	for rows.Next() {
		var f model.Finder
		if err := rows.Scan(&f.Username, &f.FoundAt, &f.PointsAwarded); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

const recentFindColumns = `
SELECT ff.fox_id, f.grid_square, f.frequency, f.mode, f.rf_power,
       uf.username, COALESCE(uh.username, ''), ff.points_awarded, ff.found_at
FROM fox_finds ff
JOIN foxes f ON ff.fox_id = f.id
JOIN users uf ON ff.user_id = uf.id
LEFT JOIN users uh ON f.hidden_by = uh.id`

func scanRecentFinds(rows pgx.Rows) ([]model.RecentFind, error) {
	defer rows.Close()
	var out []model.RecentFind
	for rows.Next() {
		var rf model.RecentFind
		if err := rows.Scan(&rf.FoxID, &rf.GridSquare, &rf.Frequency, &rf.Mode, &rf.RFPower,
			&rf.FoundByUsername, &rf.HiddenByUsername, &rf.PointsAwarded, &rf.FoundAt); err != nil {
			return nil, err
		}
		out = append(out, rf)
	}
	return out, rows.Err()
}

// ListRecent returns the latest finds with fox and user details.
func (r *FindRepo) ListRecent(ctx context.Context, limit int) ([]model.RecentFind, error) {
	rows, err := r.db.Pool.Query(ctx, recentFindColumns+` ORDER BY ff.found_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanRecentFinds(rows)
}

// ListByUser returns the user's finds with fox details, newest first.
func (r *FindRepo) ListByUser(ctx context.Context, userID int64) ([]model.RecentFind, error) {
	rows, err := r.db.Pool.Query(ctx, recentFindColumns+` WHERE ff.user_id=$1 ORDER BY ff.found_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanRecentFinds(rows)
}
