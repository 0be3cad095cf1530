package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
)

// FoxRepo implements FoxRepository using PostgreSQL.
type FoxRepo struct{ db *DB }

// NewFoxRepo constructs a fox repository.
func NewFoxRepo(db *DB) *FoxRepo { return &FoxRepo{db: db} }

const foxColumns = `id, grid_square, frequency, mode, rf_power, serial_number, notes, points, hidden_by, hidden_at, expires_at, first_found_at, total_finds`

func scanFox(row pgx.Row) (*model.Fox, error) {
	var f model.Fox
	err := row.Scan(&f.ID, &f.GridSquare, &f.Frequency, &f.Mode, &f.RFPower, &f.SerialNumber,
		&f.Notes, &f.Points, &f.HiddenBy, &f.HiddenAt, &f.ExpiresAt, &f.FirstFoundAt, &f.TotalFinds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func scanFoxes(rows pgx.Rows) ([]model.Fox, error) {
	defer rows.Close()
	var out []model.Fox
	for rows.Next() {
		var f model.Fox
		if err := rows.Scan(&f.ID, &f.GridSquare, &f.Frequency, &f.Mode, &f.RFPower, &f.SerialNumber,
			&f.Notes, &f.Points, &f.HiddenBy, &f.HiddenAt, &f.ExpiresAt, &f.FirstFoundAt, &f.TotalFinds); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Create inserts a fox and increments the owner's foxes_hidden atomically.
func (r *FoxRepo) Create(ctx context.Context, f *model.Fox) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const ins = `
INSERT INTO foxes (grid_square, frequency, mode, rf_power, serial_number, notes, points, hidden_by, expires_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING id, hidden_at`
	err = tx.QueryRow(ctx, ins, f.GridSquare, f.Frequency, f.Mode, f.RFPower, f.SerialNumber,
		f.Notes, f.Points, f.HiddenBy, f.ExpiresAt).Scan(&f.ID, &f.HiddenAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return err
	}

	if f.HiddenBy != nil {
		if _, err = tx.Exec(ctx, `UPDATE users SET foxes_hidden = foxes_hidden + 1 WHERE id=$1`, *f.HiddenBy); err != nil {
			return err
		}
	}
	return nil
}

// GetByID selects a fox by ID.
func (r *FoxRepo) GetByID(ctx context.Context, id int64) (*model.Fox, error) {
	return scanFox(r.db.Pool.QueryRow(ctx, `SELECT `+foxColumns+` FROM foxes WHERE id=$1`, id))
}

// ListActive returns foxes still accepting claims, newest first.
func (r *FoxRepo) ListActive(ctx context.Context) ([]model.Fox, error) {
	const q = `SELECT ` + foxColumns + ` FROM foxes WHERE expires_at IS NULL OR expires_at > now() ORDER BY hidden_at DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanFoxes(rows)
}

// ListAll returns every fox, newest first.
func (r *FoxRepo) ListAll(ctx context.Context) ([]model.Fox, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+foxColumns+` FROM foxes ORDER BY hidden_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanFoxes(rows)
}

// ListByOwner returns foxes hidden by the given user, newest first.
func (r *FoxRepo) ListByOwner(ctx context.Context, userID int64) ([]model.Fox, error) {
	const q = `SELECT ` + foxColumns + ` FROM foxes WHERE hidden_by=$1 ORDER BY hidden_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanFoxes(rows)
}

// SerialExists reports whether any fox already uses the serial number.
func (r *FoxRepo) SerialExists(ctx context.Context, serial string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM foxes WHERE serial_number=$1)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, q, serial).Scan(&exists)
	return exists, err
}

// Delete removes the fox and all of its finds in one transaction, and gives
// the owner's foxes_hidden counter back when the fox still had an owner.
func (r *FoxRepo) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	var hiddenBy *int64
	err = tx.QueryRow(ctx, `SELECT hidden_by FROM foxes WHERE id=$1 FOR UPDATE`, id).Scan(&hiddenBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM fox_finds WHERE fox_id=$1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM foxes WHERE id=$1`, id); err != nil {
		return err
	}
	if hiddenBy != nil {
		if _, err = tx.Exec(ctx, `UPDATE users SET foxes_hidden = foxes_hidden - 1 WHERE id=$1`, *hiddenBy); err != nil {
			return err
		}
	}
	return nil
}
