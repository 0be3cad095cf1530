package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, username, email, pwd_hash, salt_auth, is_admin, total_points, foxes_hidden, foxes_found, created_at, last_activity`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PwdHash, &u.SaltAuth, &u.IsAdmin,
		&u.TotalPoints, &u.FoxesHidden, &u.FoxesFound, &u.CreatedAt, &u.LastActivity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and fills in the generated ID.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (username, email, pwd_hash, salt_auth, is_admin)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	err := r.db.Pool.QueryRow(ctx, q, u.Username, u.Email, u.PwdHash, u.SaltAuth, u.IsAdmin).
		Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

// GetByUsername selects a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

// UsernameExists reports whether a username is taken.
func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, q, username).Scan(&exists)
	return exists, err
}

// EmailExists reports whether an email is taken.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, q, email).Scan(&exists)
	return exists, err
}

// List returns all users, newest first.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PwdHash, &u.SaltAuth, &u.IsAdmin,
			&u.TotalPoints, &u.FoxesHidden, &u.FoxesFound, &u.CreatedAt, &u.LastActivity); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdatePassword replaces the stored hash and salt.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, pwdHash, saltAuth []byte) error {
	const q = `UPDATE users SET pwd_hash=$2, salt_auth=$3 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, pwdHash, saltAuth)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetAdmin sets the admin flag.
func (r *UserRepo) SetAdmin(ctx context.Context, id int64, isAdmin bool) error {
	const q = `UPDATE users SET is_admin=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, isAdmin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// TouchLastActivity stamps last_activity with the current time.
func (r *UserRepo) TouchLastActivity(ctx context.Context, id int64) error {
	const q = `UPDATE users SET last_activity=now() WHERE id=$1`
	_, err := r.db.Pool.Exec(ctx, q, id)
	return err
}

// Delete removes the user, their finds, and orphans their foxes in one
// transaction. Foxes the user hid survive with hidden_by set to NULL.
func (r *UserRepo) Delete(ctx context.Context, id int64) (err error) {
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

	if _, err = tx.Exec(ctx, `DELETE FROM fox_finds WHERE user_id=$1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `UPDATE foxes SET hidden_by=NULL WHERE hidden_by=$1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
