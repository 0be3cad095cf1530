package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
)

func TestUserRepo_Create_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	u := &model.User{Username: "alice", Email: "alice@foxhunt.local", PwdHash: []byte("h"), SaltAuth: []byte("s")}

	mock.ExpectQuery(`INSERT INTO users \(username, email, pwd_hash, salt_auth, is_admin\)`).
		WithArgs("alice", "alice@foxhunt.local", []byte("h"), []byte("s"), false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	require.NoError(t, r.Create(context.Background(), u))
	require.Equal(t, int64(1), u.ID)
}

func TestUserRepo_Create_DuplicateUsername(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	u := &model.User{Username: "alice", Email: "a@foxhunt.local", PwdHash: []byte("h"), SaltAuth: []byte("s")}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "a@foxhunt.local", []byte("h"), []byte("s"), false).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	require.ErrorIs(t, r.Create(context.Background(), u), errs.ErrAlreadyExists)
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE username=\$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_Delete_CascadesAndOrphans(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM fox_finds WHERE user_id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(`UPDATE foxes SET hidden_by=NULL WHERE hidden_by=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, r.Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Delete_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM fox_finds WHERE user_id=\$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`UPDATE foxes SET hidden_by=NULL WHERE hidden_by=\$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	require.ErrorIs(t, r.Delete(context.Background(), 404), errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdatePassword_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)

	mock.ExpectExec(`UPDATE users SET pwd_hash=\$2, salt_auth=\$3 WHERE id=\$1`).
		WithArgs(int64(404), []byte("h"), []byte("s")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.ErrorIs(t, r.UpdatePassword(context.Background(), 404, []byte("h"), []byte("s")), errs.ErrNotFound)
}
