// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/k4drv/foxhunt/internal/model"
)

// UserRepository provides account storage and the admin-facing user listing.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByUsername loads a user by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// UsernameExists reports whether a username is taken.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// EmailExists reports whether an email is taken.
	EmailExists(ctx context.Context, email string) (bool, error)
	// List returns all users, newest first.
	List(ctx context.Context) ([]model.User, error)
	// UpdatePassword replaces the stored hash and salt.
	UpdatePassword(ctx context.Context, id int64, pwdHash, saltAuth []byte) error
	// SetAdmin sets the admin flag.
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
	// TouchLastActivity stamps last_activity with the current time.
	TouchLastActivity(ctx context.Context, id int64) error
	// Delete removes the user atomically: the user's finds are deleted,
	// foxes they hid are orphaned (hidden_by set to NULL), then the row
	// itself is removed. All or nothing.
	Delete(ctx context.Context, id int64) error
}
