package repository

import (
	"context"

	"github.com/k4drv/foxhunt/internal/model"
)

// FoxRepository provides fox storage and the owner's hidden-fox counter.
type FoxRepository interface {
	// Create inserts a fox and increments the owner's foxes_hidden in the
	// same transaction. Fills in the generated ID and HiddenAt.
	Create(ctx context.Context, f *model.Fox) error
	// GetByID loads a fox by ID.
	GetByID(ctx context.Context, id int64) (*model.Fox, error)
	// ListActive returns foxes whose expires_at is unset or in the future,
	// newest first.
	ListActive(ctx context.Context) ([]model.Fox, error)
	// ListAll returns every fox, newest first.
	ListAll(ctx context.Context) ([]model.Fox, error)
	// ListByOwner returns foxes hidden by the given user, newest first.
	ListByOwner(ctx context.Context, userID int64) ([]model.Fox, error)
	// SerialExists reports whether any fox already uses the serial number.
	SerialExists(ctx context.Context, serial string) (bool, error)
	// Delete removes the fox atomically: all of its finds are deleted, the
	// fox row is removed, and the owner's foxes_hidden is decremented when
	// the fox still had an owner. All or nothing.
	Delete(ctx context.Context, id int64) error
}
