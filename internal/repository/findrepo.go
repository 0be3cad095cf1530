package repository

import (
	"context"

	"github.com/k4drv/foxhunt/internal/model"
)

// FindRepository records verified fox finds and serves find history.
type FindRepository interface {
	// Record verifies and stores a claim in a single transaction: the claim
	// must not duplicate an earlier find by the same user, the supplied
	// serial must match the fox's byte for byte, and the fox must not have
	// expired. On success it inserts the find (snapshotting points), bumps
	// the fox's total_finds, sets first_found_at on the 0->1 transition and
	// credits the user's totals. Failures map to errs.ErrDuplicateClaim,
	// errs.ErrSerialMismatch, errs.ErrFoxExpired or errs.ErrNotFound; any
	// storage failure rolls the whole unit back.
	Record(ctx context.Context, foxID, userID int64, claimedSerial string, points int) (*model.FoxFind, error)
	// Exists reports whether the user has already found the fox.
	Exists(ctx context.Context, foxID, userID int64) (bool, error)
	// ListFinders returns everyone who found the fox, earliest first.
	ListFinders(ctx context.Context, foxID int64) ([]model.Finder, error)
	// ListRecent returns the latest finds with fox and user details.
	ListRecent(ctx context.Context, limit int) ([]model.RecentFind, error)
	// ListByUser returns the user's finds with fox details, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.RecentFind, error)
}
