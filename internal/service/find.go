package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
	"github.com/k4drv/foxhunt/internal/repository"
)

// FindService is the find verification and scoring engine.
type FindService interface {
	// Claim verifies a serial number against the fox and, on success,
	// atomically records the find and credits the user. The point value is
	// taken from the fox record at call time, never from the caller.
	// Failures: errs.ErrNotFound, errs.ErrDuplicateClaim,
	// errs.ErrSerialMismatch, errs.ErrFoxExpired, errs.ErrRecordingFailed.
	Claim(ctx context.Context, foxID, userID int64, claimedSerial string) (*model.FoxFind, error)
	// HasFound reports whether the user already found the fox.
	HasFound(ctx context.Context, foxID, userID int64) (bool, error)
	// Finders returns everyone who found the fox, earliest first.
	Finders(ctx context.Context, foxID int64) ([]model.Finder, error)
}

type FindServiceImpl struct {
	foxes repository.FoxRepository
	finds repository.FindRepository
	log   *zap.Logger
}

// NewFindService constructs FindService.
func NewFindService(foxes repository.FoxRepository, finds repository.FindRepository, log *zap.Logger) *FindServiceImpl {
	return &FindServiceImpl{foxes: foxes, finds: finds, log: log}
}

// Claim runs the full verification and scoring flow for one claim.
func (s *FindServiceImpl) Claim(ctx context.Context, foxID, userID int64, claimedSerial string) (*model.FoxFind, error) {
	claimedSerial = strings.TrimSpace(claimedSerial)
	if claimedSerial == "" {
		return nil, errs.ErrValidation
	}

	fox, err := s.foxes.GetByID(ctx, foxID)
	if err != nil {
		return nil, err
	}

	find, err := s.finds.Record(ctx, foxID, userID, claimedSerial, fox.Points)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDuplicateClaim),
			errors.Is(err, errs.ErrSerialMismatch),
			errors.Is(err, errs.ErrFoxExpired),
			errors.Is(err, errs.ErrNotFound):
			return nil, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			// Storage failure: everything rolled back, detail stays server-side.
			s.log.Error("record fox find",
				zap.Int64("fox_id", foxID),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return nil, errs.ErrRecordingFailed
		}
	}
	return find, nil
}

// HasFound reports whether the user already found the fox.
func (s *FindServiceImpl) HasFound(ctx context.Context, foxID, userID int64) (bool, error) {
	return s.finds.Exists(ctx, foxID, userID)
}

// Finders returns everyone who found the fox.
func (s *FindServiceImpl) Finders(ctx context.Context, foxID int64) ([]model.Finder, error) {
	return s.finds.ListFinders(ctx, foxID)
}
