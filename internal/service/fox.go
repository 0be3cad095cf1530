package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
	"github.com/k4drv/foxhunt/internal/repository"
	"github.com/k4drv/foxhunt/internal/validate"
)

// Game defaults applied when the hide form leaves a field empty.
const (
	DefaultPoints    = 10
	DefaultRFPower   = "5W"
	DefaultFrequency = "146.520"
	DefaultMode      = "FM"

	DefaultExpiryDays = 7
	MaxExpiryDays     = 30

	maxSerialAttempts = 10
)

// HideFoxInput is the raw form input for hiding a new fox.
// Zero values fall back to the game defaults.
type HideFoxInput struct {
	GridSquare  string
	Frequency   string
	Mode        string
	RFPower     string
	Notes       string
	Points      int
	ExpiryDays  int
	ExpiryHours int
}

// FoxService manages the fox lifecycle: hiding, listing, deletion.
type FoxService interface {
	// Hide validates input, assigns a unique serial number and expiration,
	// and stores the fox owned by userID.
	Hide(ctx context.Context, userID int64, in HideFoxInput) (*model.Fox, error)
	// Get loads one fox.
	Get(ctx context.Context, id int64) (*model.Fox, error)
	// ListActive returns foxes still accepting claims.
	ListActive(ctx context.Context) ([]model.Fox, error)
	// ListAll returns every fox (admin view).
	ListAll(ctx context.Context) ([]model.Fox, error)
	// ListByOwner returns foxes hidden by the user.
	ListByOwner(ctx context.Context, userID int64) ([]model.Fox, error)
	// Delete removes a fox and its finds. Only the owner or an admin may
	// delete; errs.ErrForbidden otherwise.
	Delete(ctx context.Context, foxID, actorID int64, actorIsAdmin bool) error
}

type FoxServiceImpl struct {
	foxes repository.FoxRepository
}

// NewFoxService constructs FoxService.
func NewFoxService(foxes repository.FoxRepository) *FoxServiceImpl {
	return &FoxServiceImpl{foxes: foxes}
}

// Hide validates the input and stores a new fox.
func (s *FoxServiceImpl) Hide(ctx context.Context, userID int64, in HideFoxInput) (*model.Fox, error) {
	if in.Frequency == "" {
		in.Frequency = DefaultFrequency
	}
	if in.Mode == "" {
		in.Mode = DefaultMode
	}
	if in.RFPower == "" {
		in.RFPower = DefaultRFPower
	}
	if in.Points <= 0 {
		in.Points = DefaultPoints
	}

	grid, ok := validate.GridSquare(in.GridSquare)
	if !ok {
		return nil, fmt.Errorf("%w: invalid grid square", errs.ErrValidation)
	}
	freq, ok := validate.Frequency(in.Frequency)
	if !ok {
		return nil, fmt.Errorf("%w: invalid frequency", errs.ErrValidation)
	}
	mode, ok := validate.Mode(in.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: invalid mode", errs.ErrValidation)
	}
	power, ok := validate.RFPower(in.RFPower)
	if !ok {
		return nil, fmt.Errorf("%w: invalid RF power", errs.ErrValidation)
	}
	if in.ExpiryDays < 0 || in.ExpiryHours < 0 {
		return nil, fmt.Errorf("%w: negative expiration offset", errs.ErrValidation)
	}
	if in.ExpiryDays == 0 && in.ExpiryHours == 0 {
		in.ExpiryDays = DefaultExpiryDays
	}

	serial, err := s.generateSerialNumber(ctx)
	if err != nil {
		return nil, err
	}

	expiresAt := CalculateExpiration(time.Now(), in.ExpiryDays, in.ExpiryHours)
	f := &model.Fox{
		GridSquare:   grid,
		Frequency:    freq,
		Mode:         mode,
		RFPower:      power,
		SerialNumber: serial,
		Notes:        validate.Notes(in.Notes),
		Points:       in.Points,
		HiddenBy:     &userID,
		ExpiresAt:    &expiresAt,
	}
	if err := s.foxes.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// generateSerialNumber draws 8-digit serials until an unused one is found.
// Attempts are bounded; exhaustion is reported instead of recursing forever.
func (s *FoxServiceImpl) generateSerialNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxSerialAttempts; attempt++ {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return "", err
		}
		serial := fmt.Sprintf("%08d", binary.BigEndian.Uint64(b[:])%100_000_000)

		exists, err := s.foxes.SerialExists(ctx, serial)
		if err != nil {
			return "", err
		}
		if !exists {
			return serial, nil
		}
	}
	return "", errs.ErrSerialExhausted
}

// Get loads one fox.
func (s *FoxServiceImpl) Get(ctx context.Context, id int64) (*model.Fox, error) {
	return s.foxes.GetByID(ctx, id)
}

// ListActive returns foxes still accepting claims.
func (s *FoxServiceImpl) ListActive(ctx context.Context) ([]model.Fox, error) {
	return s.foxes.ListActive(ctx)
}

// ListAll returns every fox.
func (s *FoxServiceImpl) ListAll(ctx context.Context) ([]model.Fox, error) {
	return s.foxes.ListAll(ctx)
}

// ListByOwner returns foxes hidden by the user.
func (s *FoxServiceImpl) ListByOwner(ctx context.Context, userID int64) ([]model.Fox, error) {
	return s.foxes.ListByOwner(ctx, userID)
}

// Delete removes a fox after an ownership check.
func (s *FoxServiceImpl) Delete(ctx context.Context, foxID, actorID int64, actorIsAdmin bool) error {
	f, err := s.foxes.GetByID(ctx, foxID)
	if err != nil {
		return err
	}
	owned := f.HiddenBy != nil && *f.HiddenBy == actorID
	if !owned && !actorIsAdmin {
		return errs.ErrForbidden
	}
	return s.foxes.Delete(ctx, foxID)
}

// CalculateExpiration returns now plus the requested offset, capped at
// MaxExpiryDays from now.
func CalculateExpiration(now time.Time, days, hours int) time.Time {
	exp := now.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
	if max := now.AddDate(0, 0, MaxExpiryDays); exp.After(max) {
		return max
	}
	return exp
}

// IsFoxExpired reports whether a fox should be treated as expired for
// display. Found foxes are never shown as expired; expiry still blocks new
// claims independently.
func IsFoxExpired(expiresAt *time.Time, isFound bool) bool {
	if expiresAt == nil || isFound {
		return false
	}
	return time.Now().After(*expiresAt)
}

// Status returns the display state of a fox.
func Status(f *model.Fox) model.FoxStatus {
	if f.TotalFinds > 0 {
		return model.FoxStatusFound
	}
	if IsFoxExpired(f.ExpiresAt, false) {
		return model.FoxStatusExpired
	}
	return model.FoxStatusActive
}
