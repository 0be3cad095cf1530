package service

import (
	"context"
	"fmt"

	pkgcrypto "github.com/k4drv/foxhunt/internal/crypto"
	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
	"github.com/k4drv/foxhunt/internal/repository"
	"github.com/k4drv/foxhunt/internal/validate"
)

// AdminService covers the management operations exposed to administrators.
// Actor IDs are passed explicitly so self-targeting rules can be enforced
// without any ambient session state.
type AdminService interface {
	// ListUsers returns all accounts, newest first.
	ListUsers(ctx context.Context) ([]model.User, error)
	// CreateUser creates an account on behalf of an admin.
	CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error)
	// DeleteUser removes an account. Admins cannot delete themselves.
	DeleteUser(ctx context.Context, targetID, actorID int64) error
	// ResetPassword replaces the target account's password.
	ResetPassword(ctx context.Context, targetID int64, newPassword string) error
	// ToggleAdmin flips the admin flag. Admins cannot demote themselves.
	ToggleAdmin(ctx context.Context, targetID, actorID int64) (bool, error)
	// DeleteFox removes any fox regardless of ownership.
	DeleteFox(ctx context.Context, foxID int64) error
}

type AdminServiceImpl struct {
	auth  AuthService
	users repository.UserRepository
	foxes repository.FoxRepository
}

// NewAdminService constructs AdminService.
func NewAdminService(auth AuthService, users repository.UserRepository, foxes repository.FoxRepository) *AdminServiceImpl {
	return &AdminServiceImpl{auth: auth, users: users, foxes: foxes}
}

// ListUsers returns all accounts.
func (s *AdminServiceImpl) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// CreateUser shares the signup path so validation and hashing stay in one place.
func (s *AdminServiceImpl) CreateUser(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error) {
	return s.auth.Register(ctx, username, email, password, isAdmin)
}

// DeleteUser removes the account and everything hanging off it.
func (s *AdminServiceImpl) DeleteUser(ctx context.Context, targetID, actorID int64) error {
	if targetID == actorID {
		return fmt.Errorf("%w: cannot delete own account", errs.ErrForbidden)
	}
	return s.users.Delete(ctx, targetID)
}

// ResetPassword rehashes with a fresh salt.
func (s *AdminServiceImpl) ResetPassword(ctx context.Context, targetID int64, newPassword string) error {
	if !validate.Password(newPassword) {
		return fmt.Errorf("%w: password must be at least 6 characters", errs.ErrValidation)
	}
	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, targetID, pkgcrypto.HashPassword([]byte(newPassword), salt), salt)
}

// ToggleAdmin flips the admin flag and returns the new value.
func (s *AdminServiceImpl) ToggleAdmin(ctx context.Context, targetID, actorID int64) (bool, error) {
	if targetID == actorID {
		return false, fmt.Errorf("%w: cannot change own admin status", errs.ErrForbidden)
	}
	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}
	next := !u.IsAdmin
	if err := s.users.SetAdmin(ctx, targetID, next); err != nil {
		return false, err
	}
	return next, nil
}

// DeleteFox removes any fox without an ownership check.
func (s *AdminServiceImpl) DeleteFox(ctx context.Context, foxID int64) error {
	return s.foxes.Delete(ctx, foxID)
}
