package service

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgcrypto "github.com/k4drv/foxhunt/internal/crypto"
	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
)

func newAdminService(users *fakeUsers, foxes *fakeFoxes) *AdminServiceImpl {
	auth := NewAuthService(users, []byte("k"), time.Minute, &fakeLimiter{allowOK: true})
	return NewAdminService(auth, users, foxes)
}

func TestAdmin_DeleteUser_SelfForbidden(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{
		"root":  {ID: 1, Username: "root", IsAdmin: true},
		"alice": {ID: 2, Username: "alice"},
	}}
	s := newAdminService(users, &fakeFoxes{})

	if err := s.DeleteUser(context.Background(), 1, 1); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("want ErrForbidden on self delete, got %v", err)
	}
	if len(users.deleteCalls) != 0 {
		t.Fatalf("repo touched on forbidden delete")
	}

	if err := s.DeleteUser(context.Background(), 2, 1); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := s.DeleteUser(context.Background(), 404, 1); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdmin_ToggleAdmin(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{
		"root":  {ID: 1, Username: "root", IsAdmin: true},
		"alice": {ID: 2, Username: "alice"},
	}}
	s := newAdminService(users, &fakeFoxes{})

	if _, err := s.ToggleAdmin(context.Background(), 1, 1); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("want ErrForbidden on self toggle, got %v", err)
	}

	got, err := s.ToggleAdmin(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("ToggleAdmin: %v", err)
	}
	if !got {
		t.Fatalf("want promotion to admin")
	}
	got, err = s.ToggleAdmin(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("ToggleAdmin back: %v", err)
	}
	if got {
		t.Fatalf("want demotion back")
	}

	if _, err := s.ToggleAdmin(context.Background(), 404, 1); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdmin_ResetPassword(t *testing.T) {
	t.Parallel()
	salt, _ := pkgcrypto.NewSalt()
	users := &fakeUsers{byName: map[string]*model.User{
		"alice": {ID: 2, Username: "alice", SaltAuth: salt, PwdHash: pkgcrypto.HashPassword([]byte("old-pass"), salt)},
	}}
	s := newAdminService(users, &fakeFoxes{})

	if err := s.ResetPassword(context.Background(), 2, "short"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}

	if err := s.ResetPassword(context.Background(), 2, "new-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	u := users.byName["alice"]
	if !pkgcrypto.VerifyPassword([]byte("new-pass"), u.SaltAuth, u.PwdHash) {
		t.Fatalf("new password does not verify")
	}
	if pkgcrypto.VerifyPassword([]byte("old-pass"), u.SaltAuth, u.PwdHash) {
		t.Fatalf("old password still verifies")
	}

	if err := s.ResetPassword(context.Background(), 404, "new-pass"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAdmin_CreateUser_SharesSignupRules(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{}}
	s := newAdminService(users, &fakeFoxes{})

	u, err := s.CreateUser(context.Background(), "operator", "", "secret1", true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !u.IsAdmin {
		t.Fatalf("admin flag not set")
	}
	if u.Email != "operator@foxhunt.local" {
		t.Fatalf("generated email = %q", u.Email)
	}

	if _, err := s.CreateUser(context.Background(), "op", "", "secret1", false); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestAdmin_DeleteFox_NoOwnershipCheck(t *testing.T) {
	t.Parallel()
	owner := int64(5)
	foxes := &fakeFoxes{byID: map[int64]*model.Fox{7: {ID: 7, HiddenBy: &owner}}}
	s := newAdminService(&fakeUsers{}, foxes)

	if err := s.DeleteFox(context.Background(), 7); err != nil {
		t.Fatalf("DeleteFox: %v", err)
	}
	if err := s.DeleteFox(context.Background(), 7); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
