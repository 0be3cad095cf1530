// Package service contains application services for accounts, foxes,
// find verification and leaderboard reads.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/k4drv/foxhunt/internal/crypto"
	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/limiter"
	"github.com/k4drv/foxhunt/internal/model"
	"github.com/k4drv/foxhunt/internal/repository"
	"github.com/k4drv/foxhunt/internal/validate"
)

// AuthService defines signup and login operations.
type AuthService interface {
	// Register creates a new user with secure password hashing. An empty
	// email gets a generated unique placeholder address.
	Register(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error)
	// Login applies IP-based rate limiting and authenticates the user.
	Login(ctx context.Context, username, password, ip string) (model.Tokens, *model.User, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register creates a new user record with a per-user salt.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error) {
	name, ok := validate.Username(username)
	if !ok {
		return nil, fmt.Errorf("%w: username must be at least 3 characters (letters, digits, underscores)", errs.ErrValidation)
	}
	if !validate.Password(password) {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", errs.ErrValidation)
	}

	if taken, err := s.users.UsernameExists(ctx, name); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("username: %w", errs.ErrAlreadyExists)
	}

	email = strings.TrimSpace(email)
	if email == "" {
		generated, err := s.generateEmail(ctx, name)
		if err != nil {
			return nil, err
		}
		email = generated
	} else if taken, err := s.users.EmailExists(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email: %w", errs.ErrAlreadyExists)
	}

	salt, err := pkgcrypto.NewSalt()
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username: name,
		Email:    email,
		PwdHash:  pkgcrypto.HashPassword([]byte(password), salt),
		SaltAuth: salt,
		IsAdmin:  isAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// generateEmail builds a unique placeholder address from the username.
func (s *AuthServiceImpl) generateEmail(ctx context.Context, username string) (string, error) {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, username)

	candidate := base + "@foxhunt.local"
	for i := 1; ; i++ {
		taken, err := s.users.EmailExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if i > 100 {
			id, err := uuid.NewV4()
			if err != nil {
				return "", err
			}
			return id.String() + "@foxhunt.local", nil
		}
		candidate = fmt.Sprintf("%s%d@foxhunt.local", base, i)
	}
}

// Login authenticates with per-IP attempt limiting backed by login_attempts.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password, ip string) (model.Tokens, *model.User, error) {
	allowed, _, err := s.lim.Allow(ctx, ip)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	if !allowed {
		return model.Tokens{}, nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return model.Tokens{}, nil, err
		}
		// Wrong username and wrong password are indistinguishable to the caller.
		if blocked, _, ferr := s.lim.Failure(ctx, ip); ferr == nil && blocked {
			return model.Tokens{}, nil, errs.ErrRateLimited
		}
		return model.Tokens{}, nil, errs.ErrUnauthorized
	}

	// Best-effort resets; a failure here must not fail the login.
	_ = s.lim.Success(ctx, ip)
	_ = s.users.TouchLastActivity(ctx, u.ID)

	tokens, err := s.issueAccessToken(u.ID)
	if err != nil {
		return model.Tokens{}, nil, err
	}
	return tokens, u, nil
}

// issueAccessToken creates a signed HS256 JWT for the given user.
func (s *AuthServiceImpl) issueAccessToken(userID int64) (model.Tokens, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	jti, err := uuid.NewV4()
	if err != nil {
		return model.Tokens{}, err
	}
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        jti.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: signed, ExpiresAt: exp}, nil
}
