// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user may not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrValidation indicates malformed input rejected before any storage access.
	ErrValidation = errors.New("validation failed")
)

// Claim outcomes. Each maps to a distinct user-facing message.
var (
	// ErrDuplicateClaim indicates the user has already found this fox.
	ErrDuplicateClaim = errors.New("fox already found by user")

	// ErrSerialMismatch indicates the supplied serial number does not match the fox.
	ErrSerialMismatch = errors.New("serial number mismatch")

	// ErrFoxExpired indicates the fox no longer accepts new claims.
	ErrFoxExpired = errors.New("fox expired")

	// ErrRecordingFailed masks storage failures during find recording.
	// Detail is logged server-side only.
	ErrRecordingFailed = errors.New("recording failed")

	// ErrSerialExhausted indicates serial number generation ran out of attempts.
	ErrSerialExhausted = errors.New("serial number space exhausted")
)
