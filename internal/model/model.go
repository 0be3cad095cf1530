// Package model defines domain entities used by services and repositories.
package model

import "time"

// User represents a player account. Counters are denormalized and maintained
// inside the same transactions that create finds and foxes.
type User struct {
	ID           int64
	Username     string // unique
	Email        string // unique
	PwdHash      []byte // Argon2id(password, SaltAuth)
	SaltAuth     []byte // per-user auth salt
	IsAdmin      bool
	TotalPoints  int // monotonically non-decreasing via finds
	FoxesHidden  int
	FoxesFound   int
	CreatedAt    time.Time
	LastActivity *time.Time
}

// Fox is a simulated hidden radio transmitter players attempt to locate.
// SerialNumber is the verification secret; it never leaves the server except
// to the fox's owner.
type Fox struct {
	ID           int64
	GridSquare   string // 6-char location code
	Frequency    string // e.g. "146.520"
	Mode         string // e.g. "FM", "SSB"
	RFPower      string // e.g. "5W"
	SerialNumber string // unique 8-digit string
	Notes        string // <= 25 chars
	Points       int
	HiddenBy     *int64 // nil after owner deletion (orphaned, not deleted)
	HiddenAt     time.Time
	ExpiresAt    *time.Time
	FirstFoundAt *time.Time // set once, on the first find
	TotalFinds   int
}

// FoxFind records one user successfully verifying one fox.
// Immutable once created; at most one row per (fox, user).
type FoxFind struct {
	ID            int64
	FoxID         int64
	UserID        int64
	SerialNumber  string // serial supplied by the claimant
	PointsAwarded int    // snapshot of fox.Points at claim time
	FoundAt       time.Time
}

// FoxStatus is the display state of a fox.
type FoxStatus string

const (
	FoxStatusActive  FoxStatus = "active"
	FoxStatusFound   FoxStatus = "found"
	FoxStatusExpired FoxStatus = "expired"
)

// Finder is a fox find joined with the finder's username.
type Finder struct {
	Username      string
	FoundAt       time.Time
	PointsAwarded int
}

// RecentFind is a find joined with fox details and both usernames for
// the public activity feed.
type RecentFind struct {
	FoxID            int64
	GridSquare       string
	Frequency        string
	Mode             string
	RFPower          string
	FoundByUsername  string
	HiddenByUsername string // empty if the hider was deleted
	PointsAwarded    int
	FoundAt          time.Time
}

// LeaderboardEntry is one row of leaderboard_view.
type LeaderboardEntry struct {
	UserID       int64
	Username     string
	TotalPoints  int
	FoxesHidden  int
	FoxesFound   int
	RankPosition int
}

// GameStats aggregates site-wide counters for the stats endpoints.
type GameStats struct {
	TotalUsers         int
	TotalFoxes         int
	ActiveFoxes        int
	TotalFinds         int
	TotalPointsAwarded int
	TopHunter          string
	TopScore           int
}

// Tokens collects an issued access token and its expiry.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time
}
