package repository

import (
	"context"

	"github.com/k4drv/foxhunt/internal/model"
)

// StatsRepository serves read-only aggregations (leaderboard, game stats).
type StatsRepository interface {
	// Leaderboard returns leaderboard_view ordered by rank.
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	// UserRank returns the user's rank position, or errs.ErrNotFound.
	UserRank(ctx context.Context, userID int64) (int, error)
	// GameStats returns site-wide counters.
	GameStats(ctx context.Context) (*model.GameStats, error)
}
