package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
)

// StatsRepo implements StatsRepository using PostgreSQL.
type StatsRepo struct{ db *DB }

// NewStatsRepo constructs a stats repository.
func NewStatsRepo(db *DB) *StatsRepo { return &StatsRepo{db: db} }

// Leaderboard returns leaderboard_view ordered by rank.
func (r *StatsRepo) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	const q = `
SELECT id, username, total_points, foxes_hidden, foxes_found, rank_position
FROM leaderboard_view
ORDER BY rank_position`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.TotalPoints, &e.FoxesHidden, &e.FoxesFound, &e.RankPosition); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UserRank returns the user's rank position.
func (r *StatsRepo) UserRank(ctx context.Context, userID int64) (int, error) {
	const q = `SELECT rank_position FROM leaderboard_view WHERE id=$1`
	var rank int
	if err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&rank); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return rank, nil
}

// GameStats returns site-wide counters in a single round trip.
func (r *StatsRepo) GameStats(ctx context.Context) (*model.GameStats, error) {
	const q = `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM foxes),
    (SELECT COUNT(*) FROM foxes WHERE expires_at IS NULL OR expires_at > now()),
    (SELECT COUNT(*) FROM fox_finds),
    (SELECT COALESCE(SUM(total_points), 0) FROM users),
    (SELECT COALESCE((SELECT username FROM users ORDER BY total_points DESC LIMIT 1), '')),
    (SELECT COALESCE((SELECT total_points FROM users ORDER BY total_points DESC LIMIT 1), 0))`
	var s model.GameStats
	err := r.db.Pool.QueryRow(ctx, q).Scan(&s.TotalUsers, &s.TotalFoxes, &s.ActiveFoxes,
		&s.TotalFinds, &s.TotalPointsAwarded, &s.TopHunter, &s.TopScore)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
