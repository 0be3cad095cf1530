package service

import (
	"context"
	"errors"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
	"github.com/k4drv/foxhunt/internal/repository"
)

// RecentFindsLimit is the size of the public activity feed.
const RecentFindsLimit = 10

// Profile aggregates everything shown on a user's own page.
type Profile struct {
	User   *model.User
	Rank   int // 0 when the user has no leaderboard row yet
	Hidden []model.Fox
	Found  []model.RecentFind
}

// StatsService serves leaderboard and activity reads.
type StatsService interface {
	// Leaderboard returns the ranked standings.
	Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error)
	// RecentFinds returns the latest finds for the activity feed.
	RecentFinds(ctx context.Context) ([]model.RecentFind, error)
	// GameStats returns site-wide counters.
	GameStats(ctx context.Context) (*model.GameStats, error)
	// Profile loads a user together with their rank, hidden foxes and finds.
	Profile(ctx context.Context, userID int64) (*Profile, error)
}

type StatsServiceImpl struct {
	users repository.UserRepository
	foxes repository.FoxRepository
	finds repository.FindRepository
	stats repository.StatsRepository
}

// NewStatsService constructs StatsService.
func NewStatsService(users repository.UserRepository, foxes repository.FoxRepository, finds repository.FindRepository, stats repository.StatsRepository) *StatsServiceImpl {
	return &StatsServiceImpl{users: users, foxes: foxes, finds: finds, stats: stats}
}

// Leaderboard returns the ranked standings.
func (s *StatsServiceImpl) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.stats.Leaderboard(ctx)
}

// RecentFinds returns the latest finds.
func (s *StatsServiceImpl) RecentFinds(ctx context.Context) ([]model.RecentFind, error) {
	return s.finds.ListRecent(ctx, RecentFindsLimit)
}

// GameStats returns site-wide counters.
func (s *StatsServiceImpl) GameStats(ctx context.Context) (*model.GameStats, error) {
	return s.stats.GameStats(ctx)
}

// Profile loads the user's page data.
func (s *StatsServiceImpl) Profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rank, err := s.stats.UserRank(ctx, userID)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		rank = 0
	}

	hidden, err := s.foxes.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	found, err := s.finds.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: u, Rank: rank, Hidden: hidden, Found: found}, nil
}
