package service

import (
	"context"
	"errors"
	"testing"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/model"
	"github.com/k4drv/foxhunt/internal/repository"
)

type fakeStats struct {
	board   []model.LeaderboardEntry
	rank    int
	rankErr error
	game    *model.GameStats
}

var _ repository.StatsRepository = (*fakeStats)(nil)

func (f *fakeStats) Leaderboard(context.Context) ([]model.LeaderboardEntry, error) {
	return f.board, nil
}
func (f *fakeStats) UserRank(context.Context, int64) (int, error) {
	if f.rankErr != nil {
		return 0, f.rankErr
	}
	return f.rank, nil
}
func (f *fakeStats) GameStats(context.Context) (*model.GameStats, error) {
	return f.game, nil
}

func TestStats_Profile(t *testing.T) {
	t.Parallel()
	owner := int64(1)
	users := &fakeUsers{byName: map[string]*model.User{
		"alice": {ID: 1, Username: "alice", TotalPoints: 30},
	}}
	foxes := &fakeFoxes{byID: map[int64]*model.Fox{
		7: {ID: 7, HiddenBy: &owner},
	}}
	finds := &fakeFinds{recent: []model.RecentFind{{FoxID: 9, FoundByUsername: "alice"}}}
	s := NewStatsService(users, foxes, finds, &fakeStats{rank: 3})

	p, err := s.Profile(context.Background(), 1)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.User.Username != "alice" || p.Rank != 3 {
		t.Fatalf("profile head: %+v rank=%d", p.User, p.Rank)
	}
	if len(p.Hidden) != 1 || len(p.Found) != 1 {
		t.Fatalf("hidden=%d found=%d", len(p.Hidden), len(p.Found))
	}
}

func TestStats_Profile_NoRankYet(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{
		"bob": {ID: 2, Username: "bob"},
	}}
	s := NewStatsService(users, &fakeFoxes{}, &fakeFinds{}, &fakeStats{rankErr: errs.ErrNotFound})

	p, err := s.Profile(context.Background(), 2)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.Rank != 0 {
		t.Fatalf("rank = %d, want 0 when unranked", p.Rank)
	}
}

func TestStats_Profile_Errors(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byName: map[string]*model.User{
		"bob": {ID: 2, Username: "bob"},
	}}

	s := NewStatsService(users, &fakeFoxes{}, &fakeFinds{}, &fakeStats{})
	if _, err := s.Profile(context.Background(), 404); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for missing user, got %v", err)
	}

	s = NewStatsService(users, &fakeFoxes{}, &fakeFinds{}, &fakeStats{rankErr: errors.New("boom")})
	if _, err := s.Profile(context.Background(), 2); err == nil {
		t.Fatalf("want propagated rank error")
	}
}

func TestStats_RecentFinds_Limited(t *testing.T) {
	t.Parallel()
	recent := make([]model.RecentFind, 25)
	s := NewStatsService(&fakeUsers{}, &fakeFoxes{}, &fakeFinds{recent: recent}, &fakeStats{})

	got, err := s.RecentFinds(context.Background())
	if err != nil {
		t.Fatalf("RecentFinds: %v", err)
	}
	if len(got) != RecentFindsLimit {
		t.Fatalf("len = %d, want %d", len(got), RecentFindsLimit)
	}
}
