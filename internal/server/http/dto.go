package httpserver

import (
	"time"

	"github.com/k4drv/foxhunt/internal/model"
	"github.com/k4drv/foxhunt/internal/service"
)

type userResponse struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	IsAdmin      bool       `json:"is_admin"`
	TotalPoints  int        `json:"total_points"`
	FoxesHidden  int        `json:"foxes_hidden"`
	FoxesFound   int        `json:"foxes_found"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		IsAdmin:      u.IsAdmin,
		TotalPoints:  u.TotalPoints,
		FoxesHidden:  u.FoxesHidden,
		FoxesFound:   u.FoxesFound,
		CreatedAt:    u.CreatedAt,
		LastActivity: u.LastActivity,
	}
}

// foxResponse hides SerialNumber unless the viewer owns the fox or is an
// admin; the serial is the verification secret.
type foxResponse struct {
	ID           int64      `json:"id"`
	GridSquare   string     `json:"grid_square"`
	Frequency    string     `json:"frequency"`
	Mode         string     `json:"mode"`
	RFPower      string     `json:"rf_power"`
	SerialNumber string     `json:"serial_number,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Points       int        `json:"points"`
	HiddenBy     *int64     `json:"hidden_by,omitempty"`
	HiddenAt     time.Time  `json:"hidden_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	FirstFoundAt *time.Time `json:"first_found_at,omitempty"`
	TotalFinds   int        `json:"total_finds"`
	Status       string     `json:"status"`
}

func toFoxResponse(f *model.Fox, revealSerial bool) foxResponse {
	resp := foxResponse{
		ID:           f.ID,
		GridSquare:   f.GridSquare,
		Frequency:    f.Frequency,
		Mode:         f.Mode,
		RFPower:      f.RFPower,
		Notes:        f.Notes,
		Points:       f.Points,
		HiddenBy:     f.HiddenBy,
		HiddenAt:     f.HiddenAt,
		ExpiresAt:    f.ExpiresAt,
		FirstFoundAt: f.FirstFoundAt,
		TotalFinds:   f.TotalFinds,
		Status:       string(service.Status(f)),
	}
	if revealSerial {
		resp.SerialNumber = f.SerialNumber
	}
	return resp
}

func toFoxResponses(foxes []model.Fox, viewerID int64, viewerIsAdmin bool) []foxResponse {
	out := make([]foxResponse, 0, len(foxes))
	for i := range foxes {
		f := &foxes[i]
		reveal := viewerIsAdmin || (f.HiddenBy != nil && *f.HiddenBy == viewerID)
		out = append(out, toFoxResponse(f, reveal))
	}
	return out
}

type findResponse struct {
	ID            int64     `json:"id"`
	FoxID         int64     `json:"fox_id"`
	PointsAwarded int       `json:"points_awarded"`
	FoundAt       time.Time `json:"found_at"`
}

type finderResponse struct {
	Username      string    `json:"username"`
	FoundAt       time.Time `json:"found_at"`
	PointsAwarded int       `json:"points_awarded"`
}

type recentFindResponse struct {
	FoxID         int64     `json:"fox_id"`
	GridSquare    string    `json:"grid_square"`
	Frequency     string    `json:"frequency"`
	Mode          string    `json:"mode"`
	RFPower       string    `json:"rf_power"`
	FoundBy       string    `json:"found_by"`
	HiddenBy      string    `json:"hidden_by,omitempty"`
	PointsAwarded int       `json:"points_awarded"`
	FoundAt       time.Time `json:"found_at"`
}

func toRecentFindResponses(finds []model.RecentFind) []recentFindResponse {
	out := make([]recentFindResponse, 0, len(finds))
	for _, f := range finds {
		out = append(out, recentFindResponse{
			FoxID:         f.FoxID,
			GridSquare:    f.GridSquare,
			Frequency:     f.Frequency,
			Mode:          f.Mode,
			RFPower:       f.RFPower,
			FoundBy:       f.FoundByUsername,
			HiddenBy:      f.HiddenByUsername,
			PointsAwarded: f.PointsAwarded,
			FoundAt:       f.FoundAt,
		})
	}
	return out
}

type leaderboardEntryResponse struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	TotalPoints int    `json:"total_points"`
	FoxesHidden int    `json:"foxes_hidden"`
	FoxesFound  int    `json:"foxes_found"`
}

type gameStatsResponse struct {
	TotalUsers         int    `json:"total_users"`
	TotalFoxes         int    `json:"total_foxes"`
	ActiveFoxes        int    `json:"active_foxes"`
	TotalFinds         int    `json:"total_finds"`
	TotalPointsAwarded int    `json:"total_points_awarded"`
	TopHunter          string `json:"top_hunter,omitempty"`
	TopScore           int    `json:"top_score"`
}

func toGameStatsResponse(g *model.GameStats) gameStatsResponse {
	return gameStatsResponse{
		TotalUsers:         g.TotalUsers,
		TotalFoxes:         g.TotalFoxes,
		ActiveFoxes:        g.ActiveFoxes,
		TotalFinds:         g.TotalFinds,
		TotalPointsAwarded: g.TotalPointsAwarded,
		TopHunter:          g.TopHunter,
		TopScore:           g.TopScore,
	}
}
