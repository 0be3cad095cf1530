package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleLeaderboard(c *gin.Context) {
	board, err := s.stats.Leaderboard(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]leaderboardEntryResponse, 0, len(board))
	for _, e := range board {
		out = append(out, leaderboardEntryResponse{
			Rank:        e.RankPosition,
			UserID:      e.UserID,
			Username:    e.Username,
			TotalPoints: e.TotalPoints,
			FoxesHidden: e.FoxesHidden,
			FoxesFound:  e.FoxesFound,
		})
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": out})
}

func (s *Server) handleRecentFinds(c *gin.Context) {
	finds, err := s.stats.RecentFinds(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finds": toRecentFindResponses(finds)})
}

func (s *Server) handleGameStats(c *gin.Context) {
	g, err := s.stats.GameStats(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": toGameStatsResponse(g)})
}
