package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/service"
)

type hideFoxRequest struct {
	GridSquare  string `json:"grid_square" binding:"required"`
	Frequency   string `json:"frequency"`
	Mode        string `json:"mode"`
	RFPower     string `json:"rf_power"`
	Notes       string `json:"notes"`
	Points      int    `json:"points"`
	ExpiryDays  int    `json:"expiry_days"`
	ExpiryHours int    `json:"expiry_hours"`
}

type claimRequest struct {
	SerialNumber string `json:"serial_number" binding:"required"`
}

// viewer returns the requesting user's identity when a valid token is
// attached. Public routes use it to decide serial visibility.
func (s *Server) viewer(c *gin.Context) (int64, bool) {
	if id := c.GetInt64(ctxUserID); id != 0 {
		return id, c.GetBool(ctxIsAdmin)
	}
	id, err := s.userIDFromHeader(c.GetHeader("Authorization"))
	if err != nil {
		return 0, false
	}
	return id, false
}

func (s *Server) handleListFoxes(c *gin.Context) {
	foxes, err := s.foxes.ListActive(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	viewerID, viewerIsAdmin := s.viewer(c)
	c.JSON(http.StatusOK, gin.H{"foxes": toFoxResponses(foxes, viewerID, viewerIsAdmin)})
}

func (s *Server) handleGetFox(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	f, err := s.foxes.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	viewerID, viewerIsAdmin := s.viewer(c)
	reveal := viewerIsAdmin || (f.HiddenBy != nil && *f.HiddenBy == viewerID)
	resp := gin.H{"fox": toFoxResponse(f, reveal)}
	if viewerID != 0 {
		found, err := s.finds.HasFound(c.Request.Context(), id, viewerID)
		if err != nil {
			s.writeError(c, err)
			return
		}
		resp["already_found"] = found
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHideFox(c *gin.Context) {
	var req hideFoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grid_square is required"})
		return
	}

	f, err := s.foxes.Hide(c.Request.Context(), c.GetInt64(ctxUserID), service.HideFoxInput{
		GridSquare:  req.GridSquare,
		Frequency:   req.Frequency,
		Mode:        req.Mode,
		RFPower:     req.RFPower,
		Notes:       req.Notes,
		Points:      req.Points,
		ExpiryDays:  req.ExpiryDays,
		ExpiryHours: req.ExpiryHours,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	// The hider gets the serial back once; it is theirs to hand out on paper.
	c.JSON(http.StatusCreated, gin.H{"fox": toFoxResponse(f, true)})
}

func (s *Server) handleDeleteFox(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	err := s.foxes.Delete(c.Request.Context(), id, c.GetInt64(ctxUserID), false)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) handleClaim(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serial_number is required"})
		return
	}

	find, err := s.finds.Claim(c.Request.Context(), id, c.GetInt64(ctxUserID), req.SerialNumber)
	if err != nil {
		if errors.Is(err, errs.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "serial_number is required"})
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"find": findResponse{
			ID:            find.ID,
			FoxID:         find.FoxID,
			PointsAwarded: find.PointsAwarded,
			FoundAt:       find.FoundAt,
		},
	})
}

func (s *Server) handleListFinders(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	finders, err := s.finds.Finders(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]finderResponse, 0, len(finders))
	for _, f := range finders {
		out = append(out, finderResponse{
			Username:      f.Username,
			FoundAt:       f.FoundAt,
			PointsAwarded: f.PointsAwarded,
		})
	}
	c.JSON(http.StatusOK, gin.H{"finders": out})
}
