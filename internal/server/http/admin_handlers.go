package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type adminCreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleAdminListUsers(c *gin.Context) {
	users, err := s.admin.ListUsers(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (s *Server) handleAdminCreateUser(c *gin.Context) {
	var req adminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	u, err := s.admin.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password, req.IsAdmin)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(u)})
}

func (s *Server) handleAdminDeleteUser(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.admin.DeleteUser(c.Request.Context(), id, c.GetInt64(ctxUserID)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) handleAdminResetPassword(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}
	if err := s.admin.ResetPassword(c.Request.Context(), id, req.Password); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

func (s *Server) handleAdminToggleAdmin(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	isAdmin, err := s.admin.ToggleAdmin(c.Request.Context(), id, c.GetInt64(ctxUserID))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_admin": isAdmin})
}

func (s *Server) handleAdminDeleteFox(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := s.admin.DeleteFox(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleAdminStats returns the site counters plus every fox with serials,
// the admin console's oversight view.
func (s *Server) handleAdminStats(c *gin.Context) {
	g, err := s.stats.GameStats(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	foxes, err := s.foxes.ListAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	out := make([]foxResponse, 0, len(foxes))
	for i := range foxes {
		out = append(out, toFoxResponse(&foxes[i], true))
	}
	c.JSON(http.StatusOK, gin.H{
		"stats": toGameStatsResponse(g),
		"foxes": out,
	})
}
