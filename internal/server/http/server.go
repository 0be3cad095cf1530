// Package httpserver exposes the foxhunt JSON API over gin.
package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/k4drv/foxhunt/internal/errs"
	"github.com/k4drv/foxhunt/internal/repository"
	"github.com/k4drv/foxhunt/internal/service"
)

// Claim throttle: hunters get a few tries, brute-forcing serials gets expensive.
const (
	claimRPS   = rate.Limit(1.0 / 3.0)
	claimBurst = 3
)

// Server wires services into HTTP handlers.
type Server struct {
	auth    service.AuthService
	foxes   service.FoxService
	finds   service.FindService
	stats   service.StatsService
	admin   service.AdminService
	users   repository.UserRepository
	signKey []byte
	log     *zap.Logger
}

// New constructs a Server with injected services.
func New(
	auth service.AuthService,
	foxes service.FoxService,
	finds service.FindService,
	stats service.StatsService,
	admin service.AdminService,
	users repository.UserRepository,
	signKey []byte,
	log *zap.Logger,
) *Server {
	return &Server{
		auth:    auth,
		foxes:   foxes,
		finds:   finds,
		stats:   stats,
		admin:   admin,
		users:   users,
		signKey: signKey,
		log:     log,
	}
}

// Router builds the gin engine with all middleware and routes.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logging(s.log))
	r.Use(Recover(s.log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	claimLimiter := NewIPRateLimiter(claimRPS, claimBurst)
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			claimLimiter.Sweep()
		}
	}()

	api := r.Group("/api")
	{
		api.GET("/healthz", s.handleHealthz)

		api.POST("/auth/signup", s.handleSignup)
		api.POST("/auth/login", s.handleLogin)

		api.GET("/foxes", s.handleListFoxes)
		api.GET("/foxes/:id", s.handleGetFox)
		api.GET("/foxes/:id/finders", s.handleListFinders)
		api.GET("/leaderboard", s.handleLeaderboard)
		api.GET("/finds/recent", s.handleRecentFinds)
		api.GET("/stats", s.handleGameStats)

		authed := api.Group("", s.Auth())
		{
			authed.GET("/me", s.handleMe)
			authed.POST("/foxes", s.handleHideFox)
			authed.DELETE("/foxes/:id", s.handleDeleteFox)
			authed.POST("/foxes/:id/claim", RateLimit(claimLimiter), s.handleClaim)
		}

		admin := api.Group("/admin", s.Auth(), s.RequireAdmin())
		{
			admin.GET("/users", s.handleAdminListUsers)
			admin.POST("/users", s.handleAdminCreateUser)
			admin.DELETE("/users/:id", s.handleAdminDeleteUser)
			admin.POST("/users/:id/password", s.handleAdminResetPassword)
			admin.POST("/users/:id/admin", s.handleAdminToggleAdmin)
			admin.DELETE("/foxes/:id", s.handleAdminDeleteFox)
			admin.GET("/stats", s.handleAdminStats)
		}
	}
	return r
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps service errors to HTTP responses.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrSerialMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "serial number does not match"})
	case errors.Is(err, errs.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrDuplicateClaim):
		c.JSON(http.StatusConflict, gin.H{"error": "you already found this fox"})
	case errors.Is(err, errs.ErrFoxExpired):
		c.JSON(http.StatusGone, gin.H{"error": "this fox has expired"})
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
	default:
		s.log.Error("internal error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("bad id")
	}
	return id, nil
}

// idParam parses the :id path segment; writes 400 and returns false on junk.
func (s *Server) idParam(c *gin.Context) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
