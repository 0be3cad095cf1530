package httpserver

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	ctxUserID  = "fh.userID"
	ctxIsAdmin = "fh.isAdmin"
	ctxReqID   = "fh.reqID"
)

// RequestID tags every request with an ID, honoring an incoming X-Request-ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			v4, err := uuid.NewV4()
			if err == nil {
				id = v4.String()
			}
		}
		c.Set(ctxReqID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logging returns a middleware for structured request logging.
func Logging(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// metadata only, no payloads
		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("req_id", c.GetString(ctxReqID)),
		)
	}
}

// Recover returns a middleware that recovers from handler panics.
func Recover(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}

// Auth verifies the Bearer token and stores the user ID in the context.
func (s *Server) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.userIDFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// RequireAdmin loads the account fresh so a revoked admin flag takes effect
// immediately, not at next login.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.users.GetByID(c.Request.Context(), c.GetInt64(ctxUserID))
		if err != nil || !u.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set(ctxIsAdmin, true)
		c.Next()
	}
}

// userIDFromHeader extracts "Bearer <JWT>", verifies HS256 and returns sub.
func (s *Server) userIDFromHeader(header string) (int64, error) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return 0, errors.New("no bearer token")
	}
	tok := strings.TrimSpace(header[7:])

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return 0, errors.New("invalid token")
	}

	v := jwt.NewValidator(jwt.WithLeeway(30 * time.Second))
	if err := v.Validate(&claims); err != nil {
		return 0, errors.New("token expired or not valid yet")
	}

	id, err := parseID(claims.Subject)
	if err != nil {
		return 0, errors.New("bad subject")
	}
	return id, nil
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewIPRateLimiter constructs an IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		rps:      r,
		burst:    b,
	}
}

func (rl *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	lim, ok := rl.visitors[ip]
	if !ok {
		lim = rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[ip] = lim
	}
	return lim
}

// Sweep drops buckets that have refilled, bounding the map between bursts.
func (rl *IPRateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, lim := range rl.visitors {
		if lim.Tokens() >= float64(rl.burst) {
			delete(rl.visitors, ip)
		}
	}
}

// RateLimit throttles requests per client IP.
func RateLimit(rl *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
