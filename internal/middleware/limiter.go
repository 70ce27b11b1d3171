package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Rate limit tiers
const (
	// login / register / logout
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// storefront pages that fan out into many calls
	limitFrontend = rate.Limit(20)
	burstFrontend = 40

	// trusted services presenting INTERNAL_SECRET_KEY
	limitInternal = rate.Limit(100)
	burstInternal = 200
)

const (
	visitorTTL      = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func newVisitorStore() *visitorStore {
	return &visitorStore{visitors: make(map[string]*visitor)}
}

// sweep drops idle visitors for as long as the process runs.
func (s *visitorStore) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for now := range ticker.C {
		s.cleanup(now)
	}
}

func (s *visitorStore) get(key string, r rate.Limit, b int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(r, b)}
		s.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (s *visitorStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, v := range s.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(s.visitors, key)
		}
	}
}

// RateLimit applies a token bucket per identity and tier. It runs before
// Protect, so a signed-in caller is identified by the user id in its session
// token; anyone else by X-Device-ID, then the client ip. The strict tier
// always keys on the ip so a rotated device id cannot reset a login quota.
func RateLimit(tokens *auth.TokenManager) gin.HandlerFunc {
	store := newVisitorStore()
	go store.sweep()
	return rateLimit(store, tokens)
}

func rateLimit(store *visitorStore, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, burst, tier := resolveRateTier(c.Request)

		// the same identity gets separate quotas per tier
		key := fmt.Sprintf("%s:%s", rateIdentity(c, tier, tokens), tier)

		if !store.get(key, limit, burst).Allow() {
			logger.FromCtx(c.Request.Context()).Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again later"})
			return
		}

		c.Next()
	}
}

func rateIdentity(c *gin.Context, tier string, tokens *auth.TokenManager) string {
	if tier == "strict" {
		return "ip:" + c.ClientIP()
	}

	if raw := auth.ExtractAccessToken(c.Request); raw != "" && tokens != nil {
		if claims, err := tokens.Parse(raw); err == nil && claims.UserID != "" {
			return "user:" + claims.UserID
		}
	}
	if deviceID := c.GetHeader("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	return "ip:" + c.ClientIP()
}

func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	internalKey := os.Getenv("INTERNAL_SECRET_KEY")
	if internalKey != "" && r.Header.Get("X-Service-Auth") == internalKey {
		return limitInternal, burstInternal, "internal"
	}

	if strings.HasPrefix(r.URL.Path, "/api/auth/") || r.Header.Get("X-Action") == "auth" {
		return limitStrict, burstStrict, "strict"
	}

	if r.Header.Get("X-Client-Type") == "frontend-heavy" {
		return limitFrontend, burstFrontend, "frontend"
	}

	return limitGeneral, burstGeneral, "general"
}
