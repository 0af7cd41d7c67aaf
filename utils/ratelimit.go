package utils

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an IP's limiter survives without requests.
const limiterIdleTTL = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	perMin    int
	lastSweep time.Time
}

func newLimiterStore(perMin int) *limiterStore {
	return &limiterStore{limiters: make(map[string]*clientLimiter), perMin: perMin}
}

func (s *limiterStore) get(ip string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= limiterIdleTTL {
		for key, cl := range s.limiters {
			if now.Sub(cl.lastSeen) >= limiterIdleTTL {
				delete(s.limiters, key)
			}
		}
		s.lastSweep = now
	}

	cl, ok := s.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)}
		s.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware allows perMin requests per minute for each client IP.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		perMin = 200
	}
	store := newLimiterStore(perMin)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip, time.Now()).Allow() {
			GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
