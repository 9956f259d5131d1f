package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Лимитер IP, к которому не обращались дольше limiterIdleTTL, удаляется.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter хранит по лимитеру на IP клиента.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time

	perMinute int
	idleTTL   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func NewRateLimiter(perMinute int, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		perMinute: perMinute,
		idleTTL:   limiterIdleTTL,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *RateLimiter) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.idleTTL {
		s.sweep(now)
	}

	v, exists := s.visitors[ip]
	if !exists {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute),
		}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep вызывается под s.mu.
func (s *RateLimiter) sweep(now time.Time) {
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) >= s.idleTTL {
			delete(s.visitors, ip)
		}
	}
	s.lastSweep = now
}

// Middleware ограничивает число запросов с одного IP. perMinute <= 0 отключает лимит.
func (s *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.perMinute <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !s.getLimiter(ip).Allow() {
			s.logger.Warn("rate limit exceeded", zap.String("ip", ip))
			abortJSON(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded, try again later")
			return
		}
		c.Next()
	}
}
