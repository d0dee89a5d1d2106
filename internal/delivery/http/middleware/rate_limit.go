package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/apperror"
	"portfolio-contact-api/pkg/metrics"
	"portfolio-contact-api/pkg/security"
)

// RateLimitConfig holds configuration for the per-client API throttle.
// It guards every route against floods; the contact form has its own,
// much stricter, submission limiter.
type RateLimitConfig struct {
	RPS             float64
	Burst           int
	CleanupInterval time.Duration
	MaxAge          time.Duration
	// Key extractor (default: gin's ClientIP)
	KeyFunc func(*gin.Context) string
}

// DefaultRateLimitConfig returns sensible defaults for API rate limiting
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RPS:             5,
		Burst:           20,
		CleanupInterval: 5 * time.Minute,
		MaxAge:          10 * time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// APIRateLimiter keeps one token bucket per client key.
type APIRateLimiter struct {
	config   RateLimitConfig
	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewAPIRateLimiter creates a throttle; call StartCleanup to evict idle clients.
func NewAPIRateLimiter(config RateLimitConfig) *APIRateLimiter {
	def := DefaultRateLimitConfig()
	if config.RPS <= 0 {
		config.RPS = def.RPS
	}
	if config.Burst <= 0 {
		config.Burst = def.Burst
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = def.CleanupInterval
	}
	if config.MaxAge <= 0 {
		config.MaxAge = def.MaxAge
	}
	if config.KeyFunc == nil {
		config.KeyFunc = def.KeyFunc
	}
	return &APIRateLimiter{
		config:   config,
		visitors: make(map[string]*visitor),
	}
}

func (l *APIRateLimiter) allow(key string) bool {
	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

// StartCleanup evicts clients idle for longer than MaxAge until ctx is done.
func (l *APIRateLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.config.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.mu.Lock()
				for key, v := range l.visitors {
					if now.Sub(v.lastSeen) > l.config.MaxAge {
						delete(l.visitors, key)
					}
				}
				l.mu.Unlock()
			}
		}
	}()
}

// Middleware returns the gin handler enforcing the throttle.
func (l *APIRateLimiter) Middleware() gin.HandlerFunc {
	limit := strconv.FormatFloat(l.config.RPS, 'f', -1, 64)

	return func(c *gin.Context) {
		key := l.config.KeyFunc(c)

		if !l.allow(key) {
			metrics.RateLimitRequestsTotal.WithLabelValues("limited").Inc()
			logRateLimitTriggered(c, key)

			c.Header("X-RateLimit-Limit", limit)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			appErr := apperror.TooManyRequests("Rate limit exceeded. Please try again later.")
			response.Error(c, appErr.Code, appErr.Message, nil)
			c.Abort()
			return
		}

		metrics.RateLimitRequestsTotal.WithLabelValues("allowed").Inc()
		c.Header("X-RateLimit-Limit", limit)
		c.Next()
	}
}

// logRateLimitTriggered logs when rate limiting is triggered
func logRateLimitTriggered(c *gin.Context, key string) {
	requestID, _ := c.Get(string(domain.KeyRequestID))
	reqIDStr, _ := requestID.(string)
	security.DefaultLogger().LogRateLimitTriggered(
		c.Request.Context(),
		key,
		c.GetHeader("User-Agent"),
		reqIDStr,
		c.FullPath(),
	)
}
