package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"hope4ever-backend/pkg/redis"
	"hope4ever-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter is satisfied by *redis.Client.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

var _ RateLimiter = (*redis.Client)(nil)

// RateLimit allows at most limit requests per client IP in each window.
// A nil limiter or a limiter error lets the request through.
func RateLimit(limiter RateLimiter, scope string, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := scope + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", retryAfter(window))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

func retryAfter(window time.Duration) string {
	return strconv.Itoa(int(window.Round(time.Second) / time.Second))
}
