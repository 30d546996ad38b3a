package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit enforces a per-IP fixed-window limit backed by Redis so all
// API instances share one budget. A nil client disables limiting, and
// Redis errors fail open: the catalog stays reachable when Redis is not.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 || window <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		key := bucketKey(ip, time.Now(), window)

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", "ip", ip, "error", err)
			c.Next()
			return
		}
		if count == 1 {
			// first hit in this window starts the countdown
			rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			logger.Warn("rate limit exceeded", "ip", ip, "path", c.Request.URL.Path)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// bucketKey derives the fixed-window key. The bucket index is computed
// in nanoseconds so sub-second windows work too.
func bucketKey(ip string, now time.Time, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%d", ip, now.UnixNano()/int64(window))
}
