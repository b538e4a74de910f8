package middleware

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/WarikanHQ/warikan-backend/errors"
	"github.com/WarikanHQ/warikan-backend/services"
	"github.com/gin-gonic/gin"
)

// RateLimiter limits requests per client IP over a sliding window backed by
// Redis. On Redis failure the request proceeds so the API stays available
// when Redis is down.
func RateLimiter(limiter services.RateLimiterInterface, requestsPerMinute int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		key := fmt.Sprintf("ip:%s", ip)

		allowed, retryAfter, err := limiter.CheckLimit(c.Request.Context(), key, requestsPerMinute, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			if retryAfter <= 0 {
				retryAfter = window
			}
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", requestsPerMinute))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(retryAfter).Unix()))
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))

			_ = c.Error(apperrors.RateLimitExceeded("Too many requests. Please try again later.", int(retryAfter.Seconds())))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", requestsPerMinute))

		c.Next()
	}
}

// getClientIP extracts the real client IP from the request. Proxy headers win
// over RemoteAddr.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.ClientIP()
}
