package middleware

import (
	"github.com/WarikanHQ/warikan-backend/config"
	"github.com/gin-gonic/gin"
)

// Baseline hardening headers set on every response regardless of environment.
var securityHeaders = map[string]string{
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"X-XSS-Protection":       "1; mode=block",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
}

// SecurityHeadersMiddleware applies the hardening header set. HSTS is added
// only in production; pinning it during local HTTP development would poison
// the browser cache for localhost.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	hsts := cfg.IsProduction()
	return func(c *gin.Context) {
		for name, value := range securityHeaders {
			c.Header(name, value)
		}
		if hsts {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
