package logger

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LogHTTPError logs an HTTP request error with context from a gin.Context.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	requestID, _ := c.Get("request_id")

	log.Errorw(message,
		"error", err,
		"status_code", statusCode,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_ip", c.ClientIP(),
		"request_id", requestID,
		"headers", filterSensitiveHeaders(c.Request.Header),
	)
}

// filterSensitiveHeaders strips auth material from headers before logging.
func filterSensitiveHeaders(headers http.Header) map[string]string {
	filtered := make(map[string]string, len(headers))
	for k, v := range headers {
		lower := strings.ToLower(k)
		if lower == "authorization" || lower == "cookie" || lower == "x-api-key" {
			filtered[k] = "[REDACTED]"
			continue
		}
		filtered[k] = strings.Join(v, ", ")
	}
	return filtered
}
