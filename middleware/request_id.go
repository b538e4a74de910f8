package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header proxies use to hand us a correlation ID and
// the one we echo back on every response.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags each request with a correlation ID. An ID supplied
// upstream is kept so logs can be joined across services; otherwise a fresh
// UUID is minted. The ID lands in the gin context under RequestIDKey and in
// the response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
