package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestIDTestRouter(captured *string) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		*captured = c.GetString(string(RequestIDKey))
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	r := requestIDTestRouter(&seen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	echoed := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, echoed)
	assert.Equal(t, echoed, seen, "context and response header must carry the same ID")

	_, err := uuid.Parse(echoed)
	assert.NoError(t, err, "generated request ID should be a UUID")
}

func TestRequestIDMiddleware_KeepsUpstreamID(t *testing.T) {
	var seen string
	r := requestIDTestRouter(&seen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "lb-assigned-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "lb-assigned-42", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "lb-assigned-42", seen)
}
