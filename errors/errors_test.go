package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	withDetail := New(ValidationError, "Invalid plan", "name is required")
	assert.Equal(t, "VALIDATION_ERROR: Invalid plan (name is required)", withDetail.Error())

	withoutDetail := New(ValidationError, "Invalid plan", "")
	assert.Equal(t, "VALIDATION_ERROR: Invalid plan", withoutDetail.Error())
}

func TestWrap(t *testing.T) {
	raw := errors.New("connection refused")
	wrapped := Wrap(raw, DatabaseError, "query failed")

	assert.Equal(t, DatabaseError, wrapped.Type)
	assert.Equal(t, "connection refused", wrapped.Detail)
	assert.ErrorIs(t, wrapped, raw)

	assert.Nil(t, Wrap(nil, DatabaseError, "query failed"))
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{ValidationFailed("bad", "detail"), http.StatusBadRequest},
		{NotFound("plan", "abc"), http.StatusNotFound},
		{AuthenticationFailed("no token"), http.StatusUnauthorized},
		{Forbidden("nope", ""), http.StatusForbidden},
		{NewConflictError("dup", ""), http.StatusConflict},
		{RateLimitExceeded("slow down", 60), http.StatusTooManyRequests},
		{OverAllocated(12000, 10000), http.StatusUnprocessableEntity},
		{UnallocatedRemainder(600), http.StatusUnprocessableEntity},
		{InternalServerError("boom"), http.StatusInternalServerError},
		{NewDatabaseError(errors.New("down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.GetHTTPStatus(), tt.err.Error())
	}
}

func TestDomainErrors(t *testing.T) {
	over := OverAllocated(12000, 10000)
	assert.Equal(t, OverAllocatedError, over.Type)
	assert.Contains(t, over.Detail, "12000")
	assert.Contains(t, over.Detail, "10000")

	unalloc := UnallocatedRemainder(600)
	assert.Equal(t, UnallocatedRemainderType, unalloc.Type)
	assert.Contains(t, unalloc.Detail, "600")
}
