package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"wildtrack-backend/internal/failure"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "validation", err: failure.Validation(nil), code: http.StatusBadRequest},
		{name: "bad request", err: failure.BadRequest("bad"), code: http.StatusBadRequest},
		{name: "unauthorized", err: failure.Unauthorized("no"), code: http.StatusUnauthorized},
		{name: "forbidden", err: failure.Forbidden("no"), code: http.StatusForbidden},
		{name: "not found", err: failure.NotFound("missing"), code: http.StatusNotFound},
		{name: "conflict", err: failure.Conflict("exists"), code: http.StatusBadRequest},
		{name: "internal", err: failure.Internal(""), code: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", failure.Forbidden("no")), code: http.StatusForbidden},
		{name: "plain error", err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestValidationCarriesFields(t *testing.T) {
	err := failure.Validation([]failure.FieldError{
		{Field: "guests", Message: "guests must be at most 20"},
		{Field: "date", Message: "date must be today or later"},
	})

	assert.Equal(t, "Validation error", err.Error())
	fields := failure.FieldErrors(err)
	assert.Len(t, fields, 2)
	assert.Equal(t, "guests", fields[0].Field)
	assert.Nil(t, failure.FieldErrors(errors.New("plain")))
}

func TestInternalDefaultMessage(t *testing.T) {
	assert.Equal(t, "Internal server error", failure.Internal("").Error())
	assert.Equal(t, "Server error fetching bookings", failure.Internal("Server error fetching bookings").Error())
}
