package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{NewValidationError("bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{NewPermissionError("no"), ErrorTypePermission, http.StatusForbidden},
		{NewInvalidTransitionError("backwards"), ErrorTypeInvalidTransition, http.StatusUnprocessableEntity},
		{NewConflictError("lost the race"), ErrorTypeConflict, http.StatusConflict},
		{NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.wantType), func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "not_found: Issue not found", NewNotFoundError("Issue not found").Error())
	assert.Equal(t, "validation_error: Invalid district (Atlantis)",
		NewValidationError("Invalid district", "Atlantis").Error())
}

func TestIsMatchesByType(t *testing.T) {
	err := fmt.Errorf("transition failed: %w", NewConflictError("lost the race"))

	assert.True(t, errors.Is(err, NewConflictError("any message")))
	assert.False(t, errors.Is(err, NewNotFoundError("any message")))
	assert.True(t, IsType(err, ErrorTypeConflict))
	assert.False(t, IsType(err, ErrorTypeValidation))
}

func TestAsAppError(t *testing.T) {
	appErr := NewPermissionError("out of coverage")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got := AsAppError(wrapped)
	assert.Equal(t, ErrorTypePermission, got.Type)

	plain := AsAppError(errors.New("disk on fire"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrorTypeInternal, plain.Type)
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
}
