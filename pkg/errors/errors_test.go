package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggerError_Error(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewAPIError("boom", 502, nil)
		assert.Equal(t, "boom", err.Error())
	})

	t.Run("message with cause", func(t *testing.T) {
		err := NewAPIError("boom", 0, nil).WithCause(io.EOF)
		assert.Equal(t, "boom: EOF", err.Error())
		assert.True(t, stderrors.Is(err, io.EOF))
	})
}

func TestAPIError_Unwraps(t *testing.T) {
	err := NewAPIError("request failed", 0, map[string]any{"url": "http://x"}).WithCause(io.ErrUnexpectedEOF)

	var apiErr *APIError
	assert.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, CodeAPIError, apiErr.Code)
	assert.True(t, stderrors.Is(err, io.ErrUnexpectedEOF))
}

func TestAuthError(t *testing.T) {
	err := NewAuthError("login rejected", 401, nil)

	assert.Equal(t, CodeAuth, err.Code)
	assert.Equal(t, 401, err.StatusCode)
	assert.Equal(t, 401, err.Context["upstream_status"])
	assert.Equal(t, "login rejected", err.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("MEZINK_EMAIL is required", "MEZINK_EMAIL", "")

	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, "MEZINK_EMAIL", err.Field)
	assert.Equal(t, CodeValidation, err.Code)
}

func TestServiceError(t *testing.T) {
	err := NewServiceError("classification failed", "gemini", "generate", io.EOF)

	assert.Equal(t, "gemini", err.Context["service"])
	assert.Equal(t, "generate", err.Context["operation"])
	assert.True(t, stderrors.Is(err, io.EOF))
}
