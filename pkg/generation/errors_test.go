package generation_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rafael-ulguim1/askgemini/pkg/generation"
	"github.com/stretchr/testify/assert"
)

func TestTransientError_Error(t *testing.T) {
	err := &generation.TransientError{Cause: errors.New("connection reset")}
	assert.Equal(t, "transient service error: connection reset", err.Error())

	err = &generation.TransientError{
		RetryAfter: 2 * time.Second,
		Cause:      errors.New("status 429: quota"),
	}
	assert.Contains(t, err.Error(), "retry after 2s")
}

func TestTransientError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := fmt.Errorf("gemini: %w", &generation.TransientError{Cause: cause})

	assert.ErrorIs(t, err, cause)
	assert.True(t, generation.IsTransient(err))
}

func TestRejectionError_Error(t *testing.T) {
	err := &generation.RejectionError{
		StatusCode: 400,
		Code:       "INVALID_ARGUMENT",
		Message:    "API key not valid",
	}

	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "INVALID_ARGUMENT")
	assert.Contains(t, err.Error(), "API key not valid")
	assert.False(t, generation.IsTransient(err))
}

func TestResponseError_Error(t *testing.T) {
	err := &generation.ResponseError{Reason: "empty candidates in response"}
	assert.Equal(t, "unexpected response: empty candidates in response", err.Error())

	err = &generation.ResponseError{Reason: "decode response", Body: "unexpected EOF"}
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestIsTransient(t *testing.T) {
	assert.True(t, generation.IsTransient(&generation.TransientError{Cause: errors.New("x")}))
	assert.False(t, generation.IsTransient(generation.ErrEmptyPrompt))
	assert.False(t, generation.IsTransient(&generation.RejectionError{StatusCode: 401}))
	assert.False(t, generation.IsTransient(&generation.ResponseError{Reason: "x"}))
	assert.False(t, generation.IsTransient(nil))
}
