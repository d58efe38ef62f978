package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "[NOT_FOUND] conversation not found", NotFound("conversation not found").Error())

	err := Upstream("completion failed", fmt.Errorf("quota exceeded"))
	assert.Equal(t, "[UPSTREAM] completion failed: quota exceeded", err.Error())
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("chat: %w", Configuration("missing key"))

	assert.True(t, IsCode(err, ErrCodeConfiguration))
	assert.False(t, IsCode(err, ErrCodeUpstream))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrCodeConfiguration))
}

func TestGetCodeFromError(t *testing.T) {
	assert.Equal(t, ErrCodeStore, GetCodeFromError(Store("write failed", nil), ErrCodeInternal))
	assert.Equal(t, ErrCodeInternal, GetCodeFromError(fmt.Errorf("boom"), ErrCodeInternal))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeInvalidArgument, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeUpstream, http.StatusBadGateway},
		{ErrCodeConfiguration, http.StatusInternalServerError},
		{ErrCodeStore, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.code))
		})
	}
}

func TestWithContext(t *testing.T) {
	err := NotFound("missing").WithContext("conversation_id", "abc")
	assert.Equal(t, "abc", err.Context["conversation_id"])
}
