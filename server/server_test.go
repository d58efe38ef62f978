package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/chatrelay/internal/profile"
	teststore "github.com/hrygo/chatrelay/store/test"
)

func TestNewServerServesStatus(t *testing.T) {
	ctx := context.Background()
	st := teststore.NewTestingStore(ctx, t)

	s, err := NewServer(ctx, &profile.Profile{Mode: "dev", Port: 5000}, st)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.JSONEq(t, `{"Status": "API do Bot Chat está online"}`, rec.Body.String())
}

func TestNewServerRejectsEmptyChatBody(t *testing.T) {
	ctx := context.Background()
	st := teststore.NewTestingStore(ctx, t)

	s, err := NewServer(ctx, &profile.Profile{Mode: "prod", Port: 5000}, st)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Body = http.NoBody
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
