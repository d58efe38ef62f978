package v1

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/chatrelay/server/internal/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// writeError maps a service error to its HTTP status and a {"detail": ...} body.
func writeError(c echo.Context, err error) error {
	code := apperrors.GetCodeFromError(err, apperrors.ErrCodeInternal)
	status := apperrors.HTTPStatus(code)

	detail := "Erro interno do servidor"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && code != apperrors.ErrCodeInternal && code != apperrors.ErrCodeStore {
		detail = appErr.Message
	}
	if status >= 500 {
		slog.Error("request failed", "path", c.Path(), "status", status, "error", err)
	}
	return c.JSON(status, ErrorResponse{Detail: detail})
}
