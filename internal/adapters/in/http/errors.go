package http

import (
	"errors"
	"net/http"

	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps engine error kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return writeError(ctx, status, "Internal server error")
	}
	return writeError(ctx, status, err.Error())
}

func (s *Server) badRequest(ctx echo.Context, err error) error {
	return writeError(ctx, http.StatusBadRequest, err.Error())
}

func (s *Server) invalidBody(ctx echo.Context) error {
	return writeError(ctx, http.StatusBadRequest, "Invalid request body")
}

func writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}
