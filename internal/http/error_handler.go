package http

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "library-cms/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	msgInternalServerError = "Internal server error"
	unknownRequestID       = "unknown"
)

var statusBySentinel = []struct {
	err     error
	code    int
	message string
}{
	{apperrors.ErrValidation, http.StatusBadRequest, "Validation error"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, "Bad request"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{apperrors.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, "Resource already exists"},
	{apperrors.ErrMaintenance, http.StatusServiceUnavailable, "Service under maintenance"},
	{apperrors.ErrUpstream, http.StatusInternalServerError, msgInternalServerError},
}

// CustomHTTPErrorHandler maps sentinel errors to status codes and writes
// {"error", "request_id"}. Causes of server-side failures are logged, never sent.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := resolveError(err)

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = unknownRequestID
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error("internal_server_error",
			"request_id", requestID,
			"status", code,
			"error", err.Error())
	} else {
		c.Logger().Warn("client_error",
			"request_id", requestID,
			"status", code,
			"error", err.Error())
	}

	if err := c.JSON(code, map[string]any{
		"error":      message,
		"request_id": requestID,
	}); err != nil {
		c.Logger().Error(err)
	}
}

func resolveError(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, msgInternalServerError
		}
		return httpErr.Code, fmt.Sprintf("%v", httpErr.Message)
	}

	code := http.StatusInternalServerError
	message := msgInternalServerError
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			code, message = s.code, s.message
			break
		}
	}

	// Upstream messages are generic ("Failed to upload image") and safe to show.
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		if code < http.StatusInternalServerError || errors.Is(err, apperrors.ErrUpstream) || code == http.StatusServiceUnavailable {
			message = appErr.Message
		}
	}
	return code, message
}
