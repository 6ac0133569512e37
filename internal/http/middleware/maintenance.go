package middleware

import (
	"context"
	"net/http"

	"library-cms/internal/auth"
	"library-cms/internal/domain/maintenance"
	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/labstack/echo/v4"
)

// MaintenanceStatus reads the shared maintenance flag.
type MaintenanceStatus interface {
	Status(ctx context.Context) (maintenance.State, error)
}

// Maintenance rejects mutating requests with 503 while maintenance mode is
// on. Reads, super admins and the exempt paths always pass. If the flag
// cannot be read the request is let through.
func Maintenance(status MaintenanceStatus, exemptPaths ...string) echo.MiddlewareFunc {
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isMutating(c.Request().Method) {
				return next(c)
			}
			if _, ok := exempt[c.Path()]; ok {
				return next(c)
			}
			if actor := auth.GetActor(c); actor != nil && actor.Role == user.RoleSuperAdmin {
				return next(c)
			}

			state, err := status.Status(c.Request().Context())
			if err != nil {
				c.Logger().Warn("maintenance_status_unavailable", "error", err.Error())
				return next(c)
			}
			if !state.Enabled {
				return next(c)
			}

			msg := state.Message
			if msg == "" {
				msg = maintenance.DefaultMessage
			}
			return apperrors.Maintenance(msg)
		}
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}
