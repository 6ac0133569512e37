package auth

import (
	"library-cms/internal/domain/user"
	"library-cms/internal/policy"

	"github.com/labstack/echo/v4"
)

// RoleMiddleware gates whole route groups on the actor's role before any
// handler runs. Ownership checks stay in the services.
type RoleMiddleware struct {
	policy *policy.Policy
}

func NewRoleMiddleware(pol *policy.Policy) *RoleMiddleware {
	return &RoleMiddleware{policy: pol}
}

// RequireRole admits actors holding one of roles.
func (m *RoleMiddleware) RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.policy.RequireRole(GetActor(c), roles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireActor admits library admins bound to a library and super admins.
func (m *RoleMiddleware) RequireActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.policy.RequireActor(GetActor(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}
