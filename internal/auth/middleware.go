package auth

import (
	"strings"

	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtService *JWTService
}

func NewMiddleware(jwtService *JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

// RequireJWT rejects requests without a valid bearer token.
func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return apperrors.Unauthorized(msgMissingAuthorization)
			}

			claims, err := m.jwtService.Verify(token)
			if err != nil {
				return apperrors.Unauthorized(msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyActor, claims.Actor())
			return next(c)
		}
	}
}

// OptionalJWT resolves the actor when a valid token is present and lets
// anonymous requests through otherwise. Public reads use it to decide
// whether unapproved records are visible.
func (m *Middleware) OptionalJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractBearerToken(c); token != "" {
				if claims, err := m.jwtService.Verify(token); err == nil {
					c.Set(ContextKeyActor, claims.Actor())
				}
			}
			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

// GetActor returns the authenticated actor, or nil for anonymous requests.
func GetActor(c echo.Context) *user.Actor {
	actor, ok := c.Get(ContextKeyActor).(*user.Actor)
	if !ok {
		return nil
	}
	return actor
}
