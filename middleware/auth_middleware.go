// middleware/auth_middleware.go
package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/services"
)

const userKey = "authUser"

// Authorizer loads the account behind a token and checks its role.
type Authorizer interface {
	Authorize(ctx context.Context, claims *services.Claims, required models.Role) (*models.User, error)
}

// RequireRole must run after JWTMiddleware. The role is read from the stored
// account, so demoted or deleted users lose access before their token expires.
func RequireRole(authz Authorizer, role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return apperror.Unauthorized("Not authorized to access this route")
			}

			user, err := authz.Authorize(c.Request().Context(), claims, role)
			if err != nil {
				zerolog.Ctx(c.Request().Context()).Warn().
					Str("path", c.Request().URL.Path).
					Str("required_role", string(role)).
					Msg("access denied")
				return err
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// GetUser returns the account loaded by RequireRole.
func GetUser(c echo.Context) *models.User {
	user, _ := c.Get(userKey).(*models.User)
	return user
}
