// middleware/jwt_middleware.go
package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/services"
)

const (
	claimsKey = "user"
	// tokenQueryParam carries the bearer token on websocket upgrades. It is never logged.
	tokenQueryParam = "token"
)

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	VerifyToken(token string) (*services.Claims, error)
}

// JWTMiddleware requires a valid bearer token and stores its claims on the context.
func JWTMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return jwtWithLookup(verifier, "header:"+echo.HeaderAuthorization)
}

// JWTSocketMiddleware also accepts ?token=, since browsers cannot set headers on a websocket upgrade.
func JWTSocketMiddleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return jwtWithLookup(verifier, "header:"+echo.HeaderAuthorization+",query:"+tokenQueryParam)
}

func jwtWithLookup(verifier TokenVerifier, lookup string) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		ContextKey:  claimsKey,
		TokenLookup: lookup,
		AuthScheme:  "Bearer",
		ParseTokenFunc: func(auth string, c echo.Context) (interface{}, error) {
			return verifier.VerifyToken(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims := GetClaims(c)
			if claims == nil {
				return
			}
			req := c.Request()
			logger := zerolog.Ctx(req.Context()).With().Str("user_id", claims.UserID).Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
		},
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			var appErr *apperror.Error
			if errors.As(err, &appErr) {
				return appErr
			}
			zerolog.Ctx(c.Request().Context()).Debug().Err(err).Msg("bearer token rejected")
			return apperror.Unauthorized("Not authorized to access this route")
		},
	})
}

// GetClaims returns the verified claims, or nil on routes without JWTMiddleware.
func GetClaims(c echo.Context) *services.Claims {
	claims, ok := c.Get(claimsKey).(*services.Claims)
	if !ok {
		return nil
	}
	return claims
}
