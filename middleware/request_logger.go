package middleware

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// SessionHeader carries the client's advisory session id. It is logged, never trusted.
const SessionHeader = "X-Session-ID"

// RequestContext attaches a request-scoped logger with a fresh request id.
func RequestContext(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.New().String()
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			logger := base.With().
				Str("request_id", requestID).
				Str("session_id", c.Request().Header.Get(SessionHeader)).
				Logger()

			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
			return next(c)
		}
	}
}

// RequestLogger logs one line per request from the request-scoped logger.
func RequestLogger() echo.MiddlewareFunc {
	return echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logger := zerolog.Ctx(c.Request().Context())
			event := logger.Info()
			if v.Status >= 500 {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", loggedURI(c.Request().URL)).
				Int("status", v.Status).
				Int64("latency_us", v.Latency.Microseconds()).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// loggedURI is the request URI with the bearer token query parameter removed.
func loggedURI(u *url.URL) string {
	query := u.Query()
	if !query.Has(tokenQueryParam) {
		return u.RequestURI()
	}
	query.Del(tokenQueryParam)
	redacted := *u
	redacted.RawQuery = query.Encode()
	return redacted.RequestURI()
}
