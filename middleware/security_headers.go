// middleware/security_headers.go
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

type SecurityConfig struct {
	// ImageHosts are extra origins images may be loaded from, e.g. the object storage host.
	ImageHosts []string
	HSTS       bool
}

func SecurityHeadersWithConfig(config SecurityConfig) echo.MiddlewareFunc {
	csp := buildCSP(config)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Content-Security-Policy", csp)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			if config.HSTS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			h.Del("Server")
			h.Del("X-Powered-By")

			return next(c)
		}
	}
}

func buildCSP(config SecurityConfig) string {
	img := "img-src 'self' data: blob:"
	if len(config.ImageHosts) > 0 {
		img += " " + strings.Join(config.ImageHosts, " ")
	}
	csp := []string{
		"default-src 'self'",
		img,
		"style-src 'self' 'unsafe-inline'",
		"script-src 'self'",
		"frame-ancestors 'none'",
	}
	return strings.Join(csp, "; ")
}
