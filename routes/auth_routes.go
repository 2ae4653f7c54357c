package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/controllers"
	"github.com/diamondgarment/backend/middleware"
)

const (
	loginAttemptsPerWindow = 10
	loginWindow            = 15 * time.Minute
)

// RegisterAuthRoutes sets up login, session and admin bootstrap routes
func RegisterAuthRoutes(api *echo.Group, deps Dependencies, bootstrap bool) {
	authController := controllers.NewAuthController(deps.Auth)
	bearer := middleware.JWTMiddleware(deps.Auth)

	auth := api.Group("/auth")
	auth.POST("/login", authController.Login, middleware.LoginThrottle(deps.Redis, loginAttemptsPerWindow, loginWindow))
	auth.GET("/me", authController.Me, bearer)
	auth.Match([]string{http.MethodGet, http.MethodPost}, "/logout", authController.Logout, bearer)
	auth.POST("/register", authController.Register, adminOnly(deps)...)

	// Never mounted in production; see config.BootstrapAllowed.
	if bootstrap {
		auth.POST("/bootstrap/create-admin", authController.CreateAdmin)
		auth.POST("/bootstrap/reset-admin", authController.ResetAdmin)
	}
}
