package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/middleware"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/websocket"
)

// RegisterEventRoutes mounts the admin live feed at /api/ws.
func RegisterEventRoutes(api *echo.Group, deps Dependencies) {
	api.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, deps.Hub, middleware.GetUser(c).ID)
	},
		middleware.JWTSocketMiddleware(deps.Auth),
		middleware.RequireRole(deps.Auth, models.RoleAdmin),
	)
}
