package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/controllers"
)

// RegisterFileRoutes sets up image upload, placeholder images and static serving of local uploads
func RegisterFileRoutes(e *echo.Echo, api *echo.Group, deps Dependencies, uploadPath, uploadDir string) {
	uploadController := controllers.NewUploadController(deps.Uploads)

	api.POST("/upload", uploadController.Upload, adminOnly(deps)...)
	api.GET("/placeholder/:width/:height", controllers.Placeholder)

	if uploadDir != "" {
		e.Static(uploadPath, uploadDir)
	}
}
