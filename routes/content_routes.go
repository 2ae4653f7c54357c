package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/controllers"
	"github.com/diamondgarment/backend/models"
)

// RegisterContentRoutes mounts products, gallery, testimonials and contacts.
// Reads are public except contacts; every write except the contact form needs an admin.
func RegisterContentRoutes(api *echo.Group, deps Dependencies) {
	admin := adminOnly(deps)

	products := controllers.NewContentController[models.Product, models.ProductInput](deps.Products, controllers.ProductFilter)
	g := api.Group("/products")
	g.GET("", products.List)
	g.GET("/:id", products.Get)
	g.POST("", products.Create, admin...)
	g.PUT("/:id", products.Update, admin...)
	g.DELETE("/:id", products.Delete, admin...)

	gallery := controllers.NewContentController[models.GalleryItem, models.GalleryInput](deps.Gallery, controllers.GalleryFilter)
	g = api.Group("/gallery")
	g.GET("", gallery.List)
	g.GET("/:id", gallery.Get)
	g.POST("", gallery.Create, admin...)
	g.PUT("/:id", gallery.Update, admin...)
	g.DELETE("/:id", gallery.Delete, admin...)

	testimonials := controllers.NewTestimonialController(deps.Testimonials)
	g = api.Group("/testimonials")
	g.GET("", testimonials.List)
	g.GET("/admin/all", testimonials.ListAll, admin...)
	g.GET("/:id", testimonials.GetPublished)
	g.POST("", testimonials.Create, admin...)
	g.PUT("/:id", testimonials.Update, admin...)
	g.DELETE("/:id", testimonials.Delete, admin...)

	contacts := controllers.NewContactController(deps.Contacts)
	g = api.Group("/contact")
	g.POST("", contacts.Submit)
	g.GET("", contacts.List, admin...)
	g.GET("/:id", contacts.Get, admin...)
	g.PUT("/:id", contacts.Update, admin...)
	g.PUT("/:id/status", contacts.UpdateStatus, admin...)
	g.DELETE("/:id", contacts.Delete, admin...)
}
