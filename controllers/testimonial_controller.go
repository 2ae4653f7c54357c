package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
)

type TestimonialService interface {
	ContentService[models.Testimonial]
	GetPublished(ctx context.Context, id string) (*models.Testimonial, error)
}

// TestimonialController adds the approval-aware reads to the generic handlers.
type TestimonialController struct {
	*ContentController[models.Testimonial, models.TestimonialInput]
	service TestimonialService
}

func NewTestimonialController(service TestimonialService) *TestimonialController {
	return &TestimonialController{
		ContentController: NewContentController[models.Testimonial, models.TestimonialInput](service, TestimonialFilter),
		service:           service,
	}
}

// ListAll includes unapproved testimonials and is admin only.
func (tc *TestimonialController) ListAll(c echo.Context) error {
	items, err := tc.service.List(c.Request().Context(), repositories.TestimonialFilter{IncludeUnapproved: true})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.List(items))
}

// GetPublished hides unapproved testimonials from anonymous readers.
func (tc *TestimonialController) GetPublished(c echo.Context) error {
	item, err := tc.service.GetPublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.OK(item))
}
