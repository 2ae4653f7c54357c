package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
)

type ContactService interface {
	ContentService[models.Contact]
	Submit(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.Contact, error)
}

type ContactController struct {
	*ContentController[models.Contact, models.ContactInput]
	service ContactService
}

func NewContactController(service ContactService) *ContactController {
	return &ContactController{
		ContentController: NewContentController[models.Contact, models.ContactInput](service, ContactFilter),
		service:           service,
	}
}

// Submit is the public enquiry form. The status always starts as "new".
func (cc *ContactController) Submit(c echo.Context) error {
	in, err := bindInput[models.ContactInput](c)
	if err != nil {
		return err
	}
	contact, err := cc.service.Submit(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Data:    contact,
		Message: "Thank you for your message. We will get back to you soon.",
	})
}

func (cc *ContactController) UpdateStatus(c echo.Context) error {
	var req models.ContactStatusRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	contact, err := cc.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.OK(contact))
}
