package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/utils"
)

type UploadService interface {
	CheckSize(size int64) error
	Upload(ctx context.Context, data []byte, originalName string) (*models.UploadResult, error)
}

type UploadController struct {
	service UploadService
}

func NewUploadController(service UploadService) *UploadController {
	return &UploadController{service: service}
}

// Upload handles POST /api/upload with the image in the "image" form field.
func (uc *UploadController) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		// A body without Content-Length only trips the body limit while the form is parsed.
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusRequestEntityTooLarge {
			return apperror.PayloadTooLarge(utils.FileTooLargeMessage)
		}
		return apperror.Validation("Please upload a file")
	}

	if err := uc.service.CheckSize(file.Size); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return apperror.Internal("Error uploading file", err)
	}
	defer src.Close()

	// One byte past the limit is enough to detect an oversized body.
	data, err := io.ReadAll(io.LimitReader(src, utils.MaxUploadSize+1))
	if err != nil {
		return apperror.Internal("Error uploading file", err)
	}

	result, err := uc.service.Upload(c.Request().Context(), data, file.Filename)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.OK(result))
}
