package controllers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
)

// ContentService is the CRUD surface a content controller drives.
type ContentService[T any] interface {
	List(ctx context.Context, filter repositories.Filter) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in models.Input[T]) (*T, error)
	Update(ctx context.Context, id string, in models.Input[T]) (*T, error)
	Delete(ctx context.Context, id string) error
}

// FilterFunc builds a listing filter from the query string.
type FilterFunc func(c echo.Context) (repositories.Filter, error)

// ContentController serves list/get/create/update/delete for one resource.
// In is the JSON payload type bound for create and update.
type ContentController[T any, In models.Input[T]] struct {
	service ContentService[T]
	filter  FilterFunc
}

func NewContentController[T any, In models.Input[T]](service ContentService[T], filter FilterFunc) *ContentController[T, In] {
	return &ContentController[T, In]{service: service, filter: filter}
}

func (cc *ContentController[T, In]) List(c echo.Context) error {
	filter, err := cc.filter(c)
	if err != nil {
		return err
	}
	items, err := cc.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.List(items))
}

func (cc *ContentController[T, In]) Get(c echo.Context) error {
	item, err := cc.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.OK(item))
}

func (cc *ContentController[T, In]) Create(c echo.Context) error {
	in, err := bindInput[In](c)
	if err != nil {
		return err
	}
	item, err := cc.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, models.OK(item))
}

func (cc *ContentController[T, In]) Update(c echo.Context) error {
	in, err := bindInput[In](c)
	if err != nil {
		return err
	}
	item, err := cc.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.OK(item))
}

func (cc *ContentController[T, In]) Delete(c echo.Context) error {
	if err := cc.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.OK(struct{}{}))
}

func bindInput[In any](c echo.Context) (In, error) {
	var in In
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		return in, apperror.Validation("Invalid request body")
	}
	return in, nil
}

func ProductFilter(c echo.Context) (repositories.Filter, error) {
	category, err := categoryParam(c)
	if err != nil {
		return nil, err
	}
	return repositories.ProductFilter{
		FeaturedOnly: c.QueryParam("featured") == "true",
		Category:     category,
	}, nil
}

func GalleryFilter(c echo.Context) (repositories.Filter, error) {
	category, err := categoryParam(c)
	if err != nil {
		return nil, err
	}
	return repositories.GalleryFilter{Category: category}, nil
}

// TestimonialFilter is the public listing: approved only.
func TestimonialFilter(c echo.Context) (repositories.Filter, error) {
	return repositories.TestimonialFilter{FeaturedOnly: c.QueryParam("featured") == "true"}, nil
}

func ContactFilter(c echo.Context) (repositories.Filter, error) {
	status := models.ContactStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return nil, apperror.Validation("Invalid status filter", apperror.FieldError{
			Field:   "status",
			Message: "Status must be one of: new, read, responded",
		})
	}
	return repositories.ContactFilter{Status: status}, nil
}

func categoryParam(c echo.Context) (models.Category, error) {
	category := models.Category(c.QueryParam("category"))
	if category != "" && !category.Valid() {
		return "", apperror.Validation("Invalid category filter", apperror.FieldError{
			Field:   "category",
			Message: "Category must be one of: Hospital, School, Sports, Hotel, Industrial, Scout & NCC",
		})
	}
	return category, nil
}
