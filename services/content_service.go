package services

import (
	"context"
	"errors"
	"time"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
)

// Store is the persistence a content collection needs.
type Store[T any] interface {
	List(ctx context.Context, filter repositories.Filter) ([]T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, doc *T) error
	Replace(ctx context.Context, id string, doc *T) error
	Delete(ctx context.Context, id string) error
}

// StructValidator is satisfied by utils.Validator.
type StructValidator interface {
	Validate(i interface{}) error
}

// ContentService implements the CRUD rules shared by every content resource.
// PT lets the service call the pointer-receiver Document methods on a T.
type ContentService[T any, PT interface {
	*T
	models.Document
}] struct {
	resource  string
	store     Store[T]
	validator StructValidator
	now       func() time.Time
}

// NewContentService builds a service. resource names the type in error messages, e.g. "Product".
func NewContentService[T any, PT interface {
	*T
	models.Document
}](resource string, store Store[T], validator StructValidator) *ContentService[T, PT] {
	return &ContentService[T, PT]{
		resource:  resource,
		store:     store,
		validator: validator,
		now:       time.Now,
	}
}

func (s *ContentService[T, PT]) List(ctx context.Context, filter repositories.Filter) ([]T, error) {
	items, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("Server Error", err)
	}
	return items, nil
}

func (s *ContentService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return doc, nil
}

// Create validates the whole document before anything is written.
func (s *ContentService[T, PT]) Create(ctx context.Context, in models.Input[T]) (*T, error) {
	doc := new(T)
	PT(doc).Initialize(s.now())
	in.ApplyTo(doc)

	if err := s.validator.Validate(doc); err != nil {
		return nil, err
	}

	if err := s.store.Create(context.WithoutCancel(ctx), doc); err != nil {
		return nil, s.mapError(err)
	}
	return doc, nil
}

// Update applies a partial payload and re-validates the merged document.
func (s *ContentService[T, PT]) Update(ctx context.Context, id string, in models.Input[T]) (*T, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	in.ApplyTo(doc)
	if err := s.validator.Validate(doc); err != nil {
		return nil, err
	}

	if err := s.store.Replace(context.WithoutCancel(ctx), id, doc); err != nil {
		return nil, s.mapError(err)
	}
	return doc, nil
}

func (s *ContentService[T, PT]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(context.WithoutCancel(ctx), id); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *ContentService[T, PT]) mapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperror.NotFound(s.resource + " not found")
	case errors.Is(err, repositories.ErrDuplicate):
		return apperror.Conflict(s.resource + " already exists")
	}
	return apperror.Internal("Server Error", err)
}

type ProductService = ContentService[models.Product, *models.Product]

type GalleryService = ContentService[models.GalleryItem, *models.GalleryItem]

func NewProductService(store Store[models.Product], v StructValidator) *ProductService {
	return NewContentService[models.Product, *models.Product]("Product", store, v)
}

func NewGalleryService(store Store[models.GalleryItem], v StructValidator) *GalleryService {
	return NewContentService[models.GalleryItem, *models.GalleryItem]("Gallery item", store, v)
}

// TestimonialService hides unapproved testimonials from public reads.
type TestimonialService struct {
	*ContentService[models.Testimonial, *models.Testimonial]
}

func NewTestimonialService(store Store[models.Testimonial], v StructValidator) *TestimonialService {
	return &TestimonialService{
		ContentService: NewContentService[models.Testimonial, *models.Testimonial]("Testimonial", store, v),
	}
}

// GetPublished returns NotFound for testimonials that are not approved.
func (s *TestimonialService) GetPublished(ctx context.Context, id string) (*models.Testimonial, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Approved {
		return nil, apperror.NotFound("Testimonial not found")
	}
	return t, nil
}
