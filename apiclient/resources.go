package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diamondgarment/backend/models"
)

// Resource is the CRUD surface of one collection. T is the document, In the write payload.
type Resource[T any, In any] struct {
	client *Client
	path   string
}

func (r Resource[T, In]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.path)
}

func (r Resource[T, In]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if _, err := r.client.doJSON(ctx, http.MethodGet, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var item T
	if _, err := r.client.doJSON(ctx, http.MethodPost, r.path, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T, In]) Update(ctx context.Context, id string, in In) (*T, error) {
	var item T
	if _, err := r.client.doJSON(ctx, http.MethodPut, r.itemPath(id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r Resource[T, In]) Delete(ctx context.Context, id string) error {
	_, err := r.client.doJSON(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
	return err
}

func (r Resource[T, In]) list(ctx context.Context, path string) ([]T, error) {
	items := []T{}
	if _, err := r.client.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r Resource[T, In]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

type TestimonialResource struct {
	Resource[models.Testimonial, models.TestimonialInput]
}

// ListAll includes unapproved testimonials. Admin only.
func (r TestimonialResource) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return r.list(ctx, r.path+"/admin/all")
}

type ContactResource struct {
	Resource[models.Contact, models.ContactInput]
}

// Submit posts the public enquiry form.
func (r ContactResource) Submit(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	return r.Create(ctx, in.PublicOnly())
}

func (r ContactResource) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.Contact, error) {
	var contact models.Contact
	_, err := r.client.doJSON(ctx, http.MethodPut, r.itemPath(id)+"/status", models.ContactStatusRequest{Status: status}, &contact)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
