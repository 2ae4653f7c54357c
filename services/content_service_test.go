package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
	"github.com/diamondgarment/backend/repositories"
	"github.com/diamondgarment/backend/utils"
)

func ptr[T any](v T) *T {
	return &v
}

func validProductInput() models.ProductInput {
	return models.ProductInput{
		Name:        ptr("Surgical Scrubs"),
		Image:       ptr(models.ParseImageRef("https://cdn.example.com/scrubs.jpg")),
		Category:    ptr(models.CategoryHospital),
		Description: ptr("Breathable cotton scrubs"),
	}
}

func validTestimonialInput() models.TestimonialInput {
	return models.TestimonialInput{
		Name:        ptr("Priya Sharma"),
		Title:       ptr("Principal"),
		Company:     ptr("Green Valley School"),
		Image:       ptr(models.ParseImageRef("/uploads/priya.jpg")),
		Testimonial: ptr(strings.Repeat("Excellent quality uniforms. ", 5)),
		Rating:      ptr(5.0),
	}
}

func fieldNames(err error) []string {
	appErr := apperror.From(err)
	names := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestProductService_Create(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(in *models.ProductInput)
		wantFields []string
	}{
		{
			name:   "valid product",
			mutate: func(in *models.ProductInput) {},
		},
		{
			name:       "unknown category",
			mutate:     func(in *models.ProductInput) { in.Category = ptr(models.Category("Casual")) },
			wantFields: []string{"category"},
		},
		{
			name:       "missing name and description",
			mutate:     func(in *models.ProductInput) { in.Name = nil; in.Description = ptr("   ") },
			wantFields: []string{"name", "description"},
		},
		{
			name:       "relative image path",
			mutate:     func(in *models.ProductInput) { in.Image = ptr(models.ParseImageRef("uploads/x.jpg")) },
			wantFields: []string{"image"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore[models.Product])
			svc := NewProductService(store, utils.NewValidator())
			in := validProductInput()
			tt.mutate(&in)

			if tt.wantFields == nil {
				store.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)
			}

			product, err := svc.Create(context.Background(), in)
			if tt.wantFields != nil {
				require.Error(t, err)
				assert.True(t, apperror.Is(err, apperror.KindValidation))
				assert.ElementsMatch(t, tt.wantFields, fieldNames(err))
				store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.False(t, product.ID.IsZero())
			assert.False(t, product.CreatedAt.IsZero())
			assert.Equal(t, models.CategoryHospital, product.Category)
			assert.False(t, product.Featured)
			store.AssertExpectations(t)
		})
	}
}

func TestTestimonialService_Create(t *testing.T) {
	t.Run("approved by default", func(t *testing.T) {
		store := new(MockStore[models.Testimonial])
		svc := NewTestimonialService(store, utils.NewValidator())
		store.On("Create", mock.Anything, mock.AnythingOfType("*models.Testimonial")).Return(nil)

		created, err := svc.Create(context.Background(), validTestimonialInput())
		require.NoError(t, err)
		assert.True(t, created.Approved)
		assert.False(t, created.Featured)
	})

	t.Run("explicitly unapproved", func(t *testing.T) {
		store := new(MockStore[models.Testimonial])
		svc := NewTestimonialService(store, utils.NewValidator())
		store.On("Create", mock.Anything, mock.AnythingOfType("*models.Testimonial")).Return(nil)

		in := validTestimonialInput()
		in.Approved = ptr(false)
		created, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, created.Approved)
	})

	for _, rating := range []float64{0, 6, 3.5, -1} {
		t.Run(fmt.Sprintf("rejects rating %v", rating), func(t *testing.T) {
			store := new(MockStore[models.Testimonial])
			svc := NewTestimonialService(store, utils.NewValidator())

			in := validTestimonialInput()
			in.Rating = ptr(rating)
			_, err := svc.Create(context.Background(), in)
			require.Error(t, err)
			assert.Contains(t, fieldNames(err), "rating")
			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("short testimonial text", func(t *testing.T) {
		store := new(MockStore[models.Testimonial])
		svc := NewTestimonialService(store, utils.NewValidator())

		in := validTestimonialInput()
		in.Testimonial = ptr("Too short")
		_, err := svc.Create(context.Background(), in)
		assert.Contains(t, fieldNames(err), "testimonial")
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTestimonialService_GetPublished(t *testing.T) {
	store := new(MockStore[models.Testimonial])
	svc := NewTestimonialService(store, utils.NewValidator())
	hidden := &models.Testimonial{ID: primitive.NewObjectID(), Approved: false}
	shown := &models.Testimonial{ID: primitive.NewObjectID(), Approved: true}
	store.On("FindByID", mock.Anything, hidden.ID.Hex()).Return(hidden, nil)
	store.On("FindByID", mock.Anything, shown.ID.Hex()).Return(shown, nil)

	_, err := svc.GetPublished(context.Background(), hidden.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	got, err := svc.GetPublished(context.Background(), shown.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, shown, got)
}

func TestContentService_Update(t *testing.T) {
	existing := func() *models.Product {
		return &models.Product{
			ID:          primitive.NewObjectID(),
			Name:        "Lab Coat",
			Image:       models.LocalImage("/uploads/coat.jpg"),
			Category:    models.CategoryHospital,
			Description: "White lab coat",
			CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		store := new(MockStore[models.Product])
		svc := NewProductService(store, utils.NewValidator())
		doc := existing()
		id := doc.ID.Hex()
		store.On("FindByID", mock.Anything, id).Return(doc, nil)
		store.On("Replace", mock.Anything, id, mock.MatchedBy(func(p *models.Product) bool {
			return p.Featured && p.Name == "Lab Coat" && p.Category == models.CategoryHospital
		})).Return(nil)

		updated, err := svc.Update(context.Background(), id, models.ProductInput{Featured: ptr(true)})
		require.NoError(t, err)
		assert.True(t, updated.Featured)
		assert.Equal(t, doc.CreatedAt, updated.CreatedAt)
		assert.Equal(t, doc.ID, updated.ID)
		store.AssertExpectations(t)
	})

	t.Run("invalid merged document is not written", func(t *testing.T) {
		store := new(MockStore[models.Product])
		svc := NewProductService(store, utils.NewValidator())
		doc := existing()
		id := doc.ID.Hex()
		store.On("FindByID", mock.Anything, id).Return(doc, nil)

		_, err := svc.Update(context.Background(), id, models.ProductInput{Category: ptr(models.Category("Casual"))})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		store.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing id", func(t *testing.T) {
		store := new(MockStore[models.Product])
		svc := NewProductService(store, utils.NewValidator())
		store.On("FindByID", mock.Anything, "not-an-id").Return(nil, repositories.ErrNotFound)

		_, err := svc.Update(context.Background(), "not-an-id", models.ProductInput{Featured: ptr(true)})
		require.Error(t, err)
		assert.Equal(t, "Product not found", apperror.From(err).Message)
	})
}

func TestContentService_DeleteTwice(t *testing.T) {
	store := new(MockStore[models.GalleryItem])
	svc := NewGalleryService(store, utils.NewValidator())
	id := primitive.NewObjectID().Hex()
	store.On("Delete", mock.Anything, id).Return(nil).Once()
	store.On("Delete", mock.Anything, id).Return(repositories.ErrNotFound).Once()

	require.NoError(t, svc.Delete(context.Background(), id))

	err := svc.Delete(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Gallery item not found", apperror.From(err).Message)
}

func TestContentService_ListPassesFilter(t *testing.T) {
	store := new(MockStore[models.Testimonial])
	svc := NewTestimonialService(store, utils.NewValidator())
	filter := repositories.TestimonialFilter{FeaturedOnly: true}
	store.On("List", mock.Anything, filter).Return(nil, nil)

	items, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, items)
	store.AssertExpectations(t)
}

func TestContactService_Submit(t *testing.T) {
	input := func() models.ContactInput {
		return models.ContactInput{
			Name:    ptr("Ravi"),
			Email:   ptr("ravi@example.com"),
			Phone:   ptr("+91 98765 43210"),
			Product: ptr("Sports jerseys"),
			Message: ptr("Need 200 jerseys for our school team."),
			Status:  ptr(models.ContactStatusResponded),
		}
	}

	t.Run("forces status new and notifies", func(t *testing.T) {
		store := new(MockStore[models.Contact])
		notifier := &MockNotifier{sent: make(chan *models.Contact, 1)}
		svc := NewContactService(store, utils.NewValidator(), notifier)
		store.On("Create", mock.Anything, mock.AnythingOfType("*models.Contact")).Return(nil)
		notifier.On("NotifyContact", mock.Anything, mock.AnythingOfType("*models.Contact")).Return(nil)

		contact, err := svc.Submit(context.Background(), input())
		require.NoError(t, err)
		assert.Equal(t, models.ContactStatusNew, contact.Status)

		select {
		case sent := <-notifier.sent:
			assert.Equal(t, contact.ID, sent.ID)
		case <-time.After(2 * time.Second):
			t.Fatal("notification was not sent")
		}
	})

	t.Run("invalid email is rejected without notification", func(t *testing.T) {
		store := new(MockStore[models.Contact])
		notifier := new(MockNotifier)
		svc := NewContactService(store, utils.NewValidator(), notifier)

		in := input()
		in.Email = ptr("nope")
		_, err := svc.Submit(context.Background(), in)
		assert.Equal(t, []string{"email"}, fieldNames(err))
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "NotifyContact", mock.Anything, mock.Anything)
	})
}

func TestContactService_UpdateStatus(t *testing.T) {
	doc := &models.Contact{
		ID:      primitive.NewObjectID(),
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Phone:   "12345",
		Message: "Hello",
		Status:  models.ContactStatusResponded,
	}
	id := doc.ID.Hex()

	t.Run("any transition is allowed", func(t *testing.T) {
		store := new(MockStore[models.Contact])
		svc := NewContactService(store, utils.NewValidator(), nil)
		store.On("FindByID", mock.Anything, id).Return(doc, nil)
		store.On("Replace", mock.Anything, id, mock.AnythingOfType("*models.Contact")).Return(nil)

		updated, err := svc.UpdateStatus(context.Background(), id, models.ContactStatusNew)
		require.NoError(t, err)
		assert.Equal(t, models.ContactStatusNew, updated.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		store := new(MockStore[models.Contact])
		svc := NewContactService(store, utils.NewValidator(), nil)

		_, err := svc.UpdateStatus(context.Background(), id, models.ContactStatus("archived"))
		assert.Equal(t, []string{"status"}, fieldNames(err))
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
