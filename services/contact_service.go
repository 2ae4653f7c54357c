package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/diamondgarment/backend/apperror"
	"github.com/diamondgarment/backend/models"
)

// ContactNotifier is told about new enquiries. Implementations must not block for long.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, contact *models.Contact) error
}

type ContactService struct {
	*ContentService[models.Contact, *models.Contact]
	notifier ContactNotifier
}

// NewContactService accepts a nil notifier when email is not configured.
func NewContactService(store Store[models.Contact], v StructValidator, notifier ContactNotifier) *ContactService {
	return &ContactService{
		ContentService: NewContentService[models.Contact, *models.Contact]("Contact", store, v),
		notifier:       notifier,
	}
}

// Submit stores a public enquiry with status "new" and fires the notification in the background.
func (s *ContactService) Submit(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	contact, err := s.Create(ctx, in.PublicOnly())
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		logger := zerolog.Ctx(ctx)
		notifyCtx := logger.WithContext(context.WithoutCancel(ctx))
		c := *contact
		go func() {
			if err := s.notifier.NotifyContact(notifyCtx, &c); err != nil {
				logger.Error().Err(err).Str("contact_id", c.ID.Hex()).Msg("failed to send contact notification")
			}
		}()
	}
	return contact, nil
}

// UpdateStatus sets the enquiry status. Any status may follow any other.
func (s *ContactService) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.Contact, error) {
	if !status.Valid() {
		return nil, apperror.Validation("Validation failed", apperror.FieldError{
			Field:   "status",
			Message: "Status must be one of: new, read, responded",
		})
	}
	return s.Update(ctx, id, models.ContactInput{Status: &status})
}
