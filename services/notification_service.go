package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/diamondgarment/backend/config"
	"github.com/diamondgarment/backend/models"
)

// EmailNotifier mails new contact enquiries to the configured inbox.
type EmailNotifier struct {
	from   string
	to     string
	dialer *gomail.Dialer
}

func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		from:   cfg.From,
		to:     cfg.NotifyTo,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (n *EmailNotifier) NotifyContact(ctx context.Context, contact *models.Contact) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Reply-To", contact.Email)
	m.SetHeader("Subject", fmt.Sprintf("New enquiry from %s", contact.Name))
	m.SetBody("text/plain", contactEmailBody(contact))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("contact_id", contact.ID.Hex()).Msg("contact notification sent")
	return nil
}

func contactEmailBody(c *models.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	if c.Product != "" {
		fmt.Fprintf(&b, "Product: %s\n", c.Product)
	}
	fmt.Fprintf(&b, "Received: %s\n\n", c.CreatedAt.Format("2006-01-02 15:04 MST"))
	b.WriteString(c.Message)
	b.WriteString("\n")
	return b.String()
}

// Notifiers sends a contact to each notifier in turn. A failure does not stop the rest.
type Notifiers []ContactNotifier

func (ns Notifiers) NotifyContact(ctx context.Context, contact *models.Contact) error {
	var errs []error
	for _, n := range ns {
		if err := n.NotifyContact(ctx, contact); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
