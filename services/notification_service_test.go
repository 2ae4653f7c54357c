package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/diamondgarment/backend/models"
)

func TestContactEmailBody(t *testing.T) {
	c := &models.Contact{
		Name:      "Ravi",
		Email:     "ravi@example.com",
		Phone:     "12345",
		Message:   "Need 200 jerseys.",
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}

	body := contactEmailBody(c)
	assert.Contains(t, body, "Name: Ravi\n")
	assert.Contains(t, body, "Received: 2024-05-01 09:30 UTC\n\nNeed 200 jerseys.\n")
	assert.NotContains(t, body, "Product:")

	c.Product = "Sports jerseys"
	assert.Contains(t, contactEmailBody(c), "Product: Sports jerseys\n")
}

func TestNotifiers_RunsEveryNotifier(t *testing.T) {
	failing := new(MockNotifier)
	working := new(MockNotifier)
	contact := &models.Contact{Name: "Ravi"}
	failing.On("NotifyContact", mock.Anything, contact).Return(errors.New("smtp down"))
	working.On("NotifyContact", mock.Anything, contact).Return(nil)

	err := Notifiers{failing, working}.NotifyContact(context.Background(), contact)
	assert.ErrorContains(t, err, "smtp down")
	working.AssertExpectations(t)
}
