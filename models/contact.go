package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is an enquiry submitted through the public contact form.
// Product is free text copied from the form, not a reference.
type Contact struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name" validate:"required,max=100"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Phone     string             `json:"phone" bson:"phone" validate:"required,max=30"`
	Product   string             `json:"product,omitempty" bson:"product,omitempty" validate:"max=200"`
	Message   string             `json:"message" bson:"message" validate:"required,max=5000"`
	Status    ContactStatus      `json:"status" bson:"status" validate:"contactstatus"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

func (c *Contact) Initialize(now time.Time) {
	c.ID = primitive.NewObjectID()
	c.Status = ContactStatusNew
	c.CreatedAt = now
}

func (c *Contact) DocumentID() primitive.ObjectID {
	return c.ID
}

type ContactInput struct {
	Name    *string        `json:"name"`
	Email   *string        `json:"email"`
	Phone   *string        `json:"phone"`
	Product *string        `json:"product"`
	Message *string        `json:"message"`
	Status  *ContactStatus `json:"status"`
}

func (in ContactInput) ApplyTo(c *Contact) {
	setString(&c.Name, in.Name)
	setString(&c.Email, in.Email)
	setString(&c.Phone, in.Phone)
	setString(&c.Product, in.Product)
	setString(&c.Message, in.Message)
	if in.Status != nil {
		c.Status = *in.Status
	}
}

// PublicContactInput is what the enquiry form may set. Status is left to the default.
func (in ContactInput) PublicOnly() ContactInput {
	in.Status = nil
	return in
}

// ContactStatusRequest is the body of PUT /api/contact/:id/status.
type ContactStatusRequest struct {
	Status ContactStatus `json:"status"`
}
