package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testimonial is a customer quote shown on the site once approved.
type Testimonial struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Title       string             `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Company     string             `json:"company" bson:"company" validate:"required,min=2,max=150"`
	Image       ImageRef           `json:"image" bson:"image" validate:"imageref"`
	Testimonial string             `json:"testimonial" bson:"testimonial" validate:"required,min=100,max=1000"`
	Rating      float64            `json:"rating" bson:"rating" validate:"required,min=1,max=5,whole"`
	Featured    bool               `json:"featured" bson:"featured"`
	Approved    bool               `json:"approved" bson:"approved"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// Initialize marks new testimonials approved unless the payload says otherwise.
func (t *Testimonial) Initialize(now time.Time) {
	t.ID = primitive.NewObjectID()
	t.Approved = true
	t.CreatedAt = now
}

func (t *Testimonial) DocumentID() primitive.ObjectID {
	return t.ID
}

type TestimonialInput struct {
	Name        *string   `json:"name"`
	Title       *string   `json:"title"`
	Company     *string   `json:"company"`
	Image       *ImageRef `json:"image"`
	Testimonial *string   `json:"testimonial"`
	Rating      *float64  `json:"rating"`
	Featured    *bool     `json:"featured"`
	Approved    *bool     `json:"approved"`
}

func (in TestimonialInput) ApplyTo(t *Testimonial) {
	setString(&t.Name, in.Name)
	setString(&t.Title, in.Title)
	setString(&t.Company, in.Company)
	setString(&t.Testimonial, in.Testimonial)
	if in.Image != nil {
		t.Image = *in.Image
	}
	if in.Rating != nil {
		t.Rating = *in.Rating
	}
	setBool(&t.Featured, in.Featured)
	setBool(&t.Approved, in.Approved)
}
