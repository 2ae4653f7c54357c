package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name" validate:"required,max=200"`
	Image       ImageRef           `json:"image" bson:"image" validate:"imageref"`
	Category    Category           `json:"category" bson:"category" validate:"category"`
	Description string             `json:"description" bson:"description" validate:"required"`
	Featured    bool               `json:"featured" bson:"featured"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

func (p *Product) Initialize(now time.Time) {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
}

func (p *Product) DocumentID() primitive.ObjectID {
	return p.ID
}

// ProductInput is the create/update payload for products.
type ProductInput struct {
	Name        *string   `json:"name"`
	Image       *ImageRef `json:"image"`
	Category    *Category `json:"category"`
	Description *string   `json:"description"`
	Featured    *bool     `json:"featured"`
}

func (in ProductInput) ApplyTo(p *Product) {
	setString(&p.Name, in.Name)
	setString(&p.Description, in.Description)
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	setBool(&p.Featured, in.Featured)
}
