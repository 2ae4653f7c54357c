package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GalleryItem struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title" validate:"required,max=200"`
	Image     ImageRef           `json:"image" bson:"image" validate:"imageref"`
	Category  Category           `json:"category" bson:"category" validate:"category"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

func (g *GalleryItem) Initialize(now time.Time) {
	g.ID = primitive.NewObjectID()
	g.CreatedAt = now
}

func (g *GalleryItem) DocumentID() primitive.ObjectID {
	return g.ID
}

type GalleryInput struct {
	Title    *string   `json:"title"`
	Image    *ImageRef `json:"image"`
	Category *Category `json:"category"`
}

func (in GalleryInput) ApplyTo(g *GalleryItem) {
	setString(&g.Title, in.Title)
	if in.Image != nil {
		g.Image = *in.Image
	}
	if in.Category != nil {
		g.Category = *in.Category
	}
}
