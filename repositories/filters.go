package repositories

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/diamondgarment/backend/models"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

// ProductFilter lists products newest first.
type ProductFilter struct {
	FeaturedOnly bool
	Category     models.Category
}

func (f ProductFilter) Query() bson.M {
	q := bson.M{}
	if f.FeaturedOnly {
		q["featured"] = true
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	return q
}

func (f ProductFilter) Sort() bson.D { return newestFirst }

type GalleryFilter struct {
	Category models.Category
}

func (f GalleryFilter) Query() bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	return q
}

func (f GalleryFilter) Sort() bson.D { return newestFirst }

// TestimonialFilter restricts to approved documents unless IncludeUnapproved is set.
// Featured testimonials sort ahead of the rest on the public listing.
type TestimonialFilter struct {
	IncludeUnapproved bool
	FeaturedOnly      bool
}

func (f TestimonialFilter) Query() bson.M {
	q := bson.M{}
	if !f.IncludeUnapproved {
		q["approved"] = true
	}
	if f.FeaturedOnly {
		q["featured"] = true
	}
	return q
}

func (f TestimonialFilter) Sort() bson.D {
	if f.IncludeUnapproved {
		return newestFirst
	}
	return bson.D{{Key: "featured", Value: -1}, {Key: "createdAt", Value: -1}}
}

type ContactFilter struct {
	Status models.ContactStatus
}

func (f ContactFilter) Query() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

func (f ContactFilter) Sort() bson.D { return newestFirst }
