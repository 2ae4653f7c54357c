package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by every content collection entry.
type Document interface {
	// Initialize assigns identity, creation time and field defaults to a new document.
	Initialize(now time.Time)
	DocumentID() primitive.ObjectID
}

// Input is a partial payload that can be applied onto a document of type T.
// Nil fields are left untouched, which makes the same type serve create and update.
type Input[T any] interface {
	ApplyTo(doc *T)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
