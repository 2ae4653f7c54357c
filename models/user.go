package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an admin account. The password hash is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name" bson:"name" validate:"required,max=100"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role" validate:"role"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

func NewUser(name, email, passwordHash string, role Role, now time.Time) *User {
	return &User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		Role:      role,
		CreatedAt: now,
	}
}
