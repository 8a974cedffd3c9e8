package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user document may carry
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User represents an account created on first sign-in
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Name       string             `bson:"name" json:"name"`
	ProfilePic string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	Role       string             `bson:"role" json:"role"` // "user" or "admin"
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
