package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart item statuses
const (
	CartStatusPending = "pending"
	CartStatusPaid    = "paid"
)

// CartItem represents a product placed in a user's cart.
// A (userEmail, tShirtId) pair is unique; adding the same product
// twice is a no-op.
type CartItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	TShirtID      string             `bson:"tShirtId" json:"tShirtId"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Status        string             `bson:"status" json:"status"` // "pending" or "paid"
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}
