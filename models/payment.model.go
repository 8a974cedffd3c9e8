package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed checkout. Written once alongside the
// paid transition of the referenced cart item, immutable afterwards.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CartID        primitive.ObjectID `bson:"cartId" json:"cartId"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	SellerEmail   string             `bson:"sellerEmail" json:"sellerEmail"`
	PriceTk       float64            `bson:"priceTk" json:"priceTk"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Status        string             `bson:"status" json:"status"` // always "success"
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
