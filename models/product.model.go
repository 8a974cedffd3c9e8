package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a t-shirt listing.
// DiscountPrice is always derived from Price and Discount, never
// accepted from the client directly.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Price         float64            `bson:"price" json:"price"`
	Discount      float64            `bson:"discount" json:"discount"` // percentage in [0,100]
	DiscountPrice float64            `bson:"discountPrice" json:"discountPrice"`
	Description   string             `bson:"description" json:"description"`
	Color         string             `bson:"color" json:"color"`
	Size          string             `bson:"size" json:"size"`
	Quantity      int64              `bson:"quantity" json:"quantity"`
	Category      string             `bson:"category" json:"category"`
	Brand         string             `bson:"brand" json:"brand"`
	StockStatus   string             `bson:"stockStatus" json:"stockStatus"`
	SellerEmail   string             `bson:"sellerEmail" json:"sellerEmail"`
	Image         string             `bson:"image" json:"image"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// DiscountedPrice computes the price after applying a percentage discount.
func DiscountedPrice(price, discount float64) float64 {
	return price - price*(discount/100)
}
