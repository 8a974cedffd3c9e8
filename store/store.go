// Package store exposes the typed collection gateways that are the only
// door to durable state. Result types mirror the document-store driver's
// result objects, so handlers can return them to clients unchanged.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tshirt-shop/models"
)

// ErrNotFound is returned when no document matches a find-one query.
var ErrNotFound = errors.New("store: document not found")

// InsertResult reports the outcome of an insert. A nil InsertedID is the
// no-op signal: the document already existed and nothing was written.
type InsertResult struct {
	InsertedID *primitive.ObjectID `json:"insertedId"`
}

// UpdateResult reports the outcome of a field-set patch.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports the outcome of a delete-one or delete-many.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Users is the gateway to the users collection. Email is the stable
// identity key; the store-generated id only appears in the role patch.
type Users interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// SearchByEmail matches emails containing term, case-insensitively.
	// An empty term matches every user.
	SearchByEmail(ctx context.Context, term string) ([]models.User, error)
	All(ctx context.Context) ([]models.User, error)
	// InsertIfAbsent inserts the user unless one with the same email
	// already exists, in which case the result carries a nil InsertedID.
	InsertIfAbsent(ctx context.Context, user *models.User) (InsertResult, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (UpdateResult, error)
	UpdateProfile(ctx context.Context, email, name, profilePic string) (UpdateResult, error)
}

// Carts is the gateway to the carts collection.
type Carts interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CartItem, error)
	FindByUser(ctx context.Context, email string) ([]models.CartItem, error)
	// InsertIfAbsent inserts the item unless the (userEmail, tShirtId)
	// pair already exists; the duplicate case carries a nil InsertedID.
	InsertIfAbsent(ctx context.Context, item *models.CartItem) (InsertResult, error)
	SetQuantity(ctx context.Context, id primitive.ObjectID, quantity int) (UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error)
	DeleteByUser(ctx context.Context, email string) (DeleteResult, error)
}

// Products is the gateway to the tShirts collection.
type Products interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// Find returns all products, or only those of sellerEmail when the
	// argument is non-empty.
	Find(ctx context.Context, sellerEmail string) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) (InsertResult, error)
	// Update applies a field-set patch. Values must already be plain
	// JSON-compatible types (string, float64, int64, bool).
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (DeleteResult, error)
}

// Payments is the read-side gateway to the payments collection. Writes
// go through Checkout so they pair with the cart status transition.
type Payments interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	// FindBySeller returns a seller's payments, newest first.
	FindBySeller(ctx context.Context, sellerEmail string) ([]models.Payment, error)
	// Find returns all payments, or only those of userEmail when the
	// argument is non-empty, newest first.
	Find(ctx context.Context, userEmail string) ([]models.Payment, error)
}

// CheckoutResult reports the outcome of a checkout.
type CheckoutResult struct {
	// Matched is how many cart documents the paid transition touched.
	// Zero means the cartId referenced no stored cart item; the payment
	// document is still recorded.
	Matched   int64
	PaymentID primitive.ObjectID
	// Replayed is true when a payment with the same transactionId already
	// existed and no new document was written.
	Replayed bool
}

// Checkout marks a cart item paid and records the matching payment
// document as a single unit of work.
type Checkout interface {
	Complete(ctx context.Context, cartID primitive.ObjectID, payment *models.Payment) (CheckoutResult, error)
}
