package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tshirt-shop/models"
)

// NewCheckout returns the mongo-backed checkout unit of work over the
// carts and payments collections.
func NewCheckout(client *mongo.Client, db *mongo.Database) Checkout {
	return &mongoCheckout{
		client:   client,
		carts:    db.Collection("carts"),
		payments: db.Collection("payments"),
	}
}

type mongoCheckout struct {
	client   *mongo.Client
	carts    *mongo.Collection
	payments *mongo.Collection
}

// Complete marks the cart item paid and inserts the payment document.
// Both writes run inside a mongo transaction when the deployment
// supports one (replica set or sharded cluster); on a standalone they
// fall back to sequential writes, which is the pre-transaction behavior.
// The operation is idempotent by transactionId: a replay returns the
// existing payment id without writing anything.
func (c *mongoCheckout) Complete(ctx context.Context, cartID primitive.ObjectID, payment *models.Payment) (CheckoutResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*opTimeout)
	defer cancel()

	var existing models.Payment
	err := c.payments.FindOne(ctx, bson.M{"transactionId": payment.TransactionID}).Decode(&existing)
	if err == nil {
		return CheckoutResult{PaymentID: existing.ID, Replayed: true}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return CheckoutResult{}, err
	}

	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	session, err := c.client.StartSession()
	if err != nil {
		return c.applySequential(ctx, cartID, payment)
	}
	defer session.EndSession(ctx)

	out, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return c.apply(sc, cartID, payment)
	})
	if err != nil {
		if transactionsUnsupported(err) {
			return c.applySequential(ctx, cartID, payment)
		}
		return CheckoutResult{}, err
	}
	return out.(CheckoutResult), nil
}

func (c *mongoCheckout) apply(ctx context.Context, cartID primitive.ObjectID, payment *models.Payment) (CheckoutResult, error) {
	update := bson.M{"$set": bson.M{
		"status":        models.CartStatusPaid,
		"transactionId": payment.TransactionID,
	}}
	upd, err := c.carts.UpdateOne(ctx, bson.M{"_id": cartID}, update)
	if err != nil {
		return CheckoutResult{}, err
	}

	ins, err := c.payments.InsertOne(ctx, payment)
	if err != nil {
		return CheckoutResult{}, err
	}

	res := CheckoutResult{Matched: upd.MatchedCount}
	if id, ok := ins.InsertedID.(primitive.ObjectID); ok {
		res.PaymentID = id
	}
	return res, nil
}

func (c *mongoCheckout) applySequential(ctx context.Context, cartID primitive.ObjectID, payment *models.Payment) (CheckoutResult, error) {
	return c.apply(ctx, cartID, payment)
}

// transactionsUnsupported recognizes the server errors a standalone
// deployment raises when a transaction is attempted.
func transactionsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "transactions are not supported")
}
