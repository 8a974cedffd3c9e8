// Package gateway bridges to the external payment processor.
package gateway

import (
	"context"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// IntentCreator creates a payment intent and returns the client secret
// the caller needs to complete payment client-side.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}

// Stripe creates payment intents through the Stripe API.
type Stripe struct{}

// NewStripe sets the API key and returns the gateway.
func NewStripe(secretKey string) *Stripe {
	stripe.Key = secretKey
	return &Stripe{}
}

func (s *Stripe) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
