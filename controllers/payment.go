package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tshirt-shop/gateway"
	"tshirt-shop/models"
	"tshirt-shop/store"
)

// PaymentController handles payment records and the payment-intent bridge
type PaymentController struct {
	Payments store.Payments
	Checkout store.Checkout
	Intents  gateway.IntentCreator
	Mailer   Mailer // optional, nil disables receipts
}

// Mailer sends a receipt after a recorded payment. Failures are logged,
// never surfaced to the caller.
type Mailer interface {
	SendPaymentReceipt(toEmail string, payment models.Payment) error
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(payments store.Payments, checkout store.Checkout, intents gateway.IntentCreator, mailer Mailer) *PaymentController {
	return &PaymentController{
		Payments: payments,
		Checkout: checkout,
		Intents:  intents,
		Mailer:   mailer,
	}
}

// BySeller returns a seller's payment history, newest first.
func (pc *PaymentController) BySeller(w http.ResponseWriter, r *http.Request) {
	sellerEmail := mux.Vars(r)["email"]

	payments, err := pc.Payments.FindBySeller(r.Context(), sellerEmail)
	if err != nil {
		logrus.WithError(err).Error("payment history fetch failed")
		writeError(w, http.StatusInternalServerError, "Error fetching payment history")
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

// Get returns a single payment wrapped in the {success, data} envelope.
func (pc *PaymentController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid payment ID"})
		return
	}

	payment, err := pc.Payments.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "Payment not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("payment fetch failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to fetch payment"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": payment})
}

// List returns all payments, optionally filtered by the email query
// parameter (buyer email), newest first. Admin only.
func (pc *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get("email")

	payments, err := pc.Payments.Find(r.Context(), userEmail)
	if err != nil {
		logrus.WithError(err).Error("payment list failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to fetch payments"})
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": payments})
}

type checkoutRequest struct {
	CartID        string  `json:"cartId"`
	UserEmail     string  `json:"userEmail"`
	SellerEmail   string  `json:"sellerEmail"`
	PriceTk       float64 `json:"priceTk"`
	TransactionID string  `json:"transactionId"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Create records a completed payment and marks the referenced cart item
// paid, as one unit of work. Replaying the call with the same
// transactionId returns the already-recorded payment without writing a
// second document.
func (pc *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid input"})
		return
	}

	cartID, err := primitive.ObjectIDFromHex(req.CartID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid cart ID"})
		return
	}
	if req.TransactionID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "Transaction ID is required"})
		return
	}

	payment := models.Payment{
		CartID:        cartID,
		UserEmail:     req.UserEmail,
		SellerEmail:   req.SellerEmail,
		PriceTk:       req.PriceTk,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Status:        "success",
	}

	result, err := pc.Checkout.Complete(r.Context(), cartID, &payment)
	if err != nil {
		logrus.WithError(err).Error("checkout failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Payment processing failed"})
		return
	}

	if pc.Mailer != nil && !result.Replayed {
		payment.ID = result.PaymentID
		go func(p models.Payment) {
			if err := pc.Mailer.SendPaymentReceipt(p.UserEmail, p); err != nil {
				logrus.WithError(err).Warn("payment receipt email failed")
			}
		}(payment)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"insertedId": result.PaymentID,
		"message":    "Payment saved successfully",
	})
}

// CreateIntent asks the payment gateway for a payment intent and returns
// the client secret. A non-positive amount is rejected before the
// gateway is touched.
func (pc *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AmountCents int64 `json:"amountCents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if body.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid payment amount")
		return
	}

	clientSecret, err := pc.Intents.CreateIntent(r.Context(), body.AmountCents)
	if err != nil {
		logrus.WithError(err).Error("payment intent creation failed")
		writeError(w, http.StatusInternalServerError, "Failed to create payment intent")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}
