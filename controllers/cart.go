package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tshirt-shop/models"
	"tshirt-shop/store"
)

// CartController handles cart-related requests
type CartController struct {
	Carts store.Carts
}

// NewCartController creates a new CartController
func NewCartController(carts store.Carts) *CartController {
	return &CartController{Carts: carts}
}

// Get returns a single cart item by id.
func (cc *CartController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart ID")
		return
	}

	item, err := cc.Carts.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("cart item fetch failed")
		writeError(w, http.StatusInternalServerError, "Failed to fetch cart item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Add puts a product into the user's cart. Idempotent by the
// (userEmail, tShirtId) pair: a duplicate add returns the no-op signal
// and never creates a second row.
func (cc *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if item.UserEmail == "" || item.TShirtID == "" {
		writeError(w, http.StatusBadRequest, "userEmail and tShirtId are required")
		return
	}

	result, err := cc.Carts.InsertIfAbsent(r.Context(), &item)
	if err != nil {
		logrus.WithError(err).Error("cart insert failed")
		writeError(w, http.StatusInternalServerError, "Error adding to cart")
		return
	}
	if result.InsertedID == nil {
		noopInsert(w, "Item already in cart")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListByUser returns the cart items whose userEmail exactly matches the
// query parameter.
func (cc *CartController) ListByUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("userEmail")

	items, err := cc.Carts.FindByUser(r.Context(), email)
	if err != nil {
		logrus.WithError(err).Error("cart list failed")
		writeError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// SetQuantity updates the quantity of a cart item.
func (cc *CartController) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart ID")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	result, err := cc.Carts.SetQuantity(r.Context(), id, body.Quantity)
	if err != nil {
		logrus.WithError(err).Error("cart quantity update failed")
		writeError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Delete removes a single cart item by id.
func (cc *CartController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cart ID")
		return
	}

	result, err := cc.Carts.Delete(r.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("cart delete failed")
		writeError(w, http.StatusInternalServerError, "Error deleting cart item")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteByUser removes every cart item belonging to the path email,
// e.g. for post-checkout cleanup. Repeat calls delete zero more.
func (cc *CartController) DeleteByUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	result, err := cc.Carts.DeleteByUser(r.Context(), email)
	if err != nil {
		logrus.WithError(err).Error("cart bulk delete failed")
		writeError(w, http.StatusInternalServerError, "Error clearing cart")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
