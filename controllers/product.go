package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tshirt-shop/models"
	"tshirt-shop/store"
)

// ProductController handles t-shirt listing requests
type ProductController struct {
	Products store.Products
}

// NewProductController creates a new ProductController
func NewProductController(products store.Products) *ProductController {
	return &ProductController{Products: products}
}

// productInput keeps price, discount and quantity as json.Number so
// clients may send them as numbers or numeric strings; anything
// non-numeric is rejected rather than stored.
type productInput struct {
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Discount    json.Number `json:"discount"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Size        string      `json:"size"`
	Quantity    json.Number `json:"quantity"`
	Category    string      `json:"category"`
	Brand       string      `json:"brand"`
	StockStatus string      `json:"stockStatus"`
	SellerEmail string      `json:"sellerEmail"`
	Image       string      `json:"image"`
}

// Create adds a new listing. The discount price is derived server-side
// from price and discount; the client never supplies it.
func (pc *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var input productInput
	if err := dec.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	price, err := input.Price.Float64()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid price")
		return
	}
	discount := 0.0
	if input.Discount != "" {
		if discount, err = input.Discount.Float64(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid discount")
			return
		}
	}
	quantity := int64(0)
	if input.Quantity != "" {
		if quantity, err = input.Quantity.Int64(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid quantity")
			return
		}
	}

	product := models.Product{
		Title:         input.Title,
		Price:         price,
		Discount:      discount,
		DiscountPrice: models.DiscountedPrice(price, discount),
		Description:   input.Description,
		Color:         input.Color,
		Size:          input.Size,
		Quantity:      quantity,
		Category:      input.Category,
		Brand:         input.Brand,
		StockStatus:   input.StockStatus,
		SellerEmail:   input.SellerEmail,
		Image:         input.Image,
		CreatedAt:     time.Now(),
	}

	result, err := pc.Products.Insert(r.Context(), &product)
	if err != nil {
		logrus.WithError(err).Error("product insert failed")
		writeError(w, http.StatusInternalServerError, "Error adding t-shirt")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// List returns all listings, or only a seller's when the sellerEmail
// query parameter is present.
func (pc *ProductController) List(w http.ResponseWriter, r *http.Request) {
	sellerEmail := r.URL.Query().Get("sellerEmail")

	products, err := pc.Products.Find(r.Context(), sellerEmail)
	if err != nil {
		logrus.WithError(err).Error("product list failed")
		writeError(w, http.StatusInternalServerError, "Error fetching t-shirts")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// Get returns a single listing by id.
func (pc *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := pc.Products.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("product fetch failed")
		writeError(w, http.StatusInternalServerError, "Error fetching t-shirt")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Update applies a partial patch. The discount price is recomputed only
// when the patch carries both price and discount; a price change alone
// leaves the stored discountPrice as it was.
func (pc *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	delete(body, "_id")
	delete(body, "discountPrice")

	price, hasPrice := body["price"]
	if hasPrice {
		p, ok := toFloat(price)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid price")
			return
		}
		body["price"] = p
	}
	discount, hasDiscount := body["discount"]
	if hasDiscount {
		d, ok := toFloat(discount)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid discount")
			return
		}
		body["discount"] = d
	}
	if qty, ok := body["quantity"]; ok {
		q, valid := toFloat(qty)
		if !valid {
			writeError(w, http.StatusBadRequest, "Invalid quantity")
			return
		}
		body["quantity"] = int64(q)
	}

	if hasPrice && hasDiscount {
		body["discountPrice"] = models.DiscountedPrice(body["price"].(float64), body["discount"].(float64))
	}

	result, err := pc.Products.Update(r.Context(), id, body)
	if err != nil {
		logrus.WithError(err).Error("product update failed")
		writeError(w, http.StatusInternalServerError, "Update error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Delete removes a listing by id.
func (pc *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result, err := pc.Products.Delete(r.Context(), id)
	if err != nil {
		logrus.WithError(err).Error("product delete failed")
		writeError(w, http.StatusInternalServerError, "Delete error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// toFloat coerces a decoded JSON value to float64. Numeric strings are
// accepted the same way numbers are.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case float64:
		return n, true
	}
	return 0, false
}
