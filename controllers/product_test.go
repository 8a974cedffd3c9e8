package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tshirt-shop/models"
)

func TestCreateProductDerivesDiscountPrice(t *testing.T) {
	e := newEnv(t)
	token := e.token(t, "seller@example.com")

	rec := e.do(t, http.MethodPost, "/tShirts", token, map[string]any{
		"title":       "Plain Tee",
		"price":       100,
		"discount":    10,
		"quantity":    5,
		"sellerEmail": "seller@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, e.products.docs, 1)
	p := e.products.docs[0]
	assert.Equal(t, 100.0, p.Price)
	assert.Equal(t, 10.0, p.Discount)
	assert.Equal(t, 100.0-100.0*(10.0/100), p.DiscountPrice)
	assert.EqualValues(t, 5, p.Quantity)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreateProductAcceptsNumericStrings(t *testing.T) {
	e := newEnv(t)
	token := e.token(t, "seller@example.com")

	rec := e.do(t, http.MethodPost, "/tShirts", token, map[string]any{
		"title":    "String Priced",
		"price":    "49.99",
		"discount": "20",
		"quantity": "3",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	p := e.products.docs[0]
	assert.Equal(t, 49.99, p.Price)
	assert.InDelta(t, 49.99-49.99*0.2, p.DiscountPrice, 1e-9)
}

func TestCreateProductRejectsNonNumericPrice(t *testing.T) {
	e := newEnv(t)
	token := e.token(t, "seller@example.com")

	rec := e.do(t, http.MethodPost, "/tShirts", token, map[string]any{
		"title": "Bad",
		"price": "cheap",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, e.products.docs)
}

func TestCreateProductRequiresAuth(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodPost, "/tShirts", "", map[string]any{"title": "T", "price": 10})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProductsOptionallyFiltersBySeller(t *testing.T) {
	e := newEnv(t)
	e.products.docs = []models.Product{
		{ID: primitive.NewObjectID(), Title: "A", SellerEmail: "s1@example.com"},
		{ID: primitive.NewObjectID(), Title: "B", SellerEmail: "s2@example.com"},
	}

	rec := e.do(t, http.MethodGet, "/tShirts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Product
	require.NoError(t, jsonDecode(rec, &all))
	assert.Len(t, all, 2)

	rec = e.do(t, http.MethodGet, "/tShirts?sellerEmail=s1@example.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Product
	require.NoError(t, jsonDecode(rec, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "A", mine[0].Title)
}

func TestPatchPriceAloneKeepsDiscountPrice(t *testing.T) {
	e := newEnv(t)
	id := primitive.NewObjectID()
	e.products.docs = []models.Product{{
		ID: id, Title: "Tee", Price: 100, Discount: 10, DiscountPrice: 90,
	}}

	rec := e.do(t, http.MethodPatch, "/tShirts/"+id.Hex(), "", map[string]any{"price": 120})
	require.Equal(t, http.StatusOK, rec.Code)

	p := e.products.docs[0]
	assert.Equal(t, 120.0, p.Price)
	assert.Equal(t, 90.0, p.DiscountPrice, "discountPrice stays until price and discount arrive together")
}

func TestPatchPriceAndDiscountRecomputes(t *testing.T) {
	e := newEnv(t)
	id := primitive.NewObjectID()
	e.products.docs = []models.Product{{
		ID: id, Title: "Tee", Price: 100, Discount: 10, DiscountPrice: 90,
	}}

	rec := e.do(t, http.MethodPatch, "/tShirts/"+id.Hex(), "", map[string]any{"price": 200, "discount": 50})
	require.Equal(t, http.StatusOK, rec.Code)

	p := e.products.docs[0]
	assert.Equal(t, 200.0, p.Price)
	assert.Equal(t, 50.0, p.Discount)
	assert.Equal(t, 100.0, p.DiscountPrice)
}

func TestPatchIgnoresClientSuppliedDiscountPrice(t *testing.T) {
	e := newEnv(t)
	id := primitive.NewObjectID()
	e.products.docs = []models.Product{{
		ID: id, Title: "Tee", Price: 100, Discount: 10, DiscountPrice: 90,
	}}

	rec := e.do(t, http.MethodPatch, "/tShirts/"+id.Hex(), "", map[string]any{"discountPrice": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 90.0, e.products.docs[0].DiscountPrice)
}

func TestDeleteProductRequiresAuthOnly(t *testing.T) {
	e := newEnv(t)
	id := primitive.NewObjectID()
	e.products.docs = []models.Product{{ID: id, Title: "Tee"}}

	rec := e.do(t, http.MethodDelete, "/tShirts/"+id.Hex(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A plain signed-in user may delete; no admin role needed.
	rec = e.do(t, http.MethodDelete, "/tShirts/"+id.Hex(), e.token(t, "anyone@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["deletedCount"])
	assert.Empty(t, e.products.docs)
}

func TestGetProductMalformedID(t *testing.T) {
	e := newEnv(t)

	rec := e.do(t, http.MethodGet, "/tShirts/123", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
