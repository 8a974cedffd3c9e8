package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tshirt-shop/auth"
	"tshirt-shop/controllers"
	"tshirt-shop/middleware"
	"tshirt-shop/models"
	"tshirt-shop/routes"
	"tshirt-shop/store"
)

// In-memory stand-ins for the mongo gateways, enough to drive the
// handlers through the real router.

type memUsers struct {
	docs []models.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range m.docs {
		if m.docs[i].Email == email {
			u := m.docs[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) SearchByEmail(_ context.Context, term string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.docs {
		if strings.Contains(strings.ToLower(u.Email), strings.ToLower(term)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) All(ctx context.Context) ([]models.User, error) {
	return m.SearchByEmail(ctx, "")
}

func (m *memUsers) InsertIfAbsent(ctx context.Context, user *models.User) (store.InsertResult, error) {
	if _, err := m.FindByEmail(ctx, user.Email); err == nil {
		return store.InsertResult{}, nil
	}
	user.ID = primitive.NewObjectID()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.docs = append(m.docs, *user)
	id := user.ID
	return store.InsertResult{InsertedID: &id}, nil
}

func (m *memUsers) SetRole(_ context.Context, id primitive.ObjectID, role string) (store.UpdateResult, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			res := store.UpdateResult{MatchedCount: 1}
			if m.docs[i].Role != role {
				res.ModifiedCount = 1
			}
			m.docs[i].Role = role
			return res, nil
		}
	}
	return store.UpdateResult{}, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, email, name, profilePic string) (store.UpdateResult, error) {
	for i := range m.docs {
		if m.docs[i].Email == email {
			m.docs[i].Name = name
			m.docs[i].ProfilePic = profilePic
			return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return store.UpdateResult{}, nil
}

type memCarts struct {
	docs []models.CartItem
}

func (m *memCarts) FindByID(_ context.Context, id primitive.ObjectID) (*models.CartItem, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			item := m.docs[i]
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memCarts) FindByUser(_ context.Context, email string) ([]models.CartItem, error) {
	out := []models.CartItem{}
	for _, item := range m.docs {
		if item.UserEmail == email {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memCarts) InsertIfAbsent(_ context.Context, item *models.CartItem) (store.InsertResult, error) {
	for _, existing := range m.docs {
		if existing.UserEmail == item.UserEmail && existing.TShirtID == item.TShirtID {
			return store.InsertResult{}, nil
		}
	}
	item.ID = primitive.NewObjectID()
	if item.Status == "" {
		item.Status = models.CartStatusPending
	}
	m.docs = append(m.docs, *item)
	id := item.ID
	return store.InsertResult{InsertedID: &id}, nil
}

func (m *memCarts) SetQuantity(_ context.Context, id primitive.ObjectID, quantity int) (store.UpdateResult, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs[i].Quantity = quantity
			return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return store.UpdateResult{}, nil
}

func (m *memCarts) Delete(_ context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return store.DeleteResult{}, nil
}

func (m *memCarts) DeleteByUser(_ context.Context, email string) (store.DeleteResult, error) {
	kept := m.docs[:0]
	deleted := int64(0)
	for _, item := range m.docs {
		if item.UserEmail == email {
			deleted++
		} else {
			kept = append(kept, item)
		}
	}
	m.docs = kept
	return store.DeleteResult{DeletedCount: deleted}, nil
}

type memProducts struct {
	docs []models.Product
}

func (m *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			p := m.docs[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memProducts) Find(_ context.Context, sellerEmail string) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range m.docs {
		if sellerEmail == "" || p.SellerEmail == sellerEmail {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Insert(_ context.Context, product *models.Product) (store.InsertResult, error) {
	product.ID = primitive.NewObjectID()
	m.docs = append(m.docs, *product)
	id := product.ID
	return store.InsertResult{InsertedID: &id}, nil
}

func (m *memProducts) Update(_ context.Context, id primitive.ObjectID, fields map[string]any) (store.UpdateResult, error) {
	for i := range m.docs {
		if m.docs[i].ID != id {
			continue
		}
		p := &m.docs[i]
		for k, v := range fields {
			switch k {
			case "title":
				p.Title = v.(string)
			case "price":
				p.Price = v.(float64)
			case "discount":
				p.Discount = v.(float64)
			case "discountPrice":
				p.DiscountPrice = v.(float64)
			case "quantity":
				p.Quantity = v.(int64)
			case "description":
				p.Description = v.(string)
			case "color":
				p.Color = v.(string)
			case "size":
				p.Size = v.(string)
			case "category":
				p.Category = v.(string)
			case "brand":
				p.Brand = v.(string)
			case "stockStatus":
				p.StockStatus = v.(string)
			case "image":
				p.Image = v.(string)
			}
		}
		return store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return store.UpdateResult{}, nil
}

func (m *memProducts) Delete(_ context.Context, id primitive.ObjectID) (store.DeleteResult, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return store.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return store.DeleteResult{}, nil
}

type memPayments struct {
	docs []models.Payment
}

func (m *memPayments) FindByID(_ context.Context, id primitive.ObjectID) (*models.Payment, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			p := m.docs[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memPayments) FindBySeller(_ context.Context, sellerEmail string) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range m.docs {
		if p.SellerEmail == sellerEmail {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memPayments) Find(_ context.Context, userEmail string) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range m.docs {
		if userEmail == "" || p.UserEmail == userEmail {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(payments []models.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}

type memCheckout struct {
	carts    *memCarts
	payments *memPayments
}

func (m *memCheckout) Complete(_ context.Context, cartID primitive.ObjectID, payment *models.Payment) (store.CheckoutResult, error) {
	for _, existing := range m.payments.docs {
		if existing.TransactionID == payment.TransactionID {
			return store.CheckoutResult{PaymentID: existing.ID, Replayed: true}, nil
		}
	}

	matched := int64(0)
	for i := range m.carts.docs {
		if m.carts.docs[i].ID == cartID {
			m.carts.docs[i].Status = models.CartStatusPaid
			m.carts.docs[i].TransactionID = payment.TransactionID
			matched = 1
		}
	}

	payment.ID = primitive.NewObjectID()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	m.payments.docs = append(m.payments.docs, *payment)
	return store.CheckoutResult{Matched: matched, PaymentID: payment.ID}, nil
}

type fakeIntents struct {
	calls  int
	secret string
}

func (f *fakeIntents) CreateIntent(_ context.Context, amountCents int64) (string, error) {
	f.calls++
	return f.secret, nil
}

// env wires the fakes into the real router with the real guards.
type env struct {
	users    *memUsers
	carts    *memCarts
	products *memProducts
	payments *memPayments
	intents  *fakeIntents
	verifier *auth.HMACVerifier
	router   *mux.Router
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		users:    &memUsers{},
		carts:    &memCarts{},
		products: &memProducts{},
		payments: &memPayments{},
		intents:  &fakeIntents{secret: "pi_test_secret"},
		verifier: auth.NewHMACVerifier("test-secret"),
	}
	checkout := &memCheckout{carts: e.carts, payments: e.payments}

	guard := middleware.NewAuth(e.verifier, e.users)
	e.router = mux.NewRouter()
	routes.RegisterRoutes(e.router, guard,
		controllers.NewUserController(e.users),
		controllers.NewCartController(e.carts),
		controllers.NewProductController(e.products),
		controllers.NewPaymentController(e.payments, checkout, e.intents, nil),
	)
	return e
}

func (e *env) token(t *testing.T, email string) string {
	t.Helper()
	token, err := e.verifier.Issue(&auth.Principal{UID: "uid-" + email, Email: email}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (e *env) seedUser(email, role string) models.User {
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	e.users.docs = append(e.users.docs, user)
	return user
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
