// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"tshirt-shop/controllers"
	"tshirt-shop/middleware"
)

// RegisterRoutes sets up all the routes for the application. Literal
// segments (/users/search, /carts/user, /payments/seller) are registered
// before their parameterized siblings so mux matches them first.
func RegisterRoutes(router *mux.Router, guard *middleware.Auth, userController *controllers.UserController, cartController *controllers.CartController, productController *controllers.ProductController, paymentController *controllers.PaymentController) {
	authed := func(h http.HandlerFunc) http.Handler {
		return guard.RequireAuth(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return guard.RequireAuth(guard.RequireAdmin(h))
	}

	// Liveness
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Backend is running..."))
	}).Methods("GET")

	// User routes
	router.Handle("/users/search", admin(userController.Search)).Methods("GET")
	router.Handle("/users/role/{email}", admin(userController.Role)).Methods("GET")
	router.Handle("/users/role/{id}", admin(userController.SetRole)).Methods("PATCH")
	router.HandleFunc("/users", userController.Create).Methods("POST")
	router.Handle("/users", admin(userController.List)).Methods("GET")
	router.HandleFunc("/users/email/{email}", userController.UpdateProfile).Methods("PUT")
	router.HandleFunc("/users/{email}", userController.Get).Methods("GET")

	// Cart routes
	router.HandleFunc("/carts", cartController.Add).Methods("POST")
	router.HandleFunc("/carts", cartController.ListByUser).Methods("GET")
	router.HandleFunc("/carts/user/{email}", cartController.DeleteByUser).Methods("DELETE")
	router.HandleFunc("/carts/{id}", cartController.Get).Methods("GET")
	router.HandleFunc("/carts/{id}", cartController.SetQuantity).Methods("PATCH")
	router.HandleFunc("/carts/{id}", cartController.Delete).Methods("DELETE")

	// Product routes. Create and delete require a signed-in seller but
	// deliberately not the admin check; reads and patches are open.
	router.Handle("/tShirts", authed(productController.Create)).Methods("POST")
	router.HandleFunc("/tShirts", productController.List).Methods("GET")
	router.HandleFunc("/tShirts/{id}", productController.Get).Methods("GET")
	router.HandleFunc("/tShirts/{id}", productController.Update).Methods("PATCH")
	router.Handle("/tShirts/{id}", authed(productController.Delete)).Methods("DELETE")

	// Payment routes
	router.HandleFunc("/payments/seller/{email}", paymentController.BySeller).Methods("GET")
	router.Handle("/payments", admin(paymentController.List)).Methods("GET")
	router.HandleFunc("/payments", paymentController.Create).Methods("POST")
	router.HandleFunc("/payments/{id}", paymentController.Get).Methods("GET")
	router.HandleFunc("/create-payment-intent", paymentController.CreateIntent).Methods("POST")
}
