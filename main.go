// main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tshirt-shop/auth"
	"tshirt-shop/controllers"
	"tshirt-shop/gateway"
	"tshirt-shop/middleware"
	"tshirt-shop/routes"
	"tshirt-shop/store"
	"tshirt-shop/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Proceeding with environment variables.")
	}

	// Connect to MongoDB
	uri := fmt.Sprintf("mongodb+srv://%s:%s@%s/?appName=Cluster0",
		url.QueryEscape(os.Getenv("DB_USER")),
		url.QueryEscape(os.Getenv("DB_PASS")),
		os.Getenv("DB_HOST"),
	)
	client, err := utils.ConnectDB(uri)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}

	db := client.Database("tShirtDB")
	usersStore := store.NewUsers(db)
	cartsStore := store.NewCarts(db)
	productsStore := store.NewProducts(db)
	paymentsStore := store.NewPayments(db)
	checkout := store.NewCheckout(client, db)

	// Identity provider: Firebase in production, HMAC tokens when only a
	// shared secret is configured (local development).
	var verifier auth.Verifier
	if encodedKey := os.Getenv("FB_service_Key"); encodedKey != "" {
		verifier, err = auth.NewFirebaseVerifier(context.Background(), encodedKey, os.Getenv("FB_project_id"))
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize Firebase")
		}
	} else if secret := os.Getenv("JWT_SECRET"); secret != "" {
		logrus.Warn("FB_service_Key not set; verifying tokens with JWT_SECRET")
		verifier = auth.NewHMACVerifier(secret)
	} else {
		logrus.Fatal("Either FB_service_Key or JWT_SECRET must be set")
	}

	stripeGateway := gateway.NewStripe(os.Getenv("DB_payment_key"))

	var mailer controllers.Mailer
	if token := os.Getenv("POSTMARK_API_TOKEN"); token != "" {
		mailer = utils.NewEmailService(token, os.Getenv("EMAIL_SENDER"))
	}

	// Initialize guards and controllers
	guard := middleware.NewAuth(verifier, usersStore)
	userController := controllers.NewUserController(usersStore)
	cartController := controllers.NewCartController(cartsStore)
	productController := controllers.NewProductController(productsStore)
	paymentController := controllers.NewPaymentController(paymentsStore, checkout, stripeGateway, mailer)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, guard, userController, cartController, productController, paymentController)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: corsHandler,
	}

	go func() {
		logrus.Infof("Server running on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown failed")
	}
	if err := client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("MongoDB disconnect failed")
	}
	logrus.Info("Server stopped")
}
