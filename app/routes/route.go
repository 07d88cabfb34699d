package routes

import (
	"net/http"

	"github.com/amalbenali/glowshop/app/configs"
	"github.com/amalbenali/glowshop/app/handlers"
	"github.com/amalbenali/glowshop/app/middlewares"
	"github.com/amalbenali/glowshop/app/repositories"
	"github.com/amalbenali/glowshop/app/services"
	"github.com/amalbenali/glowshop/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, sessionKeys *configs.SessionKeys) *mux.Router {
	rnd := render.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	shippingRepo := repositories.NewShippingRateRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)

	mailer := services.NewMailer(services.MailerConfig{
		Host:     configs.LoadENV.EmailHost,
		Port:     configs.LoadENV.EmailPort,
		Username: configs.LoadENV.EmailUsername,
		Password: configs.LoadENV.EmailPassword,
		From:     configs.LoadENV.EmailFrom,
	})
	checkoutSvc := services.NewCheckoutService(db, productRepo, shippingRepo, orderRepo, orderItemRepo)
	orderSvc := services.NewOrderService(orderRepo)
	paymentSvc := services.NewPaymentService(configs.MidtransClient, orderRepo)

	productHandler := handlers.NewProductHandler(rnd, productRepo, validate)
	shippingHandler := handlers.NewShippingHandler(rnd, shippingRepo, validate)
	orderHandler := handlers.NewOrderHandler(rnd, checkoutSvc, orderSvc, paymentSvc, validate)
	wishlistHandler := handlers.NewWishlistHandler(rnd, wishlistRepo, productRepo)
	authHandler := handlers.NewAuthHandler(rnd, userRepo, sessionStore, mailer, validate)

	router := mux.NewRouter()
	router.Use(middlewares.SessionUserMiddleware(sessionStore, userRepo))

	api := router.PathPrefix("/api").Subrouter()

	// Public catalog + checkout.
	api.HandleFunc("/products", productHandler.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", productHandler.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/brands", productHandler.ListBrands).Methods(http.MethodGet)
	api.HandleFunc("/shipping-rates", shippingHandler.ListPublicRates).Methods(http.MethodGet)
	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/payments/create", orderHandler.CreatePayment).Methods(http.MethodPost)

	// Account.
	api.HandleFunc("/account/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/account/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/account/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/account/password-reset", authHandler.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/account/password-reset/confirm", authHandler.ConfirmPasswordReset).Methods(http.MethodPost)

	// Authenticated customer area.
	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.RequireAuth)
	authed.HandleFunc("/account/profile", authHandler.Profile).Methods(http.MethodGet)
	authed.HandleFunc("/orders", orderHandler.ListOrders).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods(http.MethodGet)
	authed.HandleFunc("/wishlist", wishlistHandler.ListWishlist).Methods(http.MethodGet)
	authed.HandleFunc("/wishlist/toggle", wishlistHandler.Toggle).Methods(http.MethodPost)
	authed.HandleFunc("/wishlist/{id}", wishlistHandler.Delete).Methods(http.MethodDelete)

	// Admin area, session-authenticated so CSRF protection applies.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.AdminAuthMiddleware)
	admin.Use(csrf.Protect(sessionKeys.AuthKey, csrf.Secure(false), csrf.Path("/")))
	admin.Use(middlewares.CSRFTokenHeader)
	admin.HandleFunc("/products", productHandler.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", productHandler.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", productHandler.DeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/shipping-rates", shippingHandler.ListAdminRates).Methods(http.MethodGet)
	admin.HandleFunc("/shipping-rates", shippingHandler.CreateRate).Methods(http.MethodPost)
	admin.HandleFunc("/shipping-rates/{id}", shippingHandler.UpdateRate).Methods(http.MethodPut)
	admin.HandleFunc("/shipping-rates/{id}", shippingHandler.DeleteRate).Methods(http.MethodDelete)
	admin.HandleFunc("/orders/{id}/status", orderHandler.ChangeStatus).Methods(http.MethodPut)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return router
}
