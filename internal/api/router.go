package api

import (
	"net/http"

	"neoverse-be/internal/cart"
	"neoverse-be/internal/config"
	"neoverse-be/internal/logger"
	"neoverse-be/internal/metrics"
	"neoverse-be/internal/middleware"
	"neoverse-be/internal/order"
	"neoverse-be/internal/payment"
	"neoverse-be/internal/product"
	"neoverse-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Deps collects everything the HTTP layer needs. The transport owns no state
// of its own.
type Deps struct {
	Cfg      *config.Config
	Users    user.Service
	UserRepo user.Repository
	Products product.Service
	Carts    cart.Service
	Orders   order.Service
	Gateway  payment.Gateway
}

func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(CORS(d.Cfg.CORSOrigins))
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("NeoVerse Market API is running!"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	products := &ProductHandler{products: d.Products}
	users := &UserHandler{users: d.Users}
	carts := &CartHandler{carts: d.Carts}
	orders := &OrderHandler{orders: d.Orders}
	checkout := &CheckoutHandler{gateway: d.Gateway}

	r.Route("/api", func(api chi.Router) {
		// Public catalog surface
		api.Get("/products", products.list)
		api.Get("/products/categories", products.categories)
		api.Get("/products/category/{category}", products.byCategory)
		api.Get("/products/search", products.search)
		api.Get("/products/{id}", products.get)
		api.Get("/all-categories", products.categories)
		api.Get("/product-count", products.count)
		api.Post("/seed-products", products.seed)

		api.Post("/auth/register", users.register)
		api.Post("/auth/login", users.login)

		api.Group(func(auth chi.Router) {
			auth.Use(middleware.Authenticate)

			auth.Post("/auth/logout", users.logout)

			auth.Get("/user/profile", users.profile)
			auth.Put("/user/profile", users.updateProfile)
			auth.Post("/user/change-password", users.changePassword)
			auth.Get("/user/orders", orders.listMine)

			auth.Get("/user/cart", carts.get)
			auth.Post("/user/cart", carts.add)
			auth.Put("/user/cart", carts.update)
			auth.Delete("/user/cart", carts.clear)

			auth.Post("/checkout/create-payment-intent", checkout.createPaymentIntent)

			auth.Post("/orders", orders.create)
			auth.Get("/orders/{id}", orders.get)
			auth.Post("/orders/{id}/cancel", orders.cancel)

			auth.Route("/admin", func(admin chi.Router) {
				admin.Use(middleware.AdminRequired(d.UserRepo))

				admin.Get("/products", products.adminList)
				admin.Post("/products", products.adminCreate)
				admin.Put("/products/{id}", products.adminUpdate)
				admin.Delete("/products/{id}", products.adminDelete)

				admin.Get("/orders", orders.adminList)
				admin.Put("/orders/{id}", orders.adminUpdateStatus)

				admin.Get("/users", users.adminList)
				admin.Put("/users/{id}", users.adminUpdateRole)
				admin.Post("/make-admin/{id}", users.makeAdmin)
			})
		})
	})

	return r
}
