package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	"storefront-api/internal/metrics"
	"storefront-api/internal/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.OptionHandler
	Brand    *handler.OptionHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Health   *handler.HealthHandler
	Static   http.Handler
}

// New wires the dispatcher. Every resource group except /auth sits behind the
// token gate; role checks happen in the services.
func New(cfg *config.Config, gate *middleware.Gate, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, cfg.TrustProxyHeaders)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)
	r.Use(gate.LoadSession)

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/login", h.Auth.Login)
		auth.Post("/signup", h.Auth.Signup)
		auth.With(gate.RequireToken).Get("/check", h.Auth.Check)
		auth.Get("/session", h.Auth.Session)
		auth.Post("/logout", h.Auth.Logout)
	})

	r.Post("/create-payment-intent", h.Payment.CreateIntent)

	r.Group(func(protected chi.Router) {
		protected.Use(gate.RequireToken)

		protected.Route("/products", func(products chi.Router) {
			products.Get("/", h.Product.List)
			products.Post("/", h.Product.Create)
			products.Get("/{id}", h.Product.Get)
			products.Patch("/{id}", h.Product.Update)
		})

		protected.Route("/categories", func(categories chi.Router) {
			categories.Get("/", h.Category.List)
			categories.Post("/", h.Category.Create)
		})

		protected.Route("/brands", func(brands chi.Router) {
			brands.Get("/", h.Brand.List)
			brands.Post("/", h.Brand.Create)
		})

		protected.Route("/users", func(users chi.Router) {
			users.Get("/own", h.User.Own)
			users.Patch("/{id}", h.User.Update)
		})

		protected.Route("/cart", func(cart chi.Router) {
			cart.Get("/", h.Cart.List)
			cart.Post("/", h.Cart.Add)
			cart.Patch("/{id}", h.Cart.Update)
			cart.Delete("/{id}", h.Cart.Remove)
		})

		protected.Route("/orders", func(orders chi.Router) {
			orders.Get("/", h.Order.List)
			orders.Post("/", h.Order.Place)
			orders.Get("/own", h.Order.Own)
			orders.Patch("/{id}", h.Order.Update)
			orders.Delete("/{id}", h.Order.Delete)
		})
	})

	if h.Static != nil {
		r.NotFound(h.Static.ServeHTTP)
	}

	return r
}
