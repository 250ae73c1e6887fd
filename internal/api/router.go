package api

import (
	"net/http"

	"fantasy-books/internal/logger"
	"fantasy-books/internal/metrics"
	"fantasy-books/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const adminLoginPath = "/admin/login"

// NewRouter wires every route. Admin routes are only mounted when the admin
// config is complete.
func NewRouter(h *Handler, limiter *middleware.RateLimiter, allowedOrigin string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(allowedOrigin))
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.ListBooks)
		r.Get("/stats", h.BookStats)
		r.Get("/search", h.SearchBooks)
		r.Get("/{id}", h.GetBook)
	})
	r.Get("/genres", h.ListGenres)
	r.Get("/genres/{genre}/books", h.BooksByGenre)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Get("/summary", h.CartSummary)
		r.Get("/badge", h.CartBadge)
		r.Post("/items", h.AddCartItem)
		r.Route("/items/{bookId}", func(r chi.Router) {
			r.Put("/", h.UpdateCartItem)
			r.Delete("/", h.RemoveCartItem)
			r.Post("/increase", h.IncreaseCartItem)
			r.Post("/decrease", h.DecreaseCartItem)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/track", h.TrackOrders)
		r.Get("/{id}", h.GetOrder)
	})

	if h.admin.enabled() {
		r.Post(adminLoginPath, h.AdminLogin)
		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(middleware.AdminOnly(h.admin.JWTSecret))
			r.Get("/", h.AdminListOrders)
			r.Get("/stats", h.AdminOrderStats)
			r.Patch("/{id}/status", h.AdminUpdateOrderStatus)
		})
	}

	return r
}

// StrictPaths are the routes the rate limiter should hold to the strict tier.
func StrictPaths() []string {
	return []string{adminLoginPath}
}
