package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", h.Health)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{productId}", h.GetProduct)
		r.Put("/{productId}", h.UpdateProduct)
		r.Put("/{productId}/stock", h.SetStock)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.CreateOrGetUser)
		r.Get("/", h.GetUserByEmail)
		r.Get("/{userId}/orders", h.ListOrdersByUser)
	})

	r.Route("/api/cart/{userId}", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddCartItem)
		r.Delete("/items", h.RemoveCartItem)
		r.Delete("/", h.ClearCart)
		r.Post("/checkout", h.Checkout)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/{orderId}", h.GetOrder)
		r.Post("/{orderId}/status", h.AdvanceOrderStatus)
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "ordering",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
