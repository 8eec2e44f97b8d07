// internal/app/features/cart/routes.go
package cart

import "github.com/go-chi/chi/v5"

// Routes mounts the cart endpoints (typically under "/api/cart"). No auth
// middleware here: guests get a session-cookie cart, signed-in users are
// resolved from the bearer token loaded upstream.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeCart)
	r.Delete("/", h.HandleClear)
	r.Post("/items", h.HandleAddItem)
	r.Put("/items/{productID}", h.HandleSetQuantity)
	r.Delete("/items/{productID}", h.HandleRemoveItem)

	return r
}
