// internal/app/features/orders/routes.go
package orders

import (
	"github.com/JayanshJR7/novara-api/internal/app/features/checkout"
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the customer order endpoints (typically under
// "/api/orders"). Order placement lives in the checkout feature but shares
// this subtree, so its handler is mounted here.
func Routes(h *Handler, co *checkout.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", co.HandleCreateOrder)
	r.Get("/", h.ServeMine)
	r.Get("/{id}", h.ServeDetail)
	r.Put("/{id}/cancel", h.HandleCancel)

	return r
}

// AdminRoutes mounts the back-office order list and fulfilment pipeline.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireAdmin)

	r.Get("/", h.ServeAdminList)
	r.Put("/{id}/status", h.HandleUpdateStatus)

	return r
}
