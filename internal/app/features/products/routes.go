// internal/app/features/products/routes.go
package products

import (
	"github.com/JayanshJR7/novara-api/internal/app/features/reviews"
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public catalog endpoints (typically under
// "/api/products" from bootstrap). Review submission shares the product
// subtree, so its handler is mounted here.
func Routes(h *Handler, rh *reviews.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeDetail)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Post("/{id}/reviews", rh.HandleCreate)
	})

	return r
}

// AdminRoutes mounts the back-office product CRUD (typically under
// "/api/admin/products").
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireAdmin)

	r.Get("/", h.ServeAdminList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeAdminDetail)
	r.Put("/{id}", h.HandleEdit)
	r.Put("/{id}/visibility", h.HandleToggleVisibility)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
