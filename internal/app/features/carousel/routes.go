// internal/app/features/carousel/routes.go
package carousel

import (
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public slide list.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeActive)
	return r
}

// AdminRoutes mounts the back-office slide CRUD.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireAdmin)

	r.Get("/", h.ServeAdminList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
