// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts the moderation queue (typically under
// "/api/admin/reviews"). Review submission is mounted on the product
// subtree by the products feature.
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireAdmin)

	r.Get("/", h.ServeModerationQueue)
	r.Put("/{id}/approve", h.HandleApprove)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
