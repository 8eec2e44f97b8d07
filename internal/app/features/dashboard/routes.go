// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the dashboard (typically under "/api/admin/dashboard").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireAdmin)
	r.Get("/", h.Serve)
	return r
}
