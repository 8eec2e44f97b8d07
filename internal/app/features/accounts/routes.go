// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints (typically under "/api/auth" from
// bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)

	r.Get("/google", h.ServeGoogleLogin)
	r.Get("/google/callback", h.ServeGoogleCallback)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/me", h.HandleMe)
	})

	return r
}
