// internal/app/features/wishlist/routes.go
package wishlist

import (
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the wishlist endpoints (typically under "/api/wishlist").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeWishlist)
	r.Post("/{productID}", h.HandleAdd)
	r.Delete("/{productID}", h.HandleRemove)

	return r
}
