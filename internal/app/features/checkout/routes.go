// internal/app/features/checkout/routes.go
package checkout

import (
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// PaymentRoutes mounts the gateway reconciliation endpoints (typically
// under "/api/payment").
func PaymentRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/orders", h.HandleCreateGatewayOrder)
	r.Post("/verify", h.HandleVerifyPayment)
	r.Post("/failure", h.HandlePaymentFailure)

	return r
}
