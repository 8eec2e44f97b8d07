// internal/app/features/coupons/validate.go
package coupons

import (
	"context"
	"errors"
	"net/http"
	"time"

	couponstore "github.com/JayanshJR7/novara-api/internal/app/store/coupons"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/pricing"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/coupons/validate                                                   |
| Validates a code against the cart subtotal and quotes the full price         |
| breakdown. Does NOT consume a use; usage is counted at order creation.       |
*─────────────────────────────────────────────────────────────────────────────*/

type validateRequest struct {
	Code        string  `json:"code"`
	OrderAmount float64 `json:"order_amount"`
}

type validatedCoupon struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

type validateResponse struct {
	Valid          bool            `json:"valid"`
	Coupon         validatedCoupon `json:"coupon"`
	DeliveryCharge float64         `json:"delivery_charge"`
	FinalAmount    float64         `json:"final_amount"`
}

func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderAmount <= 0 {
		respond.Error(w, http.StatusBadRequest, "order amount must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cp, err := h.Coupons.GetByCode(ctx, req.Code)
	if errors.Is(err, couponstore.ErrCouponNotFound) {
		respond.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("coupon lookup failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not validate coupon")
		return
	}

	discount, err := couponstore.Validate(cp, req.OrderAmount, time.Now().UTC())
	if err != nil {
		// Validation failures are expected shopper input, 422 with the reason.
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respond.JSON(w, http.StatusOK, validateResponse{
		Valid:          true,
		Coupon:         validatedCoupon{Code: cp.Code, Discount: discount},
		DeliveryCharge: pricing.DeliveryCharge(req.OrderAmount),
		FinalAmount:    pricing.FinalTotal(req.OrderAmount, discount),
	})
}
