// internal/app/features/coupons/handler.go
package coupons

import (
	couponstore "github.com/JayanshJR7/novara-api/internal/app/store/coupons"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the shopper-facing coupon validation endpoint and the
// admin coupon CRUD.
type Handler struct {
	Coupons *couponstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Coupons: couponstore.New(db),
		Log:     logger,
	}
}

type couponJSON struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
	MinOrderAmount float64 `json:"min_order_amount"`
	MaxDiscount    float64 `json:"max_discount,omitempty"`
	ExpiresAt      string  `json:"expires_at"`
	UsageLimit     int     `json:"usage_limit,omitempty"`
	UsedCount      int     `json:"used_count"`
	Active         bool    `json:"active"`
}

func toCouponJSON(c models.Coupon) couponJSON {
	return couponJSON{
		ID:             c.ID.Hex(),
		Code:           c.Code,
		DiscountType:   c.DiscountType,
		DiscountValue:  c.DiscountValue,
		MinOrderAmount: c.MinOrderAmount,
		MaxDiscount:    c.MaxDiscount,
		ExpiresAt:      c.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		UsageLimit:     c.UsageLimit,
		UsedCount:      c.UsedCount,
		Active:         c.Active,
	}
}
