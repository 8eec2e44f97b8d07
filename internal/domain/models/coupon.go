package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a promotional code. CodeCI backs the unique index; UsedCount is
// incremented when an order carrying the code is created, never on a bare
// validation call.
type Coupon struct {
	ID             primitive.ObjectID `bson:"_id"`
	Code           string             `bson:"code"`
	CodeCI         string             `bson:"code_ci"` // ← always stored
	DiscountType   string             `bson:"discount_type"`
	DiscountValue  float64            `bson:"discount_value"`
	MinOrderAmount float64            `bson:"min_order_amount"`
	MaxDiscount    float64            `bson:"max_discount,omitempty"` // 0 = uncapped
	ExpiresAt      time.Time          `bson:"expires_at"`
	UsageLimit     int                `bson:"usage_limit,omitempty"` // 0 = unlimited
	UsedCount      int                `bson:"used_count"`
	Active         bool               `bson:"active"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}
