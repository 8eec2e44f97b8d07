// internal/app/features/checkout/handler.go
package checkout

import (
	cartstore "github.com/JayanshJR7/novara-api/internal/app/store/carts"
	couponstore "github.com/JayanshJR7/novara-api/internal/app/store/coupons"
	orderstore "github.com/JayanshJR7/novara-api/internal/app/store/orders"
	productstore "github.com/JayanshJR7/novara-api/internal/app/store/products"
	"github.com/JayanshJR7/novara-api/internal/gateway/razorpay"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns order placement and payment reconciliation.
//
// The flow is: the order is created pending with server-computed totals,
// a gateway order is registered against it, and the payment callback is
// verified by signature before anything is marked paid. A failed or
// abandoned payment leaves the order pending for retry.
type Handler struct {
	Orders        *orderstore.Store
	Products      *productstore.Store
	Coupons       *couponstore.Store
	Carts         *cartstore.Store
	Gateway       razorpay.Gateway
	GatewaySecret string
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, gw razorpay.Gateway, gatewaySecret string, logger *zap.Logger) *Handler {
	return &Handler{
		Orders:        orderstore.New(db),
		Products:      productstore.New(db),
		Coupons:       couponstore.New(db),
		Carts:         cartstore.New(db),
		Gateway:       gw,
		GatewaySecret: gatewaySecret,
		Log:           logger,
	}
}
