// internal/app/features/orders/handler.go
package orders

import (
	orderstore "github.com/JayanshJR7/novara-api/internal/app/store/orders"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the order read endpoints (customer history and admin list)
// and status changes after checkout: customer cancellation and the admin
// fulfilment pipeline.
type Handler struct {
	Orders *orderstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Orders: orderstore.New(db),
		Log:    logger,
	}
}
