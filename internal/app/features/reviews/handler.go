// internal/app/features/reviews/handler.go
package reviews

import (
	"context"

	productstore "github.com/JayanshJR7/novara-api/internal/app/store/products"
	reviewstore "github.com/JayanshJR7/novara-api/internal/app/store/reviews"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns review submission and moderation. Reviews are invisible
// until approved; approval and removal recompute the product's rating.
type Handler struct {
	Reviews  *reviewstore.Store
	Products *productstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Reviews:  reviewstore.New(db),
		Products: productstore.New(db),
		Log:      logger,
	}
}

// refreshRating recomputes the approved-review aggregate onto the product.
// Failures are logged; the rating will self-correct on the next change.
func (h *Handler) refreshRating(ctx context.Context, productID primitive.ObjectID) {
	avg, count, err := h.Reviews.Aggregate(ctx, productID)
	if err != nil {
		h.Log.Warn("rating aggregate failed", zap.String("product_id", productID.Hex()), zap.Error(err))
		return
	}
	if err := h.Products.SetRating(ctx, productID, avg, count); err != nil {
		h.Log.Warn("rating write failed", zap.String("product_id", productID.Hex()), zap.Error(err))
	}
}
