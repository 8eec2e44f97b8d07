// internal/app/features/products/handler.go
package products

import (
	categorystore "github.com/JayanshJR7/novara-api/internal/app/store/categories"
	productstore "github.com/JayanshJR7/novara-api/internal/app/store/products"
	reviewstore "github.com/JayanshJR7/novara-api/internal/app/store/reviews"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the storefront catalog endpoints and the admin product CRUD.
type Handler struct {
	Products   *productstore.Store
	Categories *categorystore.Store
	Reviews    *reviewstore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Products:   productstore.New(db),
		Categories: categorystore.New(db),
		Reviews:    reviewstore.New(db),
		Log:        logger,
	}
}
