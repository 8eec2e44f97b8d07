package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product includes case/diacritic-insensitive fields for search/sort.
// Price is in rupees. Description is sanitized HTML.
type Product struct {
	ID          primitive.ObjectID  `bson:"_id"`
	Name        string              `bson:"name"`
	NameCI      string              `bson:"name_ci"` // ← always stored
	SKU         string              `bson:"sku,omitempty"`
	Description string              `bson:"description,omitempty"`
	Price       float64             `bson:"price"`
	CategoryID  *primitive.ObjectID `bson:"category_id,omitempty"`
	Images      []string            `bson:"images,omitempty"`
	Material    string              `bson:"material,omitempty"` // e.g. "gold", "silver"
	Stock       int                 `bson:"stock"`
	Active      bool                `bson:"active"`
	Rating      float64             `bson:"rating"`       // average of approved reviews
	ReviewCount int                 `bson:"review_count"` // approved reviews only
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
}

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.Active && p.Stock > 0
}
