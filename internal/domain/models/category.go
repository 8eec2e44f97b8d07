package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products for storefront filtering.
type Category struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	NameCI      string             `bson:"name_ci"` // ← always stored
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}
