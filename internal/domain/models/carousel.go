package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarouselSlide is a home-page banner managed from the back office.
// The storefront shows active slides ordered by Position.
type CarouselSlide struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Subtitle  string             `bson:"subtitle,omitempty"`
	ImageURL  string             `bson:"image_url"`
	LinkURL   string             `bson:"link_url,omitempty"`
	Position  int                `bson:"position"`
	Active    bool               `bson:"active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}
