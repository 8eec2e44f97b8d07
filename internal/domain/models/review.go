package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a customer product review. Comment is sanitized HTML; only
// approved reviews are shown on the storefront or counted toward ratings.
type Review struct {
	ID         primitive.ObjectID `bson:"_id"`
	ProductID  primitive.ObjectID `bson:"product_id"`
	UserID     primitive.ObjectID `bson:"user_id"`
	AuthorName string             `bson:"author_name"`
	Rating     int                `bson:"rating"` // 1..5
	Comment    string             `bson:"comment,omitempty"`
	Approved   bool               `bson:"approved"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}
