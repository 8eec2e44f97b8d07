package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem references a live product; prices are never snapshotted here,
// totals are recomputed from the catalog on every read.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	AddedAt   time.Time          `bson:"added_at"`
}

// Cart is owned either by a signed-in user (UserID set) or a guest session
// (SessionID set); exactly one of the two identifies it.
type Cart struct {
	ID        primitive.ObjectID  `bson:"_id"`
	UserID    *primitive.ObjectID `bson:"user_id,omitempty"`
	SessionID string              `bson:"session_id,omitempty"`
	Items     []CartItem          `bson:"items"`
	CreatedAt time.Time           `bson:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

// Wishlist is a user-scoped set of saved products.
type Wishlist struct {
	ID         primitive.ObjectID   `bson:"_id"`
	UserID     primitive.ObjectID   `bson:"user_id"`
	ProductIDs []primitive.ObjectID `bson:"product_ids"`
	CreatedAt  time.Time            `bson:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at"`
}
