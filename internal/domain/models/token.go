package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token is an opaque bearer token for API clients. Tokens live server-side
// so logout revokes immediately; expired tokens are reaped by a TTL index.
type Token struct {
	ID        primitive.ObjectID `bson:"_id"`
	Token     string             `bson:"token"`
	UserID    primitive.ObjectID `bson:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}
