// internal/app/store/tokens/tokenstore.go
package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrTokenNotFound = errors.New("token not found or expired")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tokens")}
}

// Issue mints an opaque bearer token for the user. Two uuids back to back
// give 256 bits of entropy; the value is never derived from user data.
func (s *Store) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	tok := models.Token{
		ID:        primitive.NewObjectID(),
		Token:     uuid.NewString() + uuid.NewString(),
		UserID:    uid,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, tok); err != nil {
		return "", err
	}
	return tok.Token, nil
}

// Lookup resolves a bearer token to its record. Expired tokens are treated
// as missing even before the TTL reaper removes them.
func (s *Store) Lookup(ctx context.Context, token string) (models.Token, error) {
	var rec models.Token
	err := s.c.FindOne(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Token{}, ErrTokenNotFound
	}
	if err != nil {
		return models.Token{}, err
	}
	return rec, nil
}

// Revoke deletes the token. Unknown tokens are a no-op.
func (s *Store) Revoke(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"token": token})
	return err
}

// RevokeAllForUser deletes every token the user holds (password change,
// account deletion).
func (s *Store) RevokeAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
