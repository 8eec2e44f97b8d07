// internal/app/store/wishlists/wishliststore.go
package wishliststore

import (
	"context"
	"errors"
	"time"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("wishlists")}
}

// Get returns the user's wishlist, or an empty one if none exists yet.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (models.Wishlist, error) {
	var w models.Wishlist
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Wishlist{UserID: userID, ProductIDs: []primitive.ObjectID{}}, nil
	}
	if err != nil {
		return models.Wishlist{}, err
	}
	return w, nil
}

// Add saves a product to the wishlist. $addToSet makes repeats a no-op.
func (s *Store) Add(ctx context.Context, userID, productID primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$addToSet":    bson.M{"product_ids": productID},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID(), "created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

// Remove drops a product from the wishlist. Unknown products are a no-op.
func (s *Store) Remove(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"product_ids": productID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// Contains reports whether the product is on the user's wishlist.
func (s *Store) Contains(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"user_id": userID, "product_ids": productID},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
