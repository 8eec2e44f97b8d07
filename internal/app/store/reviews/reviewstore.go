// internal/app/store/reviews/reviewstore.go
package reviewstore

import (
	"context"
	"errors"
	"time"

	"github.com/JayanshJR7/novara-api/internal/app/system/htmlsanitize"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/domain/pricing"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrAlreadyReviewed = errors.New("you have already reviewed this product")
	ErrBadRating       = errors.New("rating must be between 1 and 5")
	ErrReviewNotFound  = errors.New("review not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reviews")}
}

// Create inserts an unapproved review. One review per user per product,
// enforced by the unique index.
func (s *Store) Create(ctx context.Context, r models.Review) (models.Review, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return models.Review{}, ErrBadRating
	}

	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.Comment = htmlsanitize.Sanitize(r.Comment)
	r.Approved = false
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Review{}, ErrAlreadyReviewed
		}
		return models.Review{}, err
	}
	return r, nil
}

// ListApproved returns a product's visible reviews, newest first.
func (s *Store) ListApproved(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"product_id": productID, "approved": true},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPending returns reviews awaiting moderation, oldest first so the
// queue is worked in arrival order.
func (s *Store) ListPending(ctx context.Context) ([]models.Review, error) {
	cur, err := s.c.Find(ctx, bson.M{"approved": false},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Review
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Approve marks a review visible and returns it so the caller can
// recompute the product's rating aggregate.
func (s *Store) Approve(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var out models.Review
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"approved": true, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Review{}, ErrReviewNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	return out, nil
}

// Delete removes a review. Returns the review so rating aggregates can be
// recomputed when an approved one is removed.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	var out models.Review
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Review{}, ErrReviewNotFound
	}
	if err != nil {
		return models.Review{}, err
	}
	return out, nil
}

// Aggregate returns the approved-review average and count for a product.
func (s *Store) Aggregate(ctx context.Context, productID primitive.ObjectID) (avg float64, count int, err error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"product_id": productID, "approved": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return pricing.Round2(rows[0].Avg), rows[0].Count, nil
}
