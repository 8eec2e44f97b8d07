// internal/app/store/carousel/carouselstore.go
package carouselstore

import (
	"context"
	"errors"
	"strings"
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

var (
	ErrMissingImage  = errors.New("slide image url is required")
	ErrSlideNotFound = errors.New("slide not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("carousel_slides")}
}

func (s *Store) Create(ctx context.Context, slide models.CarouselSlide) (models.CarouselSlide, error) {
	if strings.TrimSpace(slide.ImageURL) == "" {
		return models.CarouselSlide{}, ErrMissingImage
	}

	now := time.Now().UTC()
	slide.ID = primitive.NewObjectID()
	slide.CreatedAt = now
	slide.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, slide); err != nil {
		return models.CarouselSlide{}, err
	}
	return slide, nil
}

// ListActive returns the storefront slides in display order.
func (s *Store) ListActive(ctx context.Context) ([]models.CarouselSlide, error) {
	return s.list(ctx, bson.M{"active": true})
}

// ListAll returns every slide for the back office, in display order.
func (s *Store) ListAll(ctx context.Context) ([]models.CarouselSlide, error) {
	return s.list(ctx, bson.M{})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.CarouselSlide, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.CarouselSlide
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.CarouselSlide) (models.CarouselSlide, error) {
	set := bson.M{
		"title":      mut.Title,
		"subtitle":   mut.Subtitle,
		"link_url":   mut.LinkURL,
		"position":   mut.Position,
		"active":     mut.Active,
		"updated_at": time.Now().UTC(),
	}
	if strings.TrimSpace(mut.ImageURL) != "" {
		set["image_url"] = mut.ImageURL
	}

	var out models.CarouselSlide
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.CarouselSlide{}, ErrSlideNotFound
	}
	if err != nil {
		return models.CarouselSlide{}, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
