// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateCategory = errors.New("a category with this name already exists")
	ErrEmptyName         = errors.New("category name is required")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// Slugify turns a display name into a URL slug: folded, spaces to hyphens,
// everything outside [a-z0-9-] dropped.
func Slugify(name string) string {
	folded := text.Fold(strings.TrimSpace(name))
	var b strings.Builder
	prevHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	if strings.TrimSpace(cat.Name) == "" {
		return models.Category{}, ErrEmptyName
	}

	now := time.Now().UTC()
	cat.ID = primitive.NewObjectID()
	cat.NameCI = text.Fold(cat.Name)
	cat.Slug = Slugify(cat.Name)
	cat.CreatedAt = now
	cat.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateCategory
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&cat); err != nil {
		return models.Category{}, err
	}
	return cat, nil
}

// All returns every category sorted by folded name. The catalog is small
// enough that this list is never paginated.
func (s *Store) All(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Category) (models.Category, error) {
	set := bson.M{
		"description": mut.Description,
		"image_url":   mut.ImageURL,
		"active":      mut.Active,
		"updated_at":  time.Now().UTC(),
	}
	if strings.TrimSpace(mut.Name) != "" {
		set["name"] = mut.Name
		set["name_ci"] = text.Fold(mut.Name)
		set["slug"] = Slugify(mut.Name)
	}

	var out models.Category
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateCategory
		}
		return models.Category{}, err
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
