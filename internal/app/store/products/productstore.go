// internal/app/store/products/productstore.go
package productstore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/JayanshJR7/novara-api/internal/app/system/htmlsanitize"
	"github.com/JayanshJR7/novara-api/internal/app/system/paging"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
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
	ErrInvalidProduct = errors.New("product is missing required fields")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("products")}
}

// Create inserts a new Product, setting NameCI, sanitizing the description,
// and stamping timestamps.
func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if strings.TrimSpace(p.Name) == "" || p.Price <= 0 {
		return models.Product{}, ErrInvalidProduct
	}

	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	p.Description = htmlsanitize.Sanitize(p.Description)
	p.Rating = 0
	p.ReviewCount = 0
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// GetByIDs loads multiple products by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a product's mutable fields and refreshes UpdatedAt,
// returning the updated document. There is a single edit path: the current
// pricing model only (one price field, no legacy variants).
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Product) (models.Product, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if strings.TrimSpace(mut.Name) != "" {
		set["name"] = mut.Name
		set["name_ci"] = text.Fold(mut.Name)
	}
	// Description and images can be cleared.
	set["description"] = htmlsanitize.Sanitize(mut.Description)
	set["images"] = mut.Images
	set["material"] = mut.Material

	if mut.SKU != "" {
		set["sku"] = mut.SKU
	}
	if mut.Price > 0 {
		set["price"] = mut.Price
	}
	if mut.CategoryID != nil {
		set["category_id"] = mut.CategoryID
	}
	if mut.Stock >= 0 {
		set["stock"] = mut.Stock
	}

	var out models.Product
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// SetActive toggles storefront visibility and returns the updated document.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (models.Product, error) {
	var out models.Product
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": active, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		return models.Product{}, err
	}
	return out, nil
}

// Delete removes a product by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DecrementStock reduces stock for a purchased quantity, flooring at zero.
func (s *Store) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}, "$set": bson.M{"updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Oversold: clamp instead of going negative.
		_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"stock": 0, "updated_at": time.Now().UTC()}})
	}
	return err
}

// SetRating writes the recomputed review aggregate onto the product.
func (s *Store) SetRating(ctx context.Context, id primitive.ObjectID, avg float64, count int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"rating":       avg,
		"review_count": count,
		"updated_at":   time.Now().UTC(),
	}})
	return err
}

// ListFilter narrows the storefront product list.
type ListFilter struct {
	Search     string              // matches folded name prefix/substring
	CategoryID *primitive.ObjectID // nil means all categories
	ActiveOnly bool                // storefront sets true; admin sees everything
	Before     string              // keyset cursor, exclusive
	After      string              // keyset cursor, exclusive
}

// Page is one window of the product list plus its cursors.
type Page struct {
	Products []models.Product
	HasPrev  bool
	HasNext  bool
	PrevCur  string
	NextCur  string
}

// List returns one keyset page of products ordered by folded name.
func (s *Store) List(ctx context.Context, f ListFilter) (Page, error) {
	cfg := paging.ConfigureKeyset(f.Before, f.After)

	filter := bson.M{}
	if f.ActiveOnly {
		filter["active"] = true
	}
	if f.CategoryID != nil {
		filter["category_id"] = f.CategoryID
	}
	if sq := text.Fold(strings.TrimSpace(f.Search)); sq != "" {
		filter["name_ci"] = bson.M{"$regex": regexp.QuoteMeta(sq)}
	}
	if window := cfg.KeysetWindow("name_ci"); window != nil {
		for k, v := range window {
			filter[k] = v
		}
	}

	find := options.Find()
	cfg.ApplyToFind(find, "name_ci")

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return Page{}, err
	}
	defer cur.Close(ctx)

	var rows []models.Product
	if err := cur.All(ctx, &rows); err != nil {
		return Page{}, err
	}

	res := paging.TrimPage(&rows, f.Before, f.After)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}
	prev, next := paging.BuildCursors(rows,
		func(p models.Product) string { return p.NameCI },
		func(p models.Product) primitive.ObjectID { return p.ID })

	return Page{
		Products: rows,
		HasPrev:  res.HasPrev,
		HasNext:  res.HasNext,
		PrevCur:  prev,
		NextCur:  next,
	}, nil
}

// All returns every product, newest first. Used by the admin dashboard
// aggregate; storefront browsing goes through the paginated List in the
// catalog feature instead.
func (s *Store) All(ctx context.Context) ([]models.Product, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
