// internal/app/store/carts/cartstore.go
package cartstore

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

var (
	ErrNoOwner     = errors.New("cart has no owner")
	ErrBadQuantity = errors.New("quantity must be at least 1")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("carts")}
}

// Owner identifies whose cart to operate on: a signed-in user or a guest
// session cookie. Exactly one field is set.
type Owner struct {
	UserID    *primitive.ObjectID
	SessionID string
}

func (o Owner) filter() (bson.M, error) {
	switch {
	case o.UserID != nil:
		return bson.M{"user_id": o.UserID}, nil
	case o.SessionID != "":
		return bson.M{"session_id": o.SessionID}, nil
	default:
		return nil, ErrNoOwner
	}
}

// Get returns the owner's cart, or an empty unsaved cart if none exists.
func (s *Store) Get(ctx context.Context, o Owner) (models.Cart, error) {
	filter, err := o.filter()
	if err != nil {
		return models.Cart{}, err
	}

	var cart models.Cart
	err = s.c.FindOne(ctx, filter).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cart{UserID: o.UserID, SessionID: o.SessionID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

// AddItem puts a product in the cart, summing quantities if it is already
// there. The cart document is created on first add.
func (s *Store) AddItem(ctx context.Context, o Owner, productID primitive.ObjectID, qty int) (models.Cart, error) {
	if qty < 1 {
		return models.Cart{}, ErrBadQuantity
	}

	cart, err := s.Get(ctx, o)
	if err != nil {
		return models.Cart{}, err
	}

	now := time.Now().UTC()
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Quantity:  qty,
			AddedAt:   now,
		})
	}

	return s.save(ctx, cart, now)
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (s *Store) SetQuantity(ctx context.Context, o Owner, productID primitive.ObjectID, qty int) (models.Cart, error) {
	if qty < 0 {
		return models.Cart{}, ErrBadQuantity
	}

	cart, err := s.Get(ctx, o)
	if err != nil {
		return models.Cart{}, err
	}

	now := time.Now().UTC()
	items := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID == productID {
			if qty == 0 {
				continue
			}
			it.Quantity = qty
		}
		items = append(items, it)
	}
	cart.Items = items

	return s.save(ctx, cart, now)
}

// RemoveItem drops a product line from the cart.
func (s *Store) RemoveItem(ctx context.Context, o Owner, productID primitive.ObjectID) (models.Cart, error) {
	return s.SetQuantity(ctx, o, productID, 0)
}

// Clear empties the cart, typically after a successful checkout.
func (s *Store) Clear(ctx context.Context, o Owner) error {
	filter, err := o.filter()
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"items":      []models.CartItem{},
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// MergeGuest folds a guest session cart into the user's cart at sign-in,
// summing quantities for products present in both, then deletes the guest
// cart.
func (s *Store) MergeGuest(ctx context.Context, sessionID string, userID primitive.ObjectID) error {
	if sessionID == "" {
		return nil
	}

	var guest models.Cart
	err := s.c.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&guest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(guest.Items) == 0 {
		_, err = s.c.DeleteOne(ctx, bson.M{"_id": guest.ID})
		return err
	}

	owner := Owner{UserID: &userID}
	userCart, err := s.Get(ctx, owner)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, gi := range guest.Items {
		merged := false
		for i := range userCart.Items {
			if userCart.Items[i].ProductID == gi.ProductID {
				userCart.Items[i].Quantity += gi.Quantity
				merged = true
				break
			}
		}
		if !merged {
			userCart.Items = append(userCart.Items, gi)
		}
	}

	if _, err := s.save(ctx, userCart, now); err != nil {
		return err
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"_id": guest.ID})
	return err
}

// save upserts the cart by owner.
func (s *Store) save(ctx context.Context, cart models.Cart, now time.Time) (models.Cart, error) {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	filter := bson.M{"_id": cart.ID}
	_, err := s.c.ReplaceOne(ctx, filter, cart, options.Replace().SetUpsert(true))
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}
