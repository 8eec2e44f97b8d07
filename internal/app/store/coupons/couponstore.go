// internal/app/store/coupons/couponstore.go
package couponstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/domain/pricing"
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
	ErrDuplicateCode  = errors.New("a coupon with this code already exists")
	ErrCouponNotFound = errors.New("invalid coupon code")
	ErrCouponExpired  = errors.New("this coupon has expired")
	ErrUsageLimit     = errors.New("this coupon has reached its usage limit")
)

// ErrBelowMinimum carries the threshold so handlers can tell the shopper
// how much more they need to add.
type ErrBelowMinimum struct {
	MinOrderAmount float64
}

func (e ErrBelowMinimum) Error() string {
	return fmt.Sprintf("order must be at least ₹%.0f to use this coupon", e.MinOrderAmount)
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("coupons")}
}

func (s *Store) Create(ctx context.Context, cp models.Coupon) (models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(cp.Code))
	if code == "" {
		return models.Coupon{}, ErrCouponNotFound
	}

	now := time.Now().UTC()
	cp.ID = primitive.NewObjectID()
	cp.Code = code
	cp.CodeCI = text.Fold(code)
	cp.UsedCount = 0
	cp.CreatedAt = now
	cp.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cp); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Coupon{}, ErrDuplicateCode
		}
		return models.Coupon{}, err
	}
	return cp, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Coupon, error) {
	var cp models.Coupon
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cp); err != nil {
		return models.Coupon{}, err
	}
	return cp, nil
}

// GetByCode looks up a coupon case-insensitively.
func (s *Store) GetByCode(ctx context.Context, code string) (models.Coupon, error) {
	var cp models.Coupon
	err := s.c.FindOne(ctx, bson.M{"code_ci": text.Fold(strings.TrimSpace(code))}).Decode(&cp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Coupon{}, ErrCouponNotFound
	}
	if err != nil {
		return models.Coupon{}, err
	}
	return cp, nil
}

// All returns every coupon, newest first, for the admin list.
func (s *Store) All(ctx context.Context) ([]models.Coupon, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Coupon
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, mut models.Coupon) (models.Coupon, error) {
	set := bson.M{
		"discount_type":    mut.DiscountType,
		"discount_value":   mut.DiscountValue,
		"min_order_amount": mut.MinOrderAmount,
		"max_discount":     mut.MaxDiscount,
		"expires_at":       mut.ExpiresAt,
		"usage_limit":      mut.UsageLimit,
		"active":           mut.Active,
		"updated_at":       time.Now().UTC(),
	}
	if code := strings.ToUpper(strings.TrimSpace(mut.Code)); code != "" {
		set["code"] = code
		set["code_ci"] = text.Fold(code)
	}

	var out models.Coupon
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Coupon{}, ErrDuplicateCode
		}
		return models.Coupon{}, err
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

// IncrementUsage bumps UsedCount when an order carrying the code is placed.
// The filter re-checks the limit so two concurrent checkouts cannot push a
// limited coupon past its cap.
func (s *Store) IncrementUsage(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"usage_limit": 0},
			bson.M{"usage_limit": bson.M{"$exists": false}},
			bson.M{"$expr": bson.M{"$lt": bson.A{"$used_count", "$usage_limit"}}},
		},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"used_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUsageLimit
	}
	return nil
}

// DecrementUsage returns a consumed use when order creation fails after the
// increment, so a limited coupon is never burned without an order carrying
// it. The filter keeps the count from going negative.
func (s *Store) DecrementUsage(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "used_count": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"used_count": -1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// Validate applies the coupon rules to an order amount and returns the
// discount. Pure function so the checkout math is testable without Mongo.
//
// Check order matters for the shopper-facing message: existence/active,
// then expiry, then minimum, then usage limit.
func Validate(cp models.Coupon, orderAmount float64, now time.Time) (float64, error) {
	if !cp.Active {
		return 0, ErrCouponNotFound
	}
	if !cp.ExpiresAt.IsZero() && now.After(cp.ExpiresAt) {
		return 0, ErrCouponExpired
	}
	if orderAmount < cp.MinOrderAmount {
		return 0, ErrBelowMinimum{MinOrderAmount: cp.MinOrderAmount}
	}
	if cp.UsageLimit > 0 && cp.UsedCount >= cp.UsageLimit {
		return 0, ErrUsageLimit
	}

	var discount float64
	switch cp.DiscountType {
	case models.DiscountPercentage:
		discount = orderAmount * cp.DiscountValue / 100
		if cp.MaxDiscount > 0 && discount > cp.MaxDiscount {
			discount = cp.MaxDiscount
		}
	case models.DiscountFixed:
		discount = cp.DiscountValue
	default:
		return 0, ErrCouponNotFound
	}

	if discount > orderAmount {
		discount = orderAmount
	}
	return pricing.Round2(discount), nil
}
