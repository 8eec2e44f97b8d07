// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureTokens(ctx, db); err != nil {
		problems = append(problems, "tokens: "+err.Error())
	}
	if err := ensureProducts(ctx, db); err != nil {
		problems = append(problems, "products: "+err.Error())
	}
	if err := ensureCategories(ctx, db); err != nil {
		problems = append(problems, "categories: "+err.Error())
	}
	if err := ensureCoupons(ctx, db); err != nil {
		problems = append(problems, "coupons: "+err.Error())
	}
	if err := ensureOrders(ctx, db); err != nil {
		problems = append(problems, "orders: "+err.Error())
	}
	if err := ensureReviews(ctx, db); err != nil {
		problems = append(problems, "reviews: "+err.Error())
	}
	if err := ensureCarts(ctx, db); err != nil {
		problems = append(problems, "carts: "+err.Error())
	}
	if err := ensureWishlists(ctx, db); err != nil {
		problems = append(problems, "wishlists: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureIndexSet creates the desired indexes for one collection.
// CreateMany is idempotent for identical key/option sets, so startup can run
// this every time.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	start := time.Now()
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		zap.L().Warn("ensure indexes failed",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll.Name()),
		zap.Int("count", len(models)),
		zap.String("took", time.Since(start).String()))
	return nil
}

func uniq() *options.IndexOptions { return options.Index().SetUnique(true) }

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "email_ci", Value: 1}}, Options: uniq().SetName("uniq_email_ci")},
		{Keys: bson.D{{Key: "google_id", Value: 1}}, Options: options.Index().SetName("by_google_id").SetSparse(true)},
	})
}

func ensureTokens(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("tokens"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: uniq().SetName("uniq_token")},
		// TTL reaper for expired tokens.
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0)},
	})
}

func ensureProducts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("products"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}, Options: options.Index().SetName("by_name_ci_id")},
		{Keys: bson.D{{Key: "category_id", Value: 1}}, Options: options.Index().SetName("by_category")},
	})
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("categories"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_ci", Value: 1}}, Options: uniq().SetName("uniq_name_ci")},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: uniq().SetName("uniq_slug")},
	})
}

func ensureCoupons(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("coupons"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "code_ci", Value: 1}}, Options: uniq().SetName("uniq_code_ci")},
	})
}

func ensureOrders(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("orders"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_user_created")},
		{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("by_status")},
	})
}

func ensureReviews(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("reviews"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_product_created")},
		// One review per user per product.
		{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: uniq().SetName("uniq_product_user")},
	})
}

func ensureCarts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("carts"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetName("by_user").SetSparse(true)},
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetName("by_session").SetSparse(true)},
	})
}

func ensureWishlists(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("wishlists"), []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: uniq().SetName("uniq_user")},
	})
}
