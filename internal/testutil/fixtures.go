package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProduct inserts an active, in-stock product.
func (f *Fixtures) CreateProduct(ctx context.Context, name string, price float64, stock int) models.Product {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Product{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Price:     price,
		Stock:     stock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("products").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test product: %v", err)
	}
	return p
}

// CreateCategory inserts an active category.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Slug:      text.Fold(name),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return c
}

// CreateCoupon inserts an active percentage coupon expiring in 24 hours.
func (f *Fixtures) CreateCoupon(ctx context.Context, code string, percent float64) models.Coupon {
	f.t.Helper()

	now := time.Now().UTC()
	cp := models.Coupon{
		ID:            primitive.NewObjectID(),
		Code:          code,
		CodeCI:        text.Fold(code),
		DiscountType:  models.DiscountPercentage,
		DiscountValue: percent,
		ExpiresAt:     now.Add(24 * time.Hour),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("coupons").InsertOne(ctx, cp); err != nil {
		f.t.Fatalf("failed to create test coupon: %v", err)
	}
	return cp
}

// CreateOrder inserts a pending order for the given user with one line.
func (f *Fixtures) CreateOrder(ctx context.Context, userID primitive.ObjectID, p models.Product, qty int, total float64) models.Order {
	f.t.Helper()

	now := time.Now().UTC()
	o := models.Order{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items: []models.OrderItem{{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
		}},
		Subtotal:      p.Price * float64(qty),
		TotalAmount:   total,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: "razorpay",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("orders").InsertOne(ctx, o); err != nil {
		f.t.Fatalf("failed to create test order: %v", err)
	}
	return o
}

// CreateUser inserts a customer account without a password hash.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		EmailCI:   text.Fold(email),
		Role:      models.RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
