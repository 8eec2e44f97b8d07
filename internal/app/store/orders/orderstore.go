// internal/app/store/orders/orderstore.go
package orderstore

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
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order is already paid")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("orders")}
}

// Create inserts a pending order. Totals are expected to be recomputed by
// the caller from the product catalog, never taken from the client.
func (s *Store) Create(ctx context.Context, o models.Order) (models.Order, error) {
	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.Status = models.OrderPending
	o.PaymentStatus = models.PaymentPending
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var o models.Order
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// ListByUser returns a customer's orders, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns every order for the admin view, optionally filtered by
// status, newest first.
func (s *Store) ListAll(ctx context.Context, status string) ([]models.Order, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetGatewayOrder attaches the payment gateway's order id once it has been
// created, so success and failure callbacks can be reconciled later.
func (s *Store) SetGatewayOrder(ctx context.Context, id primitive.ObjectID, gatewayOrderID string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"gateway_order_id": gatewayOrderID,
		"updated_at":       time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkPaid records a verified payment and confirms the order. The filter
// excludes already-paid orders so a replayed verification callback is a
// harmless no-op rather than a double write.
func (s *Store) MarkPaid(ctx context.Context, id primitive.ObjectID, info models.PaymentInfo) (models.Order, error) {
	var out models.Order
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "payment_status": bson.M{"$ne": models.PaymentPaid}},
		bson.M{"$set": bson.M{
			"payment_status": models.PaymentPaid,
			"status":         models.OrderConfirmed,
			"payment_info":   info,
			"updated_at":     time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the order does not exist or it is already paid.
		existing, getErr := s.GetByID(ctx, id)
		if getErr != nil {
			return models.Order{}, ErrOrderNotFound
		}
		if existing.PaymentStatus == models.PaymentPaid {
			return existing, ErrAlreadyPaid
		}
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return out, nil
}

// RecordPaymentFailure stores the gateway's failure report. The order stays
// pending so the shopper can retry payment against the same order.
func (s *Store) RecordPaymentFailure(ctx context.Context, id primitive.ObjectID, f models.PaymentFailure) error {
	f.ReportedAt = time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": bson.M{"$ne": models.PaymentPaid}},
		bson.M{"$set": bson.M{
			"payment_status":  models.PaymentFailed,
			"payment_failure": f,
			"updated_at":      time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateStatus moves an order through the fulfilment pipeline, enforcing
// the transition rules. The current status is re-checked in the update
// filter so concurrent admin actions cannot interleave.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, to string) (models.Order, error) {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if !CanTransition(cur.Status, to) {
		return models.Order{}, ErrBadTransition{From: cur.Status, To: to}
	}

	var out models.Order
	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": cur.Status},
		bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Status changed underneath us.
		return models.Order{}, ErrBadTransition{From: cur.Status, To: to}
	}
	if err != nil {
		return models.Order{}, err
	}
	return out, nil
}
