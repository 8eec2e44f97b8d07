// Package razorpay wraps the Razorpay payment gateway behind a narrow
// interface so checkout logic is testable without a real gateway.
package razorpay

import (
	"context"
	"fmt"

	razorpaysdk "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// Order is the gateway order the payment widget is opened against.
type Order struct {
	ID       string
	Amount   int64 // paise
	Currency string
	Receipt  string
}

// Gateway creates gateway orders for checkout. Implementations must be safe
// for concurrent use.
type Gateway interface {
	// CreateOrder registers an order of the given amount (paise) with the
	// gateway and returns the gateway's order object.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (Order, error)

	// KeyID returns the public key id the client needs to open the widget.
	KeyID() string
}

// Client is the production Gateway backed by the official Razorpay SDK.
type Client struct {
	api   *razorpaysdk.Client
	keyID string
	log   *zap.Logger
}

func NewClient(keyID, keySecret string, logger *zap.Logger) *Client {
	return &Client{
		api:   razorpaysdk.NewClient(keyID, keySecret),
		keyID: keyID,
		log:   logger,
	}
}

func (c *Client) KeyID() string { return c.keyID }

// CreateOrder registers the order with Razorpay. The SDK call is
// synchronous; the caller bounds it with its request context deadline.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		c.log.Error("razorpay order create failed",
			zap.Int64("amount", amount),
			zap.String("receipt", receipt),
			zap.Error(err))
		return Order{}, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return Order{}, fmt.Errorf("razorpay order create: response missing id")
	}

	out := Order{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}
	if amt, ok := body["amount"].(float64); ok {
		out.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok && cur != "" {
		out.Currency = cur
	}

	c.log.Info("razorpay order created",
		zap.String("gateway_order_id", out.ID),
		zap.Int64("amount", out.Amount))

	return out, nil
}
