package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// OrderItem is a snapshot of a product line at order time. Name and Price
// are copied so later catalog edits do not rewrite order history.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Quantity  int                `bson:"quantity"`
	ImageURL  string             `bson:"image_url,omitempty"`
}

// ShippingAddress holds resolved display names, not ISO codes.
type ShippingAddress struct {
	FullName   string `bson:"full_name"`
	Phone      string `bson:"phone"`
	Line1      string `bson:"line1"`
	Line2      string `bson:"line2,omitempty"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	Country    string `bson:"country"`
	PostalCode string `bson:"postal_code"`
}

// PaymentInfo is recorded once a gateway payment verifies.
type PaymentInfo struct {
	GatewayOrderID string    `bson:"gateway_order_id"`
	PaymentID      string    `bson:"payment_id"`
	Signature      string    `bson:"signature"`
	Amount         float64   `bson:"amount"`
	PaidAt         time.Time `bson:"paid_at"`
}

// PaymentFailure stores the gateway's error object (or the synthetic
// PAYMENT_CANCELLED report) for manual reconciliation. The order itself is
// never rolled back on payment failure.
type PaymentFailure struct {
	Code        string    `bson:"code,omitempty"`
	Description string    `bson:"description,omitempty"`
	Source      string    `bson:"source,omitempty"`
	Reason      string    `bson:"reason,omitempty"`
	ReportedAt  time.Time `bson:"reported_at"`
}

// Order is created in pending state before payment is attempted; payment
// success or failure is reconciled against this pre-existing order id.
type Order struct {
	ID              primitive.ObjectID `bson:"_id"`
	UserID          primitive.ObjectID `bson:"user_id"`
	CustomerName    string             `bson:"customer_name"`
	Email           string             `bson:"email"`
	Phone           string             `bson:"phone"`
	ShippingAddress ShippingAddress    `bson:"shipping_address"`
	PaymentMethod   string             `bson:"payment_method"`
	Items           []OrderItem        `bson:"items"`
	Subtotal        float64            `bson:"subtotal"`
	CouponCode      string             `bson:"coupon_code,omitempty"`
	Discount        float64            `bson:"discount"`
	DeliveryCharge  float64            `bson:"delivery_charge"`
	TotalAmount     float64            `bson:"total_amount"`
	Status          string             `bson:"status"`
	PaymentStatus   string             `bson:"payment_status"`
	GatewayOrderID  string             `bson:"gateway_order_id,omitempty"`
	PaymentInfo     *PaymentInfo       `bson:"payment_info,omitempty"`
	PaymentFailure  *PaymentFailure    `bson:"payment_failure,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}
