// internal/app/features/checkout/types.go
package checkout

import "github.com/JayanshJR7/novara-api/internal/domain/models"

// Payment methods.
const (
	MethodRazorpay = "razorpay"
	MethodCOD      = "cod"
)

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type addressRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// createOrderRequest is the checkout payload. Prices are deliberately
// absent: the server reprices every line from the catalog and recomputes
// discount and delivery, whatever the client showed the shopper.
type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress addressRequest     `json:"shipping_address"`
	PaymentMethod   string             `json:"payment_method"`
	CouponCode      string             `json:"coupon_code"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
}

type orderItemJSON struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type orderJSON struct {
	ID             string          `json:"id"`
	Items          []orderItemJSON `json:"items"`
	Subtotal       float64         `json:"subtotal"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	Discount       float64         `json:"discount"`
	DeliveryCharge float64         `json:"delivery_charge"`
	TotalAmount    float64         `json:"total_amount"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	PaymentMethod  string          `json:"payment_method"`
	CreatedAt      string          `json:"created_at"`
}

func toOrderJSON(o models.Order) orderJSON {
	items := make([]orderItemJSON, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemJSON{
			ProductID: it.ProductID.Hex(),
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	return orderJSON{
		ID:             o.ID.Hex(),
		Items:          items,
		Subtotal:       o.Subtotal,
		CouponCode:     o.CouponCode,
		Discount:       o.Discount,
		DeliveryCharge: o.DeliveryCharge,
		TotalAmount:    o.TotalAmount,
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		PaymentMethod:  o.PaymentMethod,
		CreatedAt:      o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
