// internal/app/features/orders/types.go
package orders

import "github.com/JayanshJR7/novara-api/internal/domain/models"

type orderItemJSON struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type addressJSON struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type paymentFailureJSON struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	ReportedAt  string `json:"reported_at"`
}

type orderJSON struct {
	ID              string              `json:"id"`
	CustomerName    string              `json:"customer_name"`
	Email           string              `json:"email,omitempty"`
	Items           []orderItemJSON     `json:"items"`
	ShippingAddress addressJSON         `json:"shipping_address"`
	Subtotal        float64             `json:"subtotal"`
	CouponCode      string              `json:"coupon_code,omitempty"`
	Discount        float64             `json:"discount"`
	DeliveryCharge  float64             `json:"delivery_charge"`
	TotalAmount     float64             `json:"total_amount"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentFailure  *paymentFailureJSON `json:"payment_failure,omitempty"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

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

	out := orderJSON{
		ID:           o.ID.Hex(),
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Items:        items,
		ShippingAddress: addressJSON{
			FullName:   o.ShippingAddress.FullName,
			Phone:      o.ShippingAddress.Phone,
			Line1:      o.ShippingAddress.Line1,
			Line2:      o.ShippingAddress.Line2,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			Country:    o.ShippingAddress.Country,
			PostalCode: o.ShippingAddress.PostalCode,
		},
		Subtotal:       o.Subtotal,
		CouponCode:     o.CouponCode,
		Discount:       o.Discount,
		DeliveryCharge: o.DeliveryCharge,
		TotalAmount:    o.TotalAmount,
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		PaymentMethod:  o.PaymentMethod,
		CreatedAt:      o.CreatedAt.Format(timeFormat),
		UpdatedAt:      o.UpdatedAt.Format(timeFormat),
	}
	if o.PaymentFailure != nil {
		out.PaymentFailure = &paymentFailureJSON{
			Code:        o.PaymentFailure.Code,
			Description: o.PaymentFailure.Description,
			ReportedAt:  o.PaymentFailure.ReportedAt.Format(timeFormat),
		}
	}
	return out
}

func toOrderList(os []models.Order) []orderJSON {
	out := make([]orderJSON, 0, len(os))
	for _, o := range os {
		out = append(out, toOrderJSON(o))
	}
	return out
}
