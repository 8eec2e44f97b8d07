// Package pricing holds the storefront money math: the delivery-charge
// tiers and the final-total computation. These are the authoritative
// values at order-creation time: handlers recompute them server-side and
// ignore anything a client sends.
package pricing

import "math"

// Delivery-charge tiers by cart subtotal (rupees).
const (
	FreeDeliveryThreshold = 5000
	MidTierThreshold      = 2000

	MidTierCharge  = 300
	BaseTierCharge = 500
)

// DeliveryCharge maps a cart subtotal to its shipping fee tier.
//
//	subtotal ≥ 5000          → 0 (free delivery)
//	2000 ≤ subtotal < 5000   → 300
//	subtotal < 2000          → 500
func DeliveryCharge(subtotal float64) float64 {
	switch {
	case subtotal >= FreeDeliveryThreshold:
		return 0
	case subtotal >= MidTierThreshold:
		return MidTierCharge
	default:
		return BaseTierCharge
	}
}

// FinalTotal computes the amount charged at checkout. The discount is
// subtracted before the delivery charge is added, so delivery is never
// discounted, and the discounted subtotal clamps at zero so the total can
// never go below the delivery charge.
func FinalTotal(subtotal, discount float64) float64 {
	after := subtotal - discount
	if after < 0 {
		after = 0
	}
	return after + DeliveryCharge(subtotal)
}

// Round2 rounds a rupee amount to 2 decimals. Gateway orders are created
// for exactly this value.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToPaise converts a rupee amount to integer paise for the gateway.
func ToPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
