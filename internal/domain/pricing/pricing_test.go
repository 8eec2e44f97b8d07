package pricing

import "testing"

func TestDeliveryCharge(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"zero", 0, 500},
		{"just below mid tier", 1999, 500},
		{"mid tier lower bound", 2000, 300},
		{"just below free tier", 4999, 300},
		{"free tier lower bound", 5000, 0},
		{"well above free tier", 12000, 0},
		{"fractional below mid tier", 1999.99, 500},
		{"fractional below free tier", 4999.99, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeliveryCharge(tt.subtotal)
			if got != tt.want {
				t.Errorf("DeliveryCharge(%v) = %v, want %v", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestFinalTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		discount float64
		want     float64
	}{
		{"no discount, base tier", 1500, 0, 2000},
		{"coupon on base tier", 1500, 200, 1800},
		{"no discount, mid tier", 2500, 0, 2800},
		{"no discount, free tier", 6000, 0, 6000},
		{"discount exceeds subtotal clamps at zero", 2500, 3000, 300},
		{"discount equals subtotal", 2500, 2500, 300},
		{"discount exceeds free-tier subtotal", 6000, 9000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalTotal(tt.subtotal, tt.discount)
			if got != tt.want {
				t.Errorf("FinalTotal(%v, %v) = %v, want %v", tt.subtotal, tt.discount, got, tt.want)
			}
		})
	}
}

// Removing a coupon must return the computation to its pre-coupon value.
func TestFinalTotal_CouponRoundTrip(t *testing.T) {
	subtotals := []float64{500, 1999, 2000, 4999, 5000, 9999}
	for _, s := range subtotals {
		before := FinalTotal(s, 0)
		_ = FinalTotal(s, 250) // apply
		after := FinalTotal(s, 0) // remove
		if before != after {
			t.Errorf("subtotal %v: total changed after coupon round trip: %v != %v", s, before, after)
		}
	}
}

// The total can never drop below the delivery charge for the subtotal.
func TestFinalTotal_NeverBelowDelivery(t *testing.T) {
	for _, s := range []float64{0, 100, 1999, 2000, 4999, 5000, 8000} {
		for _, d := range []float64{0, 50, s, s + 1, s * 2, 100000} {
			got := FinalTotal(s, d)
			if min := DeliveryCharge(s); got < min {
				t.Errorf("FinalTotal(%v, %v) = %v, below delivery charge %v", s, d, got, min)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1800, 1800},
		{1800.004, 1800},
		{1800.006, 1800.01},
		{1799.999, 1800},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToPaise(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{1800, 180000},
		{1800.5, 180050},
		{0.01, 1},
		{299.99, 29999},
	}
	for _, tt := range tests {
		if got := ToPaise(tt.in); got != tt.want {
			t.Errorf("ToPaise(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
