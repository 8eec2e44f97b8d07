package orderstore

import (
	"testing"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending to confirmed", models.OrderPending, models.OrderConfirmed, true},
		{"confirmed to processing", models.OrderConfirmed, models.OrderProcessing, true},
		{"processing to shipped", models.OrderProcessing, models.OrderShipped, true},
		{"shipped to delivered", models.OrderShipped, models.OrderDelivered, true},

		{"pending cancel", models.OrderPending, models.OrderCancelled, true},
		{"confirmed cancel", models.OrderConfirmed, models.OrderCancelled, true},
		{"processing cancel", models.OrderProcessing, models.OrderCancelled, true},
		{"shipped cancel rejected", models.OrderShipped, models.OrderCancelled, false},
		{"delivered cancel rejected", models.OrderDelivered, models.OrderCancelled, false},

		{"skip a stage", models.OrderPending, models.OrderShipped, false},
		{"backwards", models.OrderShipped, models.OrderProcessing, false},
		{"same status", models.OrderConfirmed, models.OrderConfirmed, false},
		{"out of cancelled", models.OrderCancelled, models.OrderConfirmed, false},
		{"out of delivered", models.OrderDelivered, models.OrderPending, false},
		{"unknown from", "bogus", models.OrderConfirmed, false},
		{"unknown to", models.OrderPending, "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		models.OrderPending, models.OrderConfirmed, models.OrderProcessing,
		models.OrderShipped, models.OrderDelivered, models.OrderCancelled,
	} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	if ValidStatus("refunded") {
		t.Error(`ValidStatus("refunded") = true, want false`)
	}
}
