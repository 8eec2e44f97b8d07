package couponstore

import (
	"errors"
	"testing"
	"time"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/testutil"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func percentCoupon(value, minOrder, maxDisc float64) models.Coupon {
	return models.Coupon{
		Code:           "SAVE10",
		DiscountType:   models.DiscountPercentage,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		MaxDiscount:    maxDisc,
		ExpiresAt:      now.Add(24 * time.Hour),
		Active:         true,
	}
}

func TestValidatePercentage(t *testing.T) {
	tests := []struct {
		name   string
		coupon models.Coupon
		amount float64
		want   float64
	}{
		{"flat ten percent", percentCoupon(10, 0, 0), 2000, 200},
		{"capped by max discount", percentCoupon(10, 0, 150), 2000, 150},
		{"cap not reached", percentCoupon(10, 0, 500), 2000, 200},
		{"rounds to paise", percentCoupon(15, 0, 0), 999, 149.85},
		{"zero max means uncapped", percentCoupon(50, 0, 0), 10000, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.coupon, tt.amount, now)
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateFixed(t *testing.T) {
	cp := models.Coupon{
		Code:          "FLAT200",
		DiscountType:  models.DiscountFixed,
		DiscountValue: 200,
		ExpiresAt:     now.Add(time.Hour),
		Active:        true,
	}

	got, err := Validate(cp, 1500, now)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != 200 {
		t.Errorf("Validate() = %v, want 200", got)
	}

	// A fixed discount never exceeds the order amount.
	got, err = Validate(cp, 150, now)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != 150 {
		t.Errorf("Validate() clamped = %v, want 150", got)
	}
}

func TestValidateRejections(t *testing.T) {
	expired := percentCoupon(10, 0, 0)
	expired.ExpiresAt = now.Add(-time.Hour)

	inactive := percentCoupon(10, 0, 0)
	inactive.Active = false

	limited := percentCoupon(10, 0, 0)
	limited.UsageLimit = 5
	limited.UsedCount = 5

	unknownType := percentCoupon(10, 0, 0)
	unknownType.DiscountType = "bogus"

	tests := []struct {
		name    string
		coupon  models.Coupon
		amount  float64
		wantErr error
	}{
		{"expired", expired, 2000, ErrCouponExpired},
		{"inactive", inactive, 2000, ErrCouponNotFound},
		{"usage limit reached", limited, 2000, ErrUsageLimit},
		{"unknown discount type", unknownType, 2000, ErrCouponNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.coupon, tt.amount, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBelowMinimum(t *testing.T) {
	cp := percentCoupon(10, 1000, 0)

	_, err := Validate(cp, 999, now)
	var below ErrBelowMinimum
	if !errors.As(err, &below) {
		t.Fatalf("Validate() error = %v, want ErrBelowMinimum", err)
	}
	if below.MinOrderAmount != 1000 {
		t.Errorf("MinOrderAmount = %v, want 1000", below.MinOrderAmount)
	}

	// Exactly at the minimum passes.
	if _, err := Validate(cp, 1000, now); err != nil {
		t.Errorf("Validate() at minimum error = %v", err)
	}
}

func TestUsageIncrementDecrement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	s := New(db)

	cp, err := s.Create(ctx, models.Coupon{
		Code:          "ONEUSE",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		ExpiresAt:     time.Now().UTC().Add(time.Hour),
		UsageLimit:    1,
		Active:        true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.IncrementUsage(ctx, cp.ID); err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}
	if err := s.IncrementUsage(ctx, cp.ID); !errors.Is(err, ErrUsageLimit) {
		t.Fatalf("IncrementUsage() at limit error = %v, want ErrUsageLimit", err)
	}

	// Returning the use (e.g. when order creation fails after the
	// increment) frees the slot again.
	if err := s.DecrementUsage(ctx, cp.ID); err != nil {
		t.Fatalf("DecrementUsage() error = %v", err)
	}
	got, err := s.GetByID(ctx, cp.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.UsedCount != 0 {
		t.Errorf("UsedCount after decrement = %d, want 0", got.UsedCount)
	}
	if err := s.IncrementUsage(ctx, cp.ID); err != nil {
		t.Errorf("IncrementUsage() after decrement error = %v", err)
	}

	// Decrementing past zero is a no-op, never a negative count.
	if err := s.DecrementUsage(ctx, cp.ID); err != nil {
		t.Fatalf("DecrementUsage() error = %v", err)
	}
	if err := s.DecrementUsage(ctx, cp.ID); err != nil {
		t.Fatalf("DecrementUsage() at zero error = %v", err)
	}
	got, err = s.GetByID(ctx, cp.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.UsedCount != 0 {
		t.Errorf("UsedCount after double decrement = %d, want 0", got.UsedCount)
	}
}

func TestValidateBoundaryExpiry(t *testing.T) {
	cp := percentCoupon(10, 0, 0)
	cp.ExpiresAt = now

	// Expiring exactly now is still valid; only strictly-after fails.
	if _, err := Validate(cp, 2000, now); err != nil {
		t.Errorf("Validate() at expiry instant error = %v", err)
	}
	if _, err := Validate(cp, 2000, now.Add(time.Second)); !errors.Is(err, ErrCouponExpired) {
		t.Errorf("Validate() after expiry error = %v, want ErrCouponExpired", err)
	}
}
