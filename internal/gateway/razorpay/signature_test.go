package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_key_secret"
	good := sign("order_ABC123", "pay_XYZ789", secret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
		want      bool
	}{
		{"valid signature", "order_ABC123", "pay_XYZ789", good, secret, true},
		{"wrong secret", "order_ABC123", "pay_XYZ789", good, "other_secret", false},
		{"wrong order id", "order_DEF456", "pay_XYZ789", good, secret, false},
		{"wrong payment id", "order_ABC123", "pay_OTHER", good, secret, false},
		{"tampered signature", "order_ABC123", "pay_XYZ789", "deadbeef" + good[8:], secret, false},
		{"empty signature", "order_ABC123", "pay_XYZ789", "", secret, false},
		{"empty order id", "", "pay_XYZ789", good, secret, false},
		{"empty payment id", "order_ABC123", "", good, secret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySignature(tt.orderID, tt.paymentID, tt.signature, tt.secret)
			if got != tt.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}
