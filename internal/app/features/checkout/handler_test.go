package checkout

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/gateway/razorpay"
	"github.com/JayanshJR7/novara-api/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testSecret = "test_key_secret"

// fakeGateway satisfies razorpay.Gateway without talking to anything.
type fakeGateway struct {
	lastAmount int64
	createErr  error
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string, _ map[string]interface{}) (razorpay.Order, error) {
	if g.createErr != nil {
		return razorpay.Order{}, g.createErr
	}
	g.lastAmount = amount
	return razorpay.Order{
		ID:       "order_fake_1",
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func postJSON(t *testing.T, fn http.HandlerFunc, user testutil.TestUser, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, user)

	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func mustOID(t *testing.T, hexID string) primitive.ObjectID {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		t.Fatalf("bad object id %q: %v", hexID, err)
	}
	return oid
}

func TestValidateAddress(t *testing.T) {
	base := addressRequest{
		FullName:   "A Shopper",
		Phone:      "9876543210",
		Line1:      "1 Gem Street",
		City:       "Mumbai",
		PostalCode: "400001",
	}

	tests := []struct {
		name    string
		mutate  func(*addressRequest)
		wantErr bool
	}{
		{"complete address", func(a *addressRequest) {}, false},
		{"optional fields empty", func(a *addressRequest) { a.Line2, a.State, a.Country = "", "", "" }, false},
		{"missing full name", func(a *addressRequest) { a.FullName = "  " }, true},
		{"missing phone", func(a *addressRequest) { a.Phone = "" }, true},
		{"whitespace phone", func(a *addressRequest) { a.Phone = "   " }, true},
		{"missing line1", func(a *addressRequest) { a.Line1 = "" }, true},
		{"missing city", func(a *addressRequest) { a.City = "" }, true},
		{"missing postal code", func(a *addressRequest) { a.PostalCode = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			tt.mutate(&a)
			err := validateAddress(a)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHandleCreateOrderRequiresPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	h := NewHandler(db, &fakeGateway{}, testSecret, zap.NewNop())

	user := testutil.CustomerUser()
	uid := mustOID(t, user.ID)
	ring := fx.CreateProduct(ctx, "Aurora Ring", 2500, 3)

	body := map[string]interface{}{
		"items":          []map[string]interface{}{{"product_id": ring.ID.Hex(), "quantity": 1}},
		"payment_method": MethodCOD,
		"shipping_address": map[string]string{
			"full_name":   "A Shopper",
			"line1":       "1 Gem Street",
			"city":        "Mumbai",
			"postal_code": "400001",
		},
	}

	rec := postJSON(t, h.HandleCreateOrder, user, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status without phone = %d, want %d (body: %s)", rec.Code, http.StatusBadRequest, rec.Body.String())
	}

	orders, err := h.Orders.ListByUser(ctx, uid)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("rejected request still created %d order(s)", len(orders))
	}

	// With the shipping phone present the order goes through and carries it
	// as the contact phone.
	body["shipping_address"].(map[string]string)["phone"] = "9876543210"
	rec = postJSON(t, h.HandleCreateOrder, user, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status with phone = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	orders, err = h.Orders.ListByUser(ctx, uid)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	if orders[0].Phone != "9876543210" {
		t.Errorf("order phone = %q, want %q", orders[0].Phone, "9876543210")
	}
}

func TestHandleCreateGatewayOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	gw := &fakeGateway{}
	h := NewHandler(db, gw, testSecret, zap.NewNop())

	user := testutil.CustomerUser()
	uid := mustOID(t, user.ID)
	ring := fx.CreateProduct(ctx, "Aurora Ring", 2500, 3)
	order := fx.CreateOrder(ctx, uid, ring, 1, 2800)

	rec := postJSON(t, h.HandleCreateGatewayOrder, user, map[string]string{
		"order_id": order.ID.Hex(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp gatewayOrderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.KeyID != "rzp_test_key" {
		t.Errorf("KeyID = %q, want %q", resp.KeyID, "rzp_test_key")
	}
	if resp.GatewayOrderID != "order_fake_1" {
		t.Errorf("GatewayOrderID = %q, want %q", resp.GatewayOrderID, "order_fake_1")
	}
	if resp.Amount != 280000 {
		t.Errorf("Amount = %d paise, want 280000", resp.Amount)
	}
	if gw.lastAmount != 280000 {
		t.Errorf("gateway received %d paise, want 280000", gw.lastAmount)
	}

	got, err := h.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if got.GatewayOrderID != "order_fake_1" {
		t.Errorf("stored GatewayOrderID = %q, want %q", got.GatewayOrderID, "order_fake_1")
	}
}

func TestHandleCreateGatewayOrderWrongUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	h := NewHandler(db, &fakeGateway{}, testSecret, zap.NewNop())

	owner := testutil.CustomerUser()
	ring := fx.CreateProduct(ctx, "Aurora Ring", 2500, 3)
	order := fx.CreateOrder(ctx, mustOID(t, owner.ID), ring, 1, 2800)

	// Other customers must not learn the order exists.
	rec := postJSON(t, h.HandleCreateGatewayOrder, testutil.CustomerUser(), map[string]string{
		"order_id": order.ID.Hex(),
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleVerifyPayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	h := NewHandler(db, &fakeGateway{}, testSecret, zap.NewNop())

	user := testutil.CustomerUser()
	uid := mustOID(t, user.ID)
	ring := fx.CreateProduct(ctx, "Aurora Ring", 2500, 3)
	order := fx.CreateOrder(ctx, uid, ring, 1, 2800)

	const gwOrderID = "order_verify_1"
	if err := h.Orders.SetGatewayOrder(ctx, order.ID, gwOrderID); err != nil {
		t.Fatalf("failed to attach gateway order: %v", err)
	}

	verify := func(paymentID, signature string) *httptest.ResponseRecorder {
		return postJSON(t, h.HandleVerifyPayment, user, map[string]string{
			"order_id":            order.ID.Hex(),
			"razorpay_order_id":   gwOrderID,
			"razorpay_payment_id": paymentID,
			"razorpay_signature":  signature,
		})
	}

	t.Run("bad signature leaves order pending", func(t *testing.T) {
		rec := verify("pay_1", "not-a-real-signature")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		got, err := h.Orders.GetByID(ctx, order.ID)
		if err != nil {
			t.Fatalf("failed to reload order: %v", err)
		}
		if got.PaymentStatus != models.PaymentPending {
			t.Errorf("PaymentStatus = %q, want %q", got.PaymentStatus, models.PaymentPending)
		}
	})

	t.Run("mismatched gateway order id rejected", func(t *testing.T) {
		rec := postJSON(t, h.HandleVerifyPayment, user, map[string]string{
			"order_id":            order.ID.Hex(),
			"razorpay_order_id":   "order_someone_elses",
			"razorpay_payment_id": "pay_1",
			"razorpay_signature":  signPayment("order_someone_elses", "pay_1"),
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("valid signature marks paid and decrements stock", func(t *testing.T) {
		rec := verify("pay_1", signPayment(gwOrderID, "pay_1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
		}

		got, err := h.Orders.GetByID(ctx, order.ID)
		if err != nil {
			t.Fatalf("failed to reload order: %v", err)
		}
		if got.PaymentStatus != models.PaymentPaid {
			t.Errorf("PaymentStatus = %q, want %q", got.PaymentStatus, models.PaymentPaid)
		}
		if got.PaymentInfo == nil || got.PaymentInfo.PaymentID != "pay_1" {
			t.Errorf("PaymentInfo = %+v, want payment id pay_1", got.PaymentInfo)
		}

		p, err := h.Products.GetByID(ctx, ring.ID)
		if err != nil {
			t.Fatalf("failed to reload product: %v", err)
		}
		if p.Stock != 2 {
			t.Errorf("stock = %d, want 2", p.Stock)
		}
	})

	t.Run("replayed verification is a no-op", func(t *testing.T) {
		rec := verify("pay_1", signPayment(gwOrderID, "pay_1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("replay status = %d, want %d", rec.Code, http.StatusOK)
		}

		// The replay must not touch stock a second time.
		p, err := h.Products.GetByID(ctx, ring.ID)
		if err != nil {
			t.Fatalf("failed to reload product: %v", err)
		}
		if p.Stock != 2 {
			t.Errorf("stock after replay = %d, want 2", p.Stock)
		}
	})
}

func TestHandlePaymentFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	h := NewHandler(db, &fakeGateway{}, testSecret, zap.NewNop())

	user := testutil.CustomerUser()
	uid := mustOID(t, user.ID)
	ring := fx.CreateProduct(ctx, "Aurora Ring", 2500, 3)
	order := fx.CreateOrder(ctx, uid, ring, 1, 2800)

	rec := postJSON(t, h.HandlePaymentFailure, user, map[string]interface{}{
		"order_id": order.ID.Hex(),
		"error": map[string]string{
			"code":        "BAD_REQUEST_ERROR",
			"description": "Payment failed",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	got, err := h.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if got.Status != models.OrderPending {
		t.Errorf("Status = %q, want %q (order must stay retryable)", got.Status, models.OrderPending)
	}
	if got.PaymentStatus != models.PaymentFailed {
		t.Errorf("PaymentStatus = %q, want %q", got.PaymentStatus, models.PaymentFailed)
	}
	if got.PaymentFailure == nil || got.PaymentFailure.Code != "BAD_REQUEST_ERROR" {
		t.Errorf("PaymentFailure = %+v, want code BAD_REQUEST_ERROR", got.PaymentFailure)
	}
	if got.PaymentFailure != nil && got.PaymentFailure.ReportedAt.IsZero() {
		t.Error("PaymentFailure.ReportedAt not stamped")
	}
}

func TestHandlePaymentFailureAfterPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx := testutil.TestContext(t)

	h := NewHandler(db, &fakeGateway{}, testSecret, zap.NewNop())

	user := testutil.CustomerUser()
	uid := mustOID(t, user.ID)
	ring := fx.CreateProduct(ctx, "Aurora Ring", 2500, 3)
	order := fx.CreateOrder(ctx, uid, ring, 1, 2800)

	const gwOrderID = "order_late_failure"
	if err := h.Orders.SetGatewayOrder(ctx, order.ID, gwOrderID); err != nil {
		t.Fatalf("failed to attach gateway order: %v", err)
	}
	if _, err := h.Orders.MarkPaid(ctx, order.ID, models.PaymentInfo{
		GatewayOrderID: gwOrderID,
		PaymentID:      "pay_done",
	}); err != nil {
		t.Fatalf("failed to mark order paid: %v", err)
	}

	// A failure report that races in after the success loses.
	rec := postJSON(t, h.HandlePaymentFailure, user, map[string]interface{}{
		"order_id": order.ID.Hex(),
		"error":    map[string]string{"code": "BAD_REQUEST_ERROR"},
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}
