// internal/app/features/checkout/payment.go
package checkout

import (
	"context"
	"errors"
	"net/http"
	"time"

	orderstore "github.com/JayanshJR7/novara-api/internal/app/store/orders"
	"github.com/JayanshJR7/novara-api/internal/app/system/authz"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/domain/pricing"
	"github.com/JayanshJR7/novara-api/internal/gateway/razorpay"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/payment/orders         {"order_id": "..."}                         |
| Registers a gateway order for an existing pending order and returns what     |
| the payment widget needs.                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

type gatewayOrderResponse struct {
	KeyID          string `json:"key_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"` // paise
	Currency       string `json:"currency"`
}

func (h *Handler) HandleCreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOwnOrder(w, r)
	if !ok {
		return
	}
	if o.PaymentMethod != MethodRazorpay {
		respond.Error(w, http.StatusBadRequest, "order is not gateway-paid")
		return
	}
	if o.PaymentStatus == models.PaymentPaid {
		respond.Error(w, http.StatusConflict, "order is already paid")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	gw, err := h.Gateway.CreateOrder(ctx,
		pricing.ToPaise(o.TotalAmount), "INR", uuid.NewString(),
		map[string]interface{}{"order_id": o.ID.Hex()})
	if err != nil {
		h.Log.Error("gateway order create failed",
			zap.String("order_id", o.ID.Hex()), zap.Error(err))
		respond.Error(w, http.StatusBadGateway, "could not start payment")
		return
	}

	if err := h.Orders.SetGatewayOrder(ctx, o.ID, gw.ID); err != nil {
		h.Log.Error("gateway order attach failed",
			zap.String("order_id", o.ID.Hex()),
			zap.String("gateway_order_id", gw.ID),
			zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not start payment")
		return
	}

	respond.JSON(w, http.StatusOK, gatewayOrderResponse{
		KeyID:          h.Gateway.KeyID(),
		GatewayOrderID: gw.ID,
		Amount:         gw.Amount,
		Currency:       gw.Currency,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/payment/verify                                                     |
| Verifies the checkout signature. Only a signature that checks out against    |
| the key secret marks the order paid; anything else is a hard 400 and the     |
| order stays pending.                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

type verifyRequest struct {
	OrderID           string `json:"order_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (h *Handler) HandleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, ok := h.loadOwnOrderID(w, r, req.OrderID)
	if !ok {
		return
	}
	if o.GatewayOrderID == "" || o.GatewayOrderID != req.RazorpayOrderID {
		respond.Error(w, http.StatusBadRequest, "payment does not match this order")
		return
	}

	if !razorpay.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, h.GatewaySecret) {
		h.Log.Warn("payment signature verification failed",
			zap.String("order_id", o.ID.Hex()),
			zap.String("gateway_order_id", req.RazorpayOrderID),
			zap.String("payment_id", req.RazorpayPaymentID))
		respond.Error(w, http.StatusBadRequest, "payment verification failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	paid, err := h.Orders.MarkPaid(ctx, o.ID, models.PaymentInfo{
		GatewayOrderID: req.RazorpayOrderID,
		PaymentID:      req.RazorpayPaymentID,
		Signature:      req.RazorpaySignature,
		Amount:         o.TotalAmount,
		PaidAt:         time.Now().UTC(),
	})
	if errors.Is(err, orderstore.ErrAlreadyPaid) {
		// Replayed callback; the first one already did the work.
		respond.JSON(w, http.StatusOK, toOrderJSON(paid))
		return
	}
	if err != nil {
		h.Log.Error("mark paid failed", zap.String("order_id", o.ID.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not record payment")
		return
	}

	h.finalizePurchase(ctx, r, paid)

	h.Log.Info("payment verified",
		zap.String("order_id", paid.ID.Hex()),
		zap.String("payment_id", req.RazorpayPaymentID),
		zap.Float64("amount", paid.TotalAmount))
	respond.JSON(w, http.StatusOK, toOrderJSON(paid))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/payment/failure                                                    |
| Records the gateway's failure report. The order is left pending so the       |
| shopper can retry; nothing is rolled back.                                   |
*─────────────────────────────────────────────────────────────────────────────*/

type failureRequest struct {
	OrderID string `json:"order_id"`
	Error   struct {
		Code        string `json:"code"`
		Description string `json:"description"`
		Source      string `json:"source"`
		Reason      string `json:"reason"`
	} `json:"error"`
}

func (h *Handler) HandlePaymentFailure(w http.ResponseWriter, r *http.Request) {
	var req failureRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, ok := h.loadOwnOrderID(w, r, req.OrderID)
	if !ok {
		return
	}

	failure := models.PaymentFailure{
		Code:        req.Error.Code,
		Description: req.Error.Description,
		Source:      req.Error.Source,
		Reason:      req.Error.Reason,
	}
	if failure.Code == "" && failure.Description == "" {
		// Widget dismissed without a gateway error object.
		failure.Code = "PAYMENT_CANCELLED"
		failure.Description = "payment was cancelled before completion"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Orders.RecordPaymentFailure(ctx, o.ID, failure); err != nil {
		if errors.Is(err, orderstore.ErrOrderNotFound) {
			// Already paid; a late failure report loses to the success.
			respond.Error(w, http.StatusConflict, "order is already paid")
			return
		}
		h.Log.Error("payment failure record failed", zap.String("order_id", o.ID.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not record payment failure")
		return
	}

	h.Log.Info("payment failure recorded",
		zap.String("order_id", o.ID.Hex()),
		zap.String("code", failure.Code))
	respond.JSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// loadOwnOrder reads {"order_id": ...} from the body and loads the order,
// enforcing that it belongs to the caller.
func (h *Handler) loadOwnOrder(w http.ResponseWriter, r *http.Request) (models.Order, bool) {
	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return models.Order{}, false
	}
	return h.loadOwnOrderID(w, r, req.OrderID)
}

func (h *Handler) loadOwnOrderID(w http.ResponseWriter, r *http.Request, rawID string) (models.Order, bool) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return models.Order{}, false
	}

	oid, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid order id")
		return models.Order{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	o, err := h.Orders.GetByID(ctx, oid)
	if errors.Is(err, orderstore.ErrOrderNotFound) {
		respond.Error(w, http.StatusNotFound, "order not found")
		return models.Order{}, false
	}
	if err != nil {
		h.Log.Error("order lookup failed", zap.String("order_id", rawID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load order")
		return models.Order{}, false
	}

	if o.UserID != uid && role != models.RoleAdmin {
		// Existence of other users' orders is not disclosed.
		respond.Error(w, http.StatusNotFound, "order not found")
		return models.Order{}, false
	}
	return o, true
}
