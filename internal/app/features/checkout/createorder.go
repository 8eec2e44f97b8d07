// internal/app/features/checkout/createorder.go
package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	cartstore "github.com/JayanshJR7/novara-api/internal/app/store/carts"
	couponstore "github.com/JayanshJR7/novara-api/internal/app/store/coupons"
	"github.com/JayanshJR7/novara-api/internal/app/system/auth"
	"github.com/JayanshJR7/novara-api/internal/app/system/authz"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/JayanshJR7/novara-api/internal/domain/pricing"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/orders                                                             |
| Creates a pending order with server-computed pricing. For COD the order is   |
| confirmed immediately; for gateway payment it stays pending until the        |
| payment verifies.                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createOrderRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		respond.Error(w, http.StatusBadRequest, "order has no items")
		return
	}
	if req.PaymentMethod != MethodRazorpay && req.PaymentMethod != MethodCOD {
		respond.Error(w, http.StatusBadRequest, "payment_method must be razorpay or cod")
		return
	}
	if err := validateAddress(req.ShippingAddress); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	items, subtotal, err := h.priceItems(ctx, req.Items)
	if err != nil {
		var pe priceError
		if errors.As(err, &pe) {
			respond.Error(w, pe.status, pe.msg)
			return
		}
		h.Log.Error("order pricing failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not price order")
		return
	}

	// Coupon: validated against the recomputed subtotal, and its use is
	// consumed here, not at the earlier validation call.
	var discount float64
	var coupon models.Coupon
	code := strings.TrimSpace(req.CouponCode)
	if code != "" {
		coupon, err = h.Coupons.GetByCode(ctx, code)
		if errors.Is(err, couponstore.ErrCouponNotFound) {
			respond.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err != nil {
			h.Log.Error("coupon lookup failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not apply coupon")
			return
		}
		discount, err = couponstore.Validate(coupon, subtotal, time.Now().UTC())
		if err != nil {
			respond.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := h.Coupons.IncrementUsage(ctx, coupon.ID); err != nil {
			if errors.Is(err, couponstore.ErrUsageLimit) {
				respond.Error(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			h.Log.Error("coupon usage increment failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not apply coupon")
			return
		}
	}

	// Contact phone defaults to the shipping phone, which validateAddress
	// guarantees is present.
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = strings.TrimSpace(req.ShippingAddress.Phone)
	}

	order := models.Order{
		UserID:       uid,
		CustomerName: name,
		Email:        strings.TrimSpace(req.Email),
		Phone:        phone,
		ShippingAddress: models.ShippingAddress{
			FullName:   req.ShippingAddress.FullName,
			Phone:      req.ShippingAddress.Phone,
			Line1:      req.ShippingAddress.Line1,
			Line2:      req.ShippingAddress.Line2,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			Country:    req.ShippingAddress.Country,
			PostalCode: req.ShippingAddress.PostalCode,
		},
		PaymentMethod:  req.PaymentMethod,
		Items:          items,
		Subtotal:       subtotal,
		CouponCode:     coupon.Code,
		Discount:       discount,
		DeliveryCharge: pricing.DeliveryCharge(subtotal),
		TotalAmount:    pricing.FinalTotal(subtotal, discount),
	}

	created, err := h.Orders.Create(ctx, order)
	if err != nil {
		// Return the consumed coupon use; no order carries it.
		if code != "" {
			if derr := h.Coupons.DecrementUsage(ctx, coupon.ID); derr != nil {
				h.Log.Error("coupon usage rollback failed",
					zap.String("coupon_id", coupon.ID.Hex()), zap.Error(derr))
			}
		}
		h.Log.Error("order create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create order")
		return
	}

	// COD skips the gateway: confirm now, collect on delivery.
	if req.PaymentMethod == MethodCOD {
		created, err = h.Orders.UpdateStatus(ctx, created.ID, models.OrderConfirmed)
		if err != nil {
			h.Log.Error("cod confirm failed", zap.String("order_id", created.ID.Hex()), zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not confirm order")
			return
		}
		h.finalizePurchase(ctx, r, created)
	}

	h.Log.Info("order created",
		zap.String("order_id", created.ID.Hex()),
		zap.String("user_id", uid.Hex()),
		zap.String("payment_method", created.PaymentMethod),
		zap.Float64("total", created.TotalAmount))
	respond.JSON(w, http.StatusCreated, toOrderJSON(created))
}

// priceError carries an HTTP status for a shopper-visible pricing problem.
type priceError struct {
	status int
	msg    string
}

func (e priceError) Error() string { return e.msg }

// priceItems reprices the requested lines from the live catalog. The
// client's idea of prices is never consulted.
func (h *Handler) priceItems(ctx context.Context, reqs []orderItemRequest) ([]models.OrderItem, float64, error) {
	ids := make([]primitive.ObjectID, 0, len(reqs))
	for _, it := range reqs {
		pid, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, 0, priceError{http.StatusBadRequest, "invalid product id: " + it.ProductID}
		}
		if it.Quantity < 1 {
			return nil, 0, priceError{http.StatusBadRequest, "quantity must be at least 1"}
		}
		ids = append(ids, pid)
	}

	prods, err := h.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}

	var items []models.OrderItem
	var subtotal float64
	for i, req := range reqs {
		p, found := byID[ids[i]]
		if !found || !p.Active {
			return nil, 0, priceError{http.StatusUnprocessableEntity, "product is no longer available: " + req.ProductID}
		}
		if p.Stock < req.Quantity {
			return nil, 0, priceError{http.StatusConflict, "insufficient stock for " + p.Name}
		}
		item := models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  req.Quantity,
		}
		if len(p.Images) > 0 {
			item.ImageURL = p.Images[0]
		}
		items = append(items, item)
		subtotal += p.Price * float64(req.Quantity)
	}

	return items, pricing.Round2(subtotal), nil
}

// finalizePurchase decrements stock and clears the buyer's cart once an
// order is confirmed. Both are best-effort; failures are logged for manual
// follow-up, never bounced to the shopper after their money moved.
func (h *Handler) finalizePurchase(ctx context.Context, r *http.Request, o models.Order) {
	for _, it := range o.Items {
		if err := h.Products.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			h.Log.Warn("stock decrement failed",
				zap.String("order_id", o.ID.Hex()),
				zap.String("product_id", it.ProductID.Hex()),
				zap.Error(err))
		}
	}

	if _, ok := auth.CurrentUser(r); ok {
		owner := cartstore.Owner{UserID: &o.UserID}
		if err := h.Carts.Clear(ctx, owner); err != nil {
			h.Log.Warn("cart clear failed",
				zap.String("order_id", o.ID.Hex()),
				zap.Error(err))
		}
	}
}

func validateAddress(a addressRequest) error {
	switch {
	case strings.TrimSpace(a.FullName) == "":
		return errors.New("shipping full_name is required")
	case strings.TrimSpace(a.Phone) == "":
		return errors.New("shipping phone is required")
	case strings.TrimSpace(a.Line1) == "":
		return errors.New("shipping line1 is required")
	case strings.TrimSpace(a.City) == "":
		return errors.New("shipping city is required")
	case strings.TrimSpace(a.PostalCode) == "":
		return errors.New("shipping postal_code is required")
	}
	return nil
}
