// internal/app/features/coupons/admin.go
package coupons

import (
	"context"
	"errors"
	"net/http"
	"time"

	couponstore "github.com/JayanshJR7/novara-api/internal/app/store/coupons"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type couponRequest struct {
	Code           string  `json:"code"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
	MinOrderAmount float64 `json:"min_order_amount"`
	MaxDiscount    float64 `json:"max_discount"`
	ExpiresAt      string  `json:"expires_at"` // RFC 3339
	UsageLimit     int     `json:"usage_limit"`
	Active         bool    `json:"active"`
}

func (req couponRequest) toModel() (models.Coupon, error) {
	if req.DiscountType != models.DiscountPercentage && req.DiscountType != models.DiscountFixed {
		return models.Coupon{}, errors.New("discount_type must be percentage or fixed")
	}
	if req.DiscountValue <= 0 {
		return models.Coupon{}, errors.New("discount_value must be positive")
	}
	if req.DiscountType == models.DiscountPercentage && req.DiscountValue > 100 {
		return models.Coupon{}, errors.New("percentage discount cannot exceed 100")
	}
	expires, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return models.Coupon{}, errors.New("expires_at must be an RFC 3339 timestamp")
	}
	return models.Coupon{
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		ExpiresAt:      expires.UTC(),
		UsageLimit:     req.UsageLimit,
		Active:         req.Active,
	}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/admin/coupons                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Coupons.All(ctx)
	if err != nil {
		h.Log.Error("coupon list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load coupons")
		return
	}

	out := make([]couponJSON, 0, len(all))
	for _, c := range all {
		out = append(out, toCouponJSON(c))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"coupons": out})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/admin/coupons                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cp, err := req.toModel()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Coupons.Create(ctx, cp)
	if err != nil {
		switch {
		case errors.Is(err, couponstore.ErrDuplicateCode):
			respond.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, couponstore.ErrCouponNotFound):
			respond.Error(w, http.StatusBadRequest, "coupon code is required")
		default:
			h.Log.Error("coupon create failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not create coupon")
		}
		return
	}

	h.Log.Info("coupon created",
		zap.String("coupon_id", created.ID.Hex()),
		zap.String("code", created.Code))
	respond.JSON(w, http.StatusCreated, toCouponJSON(created))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/admin/coupons/{id}                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := couponID(w, r)
	if !ok {
		return
	}

	var req couponRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mut, err := req.toModel()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Coupons.Update(ctx, id, mut)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "coupon not found")
		return
	}
	if errors.Is(err, couponstore.ErrDuplicateCode) {
		respond.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("coupon update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update coupon")
		return
	}
	respond.JSON(w, http.StatusOK, toCouponJSON(updated))
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/admin/coupons/{id}                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := couponID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Coupons.Delete(ctx, id)
	if err != nil {
		h.Log.Error("coupon delete failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete coupon")
		return
	}
	if n == 0 {
		respond.Error(w, http.StatusNotFound, "coupon not found")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func couponID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid coupon id")
		return primitive.NilObjectID, false
	}
	return id, true
}
