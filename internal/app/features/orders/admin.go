// internal/app/features/orders/admin.go
package orders

import (
	"context"
	"errors"
	"net/http"

	orderstore "github.com/JayanshJR7/novara-api/internal/app/store/orders"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/admin/orders?status=shipped                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !orderstore.ValidStatus(status) {
		respond.Error(w, http.StatusBadRequest, "unknown order status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Orders.ListAll(ctx, status)
	if err != nil {
		h.Log.Error("admin order list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"orders": toOrderList(list)})
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/admin/orders/{id}/status      {"status": "shipped"}                 |
| Orders step through the pipeline one stage at a time.                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !orderstore.ValidStatus(req.Status) {
		respond.Error(w, http.StatusBadRequest, "unknown order status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Orders.UpdateStatus(ctx, oid, req.Status)
	var bad orderstore.ErrBadTransition
	switch {
	case errors.As(err, &bad):
		respond.Error(w, http.StatusConflict, bad.Error())
		return
	case errors.Is(err, orderstore.ErrOrderNotFound):
		respond.Error(w, http.StatusNotFound, "order not found")
		return
	case err != nil:
		h.Log.Error("order status update failed",
			zap.String("order_id", oid.Hex()),
			zap.String("to", req.Status),
			zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update order")
		return
	}

	h.Log.Info("order status updated",
		zap.String("order_id", oid.Hex()),
		zap.String("status", req.Status))
	respond.JSON(w, http.StatusOK, toOrderJSON(updated))
}
