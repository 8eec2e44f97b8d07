// internal/app/features/orders/customer.go
package orders

import (
	"context"
	"errors"
	"net/http"

	orderstore "github.com/JayanshJR7/novara-api/internal/app/store/orders"
	"github.com/JayanshJR7/novara-api/internal/app/system/authz"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/orders                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Orders.ListByUser(ctx, uid)
	if err != nil {
		h.Log.Error("order history load failed", zap.String("user_id", uid.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load orders")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"orders": toOrderList(list)})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/orders/{id}                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOwn(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, toOrderJSON(o))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/orders/{id}/cancel                                                  |
| Customers may cancel until the order ships.                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadOwn(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Orders.UpdateStatus(ctx, o.ID, models.OrderCancelled)
	var bad orderstore.ErrBadTransition
	if errors.As(err, &bad) {
		respond.Error(w, http.StatusConflict, bad.Error())
		return
	}
	if err != nil {
		h.Log.Error("order cancel failed", zap.String("order_id", o.ID.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not cancel order")
		return
	}

	h.Log.Info("order cancelled by customer", zap.String("order_id", o.ID.Hex()))
	respond.JSON(w, http.StatusOK, toOrderJSON(updated))
}

// loadOwn loads the order in the URL and enforces ownership. Admins may
// read any order through the customer endpoints too.
func (h *Handler) loadOwn(w http.ResponseWriter, r *http.Request) (models.Order, bool) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return models.Order{}, false
	}

	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
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
		h.Log.Error("order lookup failed", zap.String("order_id", oid.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load order")
		return models.Order{}, false
	}

	if o.UserID != uid && role != models.RoleAdmin {
		respond.Error(w, http.StatusNotFound, "order not found")
		return models.Order{}, false
	}
	return o, true
}
