// internal/app/features/cart/cart.go
package cart

import (
	"context"
	"errors"
	"net/http"

	cartstore "github.com/JayanshJR7/novara-api/internal/app/store/carts"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/cart                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeCart(w http.ResponseWriter, r *http.Request) {
	o, ok := h.owner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Carts.Get(ctx, o)
	if err != nil {
		h.Log.Error("cart load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load cart")
		return
	}
	h.respondPriced(ctx, w, c)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/cart/items         {"product_id": "...", "quantity": 2}            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pid, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	o, ok := h.owner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Products.GetByID(ctx, pid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.Log.Error("product lookup failed", zap.String("id", pid.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not add to cart")
		return
	}
	if !p.InStock() {
		respond.Error(w, http.StatusConflict, "product is out of stock")
		return
	}

	c, err := h.Carts.AddItem(ctx, o, pid, req.Quantity)
	if errors.Is(err, cartstore.ErrBadQuantity) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("cart add failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not add to cart")
		return
	}
	h.respondPriced(ctx, w, c)
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/cart/items/{productID}      {"quantity": 3}                         |
| Quantity 0 removes the line.                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSetQuantity(w http.ResponseWriter, r *http.Request) {
	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, ok := h.owner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Carts.SetQuantity(ctx, o, pid, req.Quantity)
	if errors.Is(err, cartstore.ErrBadQuantity) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("cart update failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update cart")
		return
	}
	h.respondPriced(ctx, w, c)
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/cart/items/{productID}                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	o, ok := h.owner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Carts.RemoveItem(ctx, o, pid)
	if err != nil {
		h.Log.Error("cart remove failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update cart")
		return
	}
	h.respondPriced(ctx, w, c)
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/cart                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	o, ok := h.owner(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Carts.Clear(ctx, o); err != nil {
		h.Log.Error("cart clear failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not clear cart")
		return
	}
	respond.JSON(w, http.StatusOK, cartJSON{Items: []cartLineJSON{}})
}

func (h *Handler) respondPriced(ctx context.Context, w http.ResponseWriter, c models.Cart) {
	priced, err := h.priceCart(ctx, c)
	if err != nil {
		h.Log.Error("cart pricing failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not price cart")
		return
	}
	respond.JSON(w, http.StatusOK, priced)
}
