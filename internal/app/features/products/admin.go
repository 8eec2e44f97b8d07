// internal/app/features/products/admin.go
package products

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/JayanshJR7/novara-api/internal/app/store/products"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/admin/products                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := req.toModel()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if p.CategoryID != nil {
		if _, err := h.Categories.GetByID(ctx, *p.CategoryID); err != nil {
			respond.Error(w, http.StatusBadRequest, "category does not exist")
			return
		}
	}

	created, err := h.Products.Create(ctx, p)
	if err != nil {
		if errors.Is(err, productstore.ErrInvalidProduct) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("product create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}

	h.Log.Info("product created",
		zap.String("product_id", created.ID.Hex()),
		zap.String("name", created.Name))
	respond.JSON(w, http.StatusCreated, toProductJSON(created))
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/admin/products/{id}                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeAdminDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Products.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.Log.Error("product lookup failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}
	respond.JSON(w, http.StatusOK, toProductJSON(p))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/admin/products/{id}                                                 |
| The one edit path for a product; price, stock, category and visibility all   |
| go through here.                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req productRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mut, err := req.toModel()
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if mut.CategoryID != nil {
		if _, err := h.Categories.GetByID(ctx, *mut.CategoryID); err != nil {
			respond.Error(w, http.StatusBadRequest, "category does not exist")
			return
		}
	}

	updated, err := h.Products.Update(ctx, id, mut)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.Log.Error("product update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}

	// Visibility is part of the same payload.
	if updated.Active != req.Active {
		updated, err = h.Products.SetActive(ctx, id, req.Active)
		if err != nil {
			h.Log.Error("product visibility update failed", zap.String("id", id.Hex()), zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not update product")
			return
		}
	}

	respond.JSON(w, http.StatusOK, toProductJSON(updated))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/admin/products/{id}/visibility                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleToggleVisibility(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Products.SetActive(ctx, id, req.Active)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		h.Log.Error("product visibility update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}
	respond.JSON(w, http.StatusOK, toProductJSON(updated))
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/admin/products/{id}                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Products.Delete(ctx, id)
	if err != nil {
		h.Log.Error("product delete failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	if n == 0 {
		respond.Error(w, http.StatusNotFound, "product not found")
		return
	}

	h.Log.Info("product deleted", zap.String("product_id", id.Hex()))
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func productID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return primitive.NilObjectID, false
	}
	return id, true
}
