// internal/app/features/products/list.go
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
| GET /api/products                                                            |
| Storefront list: active products only, keyset-paged, with optional search    |
| (?q=) and category filter (?category=<slug>).                                |
*─────────────────────────────────────────────────────────────────────────────*/

type listResponse struct {
	Products []productJSON `json:"products"`
	HasPrev  bool          `json:"has_prev"`
	HasNext  bool          `json:"has_next"`
	PrevCur  string        `json:"prev,omitempty"`
	NextCur  string        `json:"next,omitempty"`
}

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, true)
}

// ServeAdminList is the same list without the active-only filter, so the
// back office can see hidden products.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, false)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := r.URL.Query()
	filter := productstore.ListFilter{
		Search:     q.Get("q"),
		ActiveOnly: activeOnly,
		Before:     q.Get("before"),
		After:      q.Get("after"),
	}

	if slug := q.Get("category"); slug != "" {
		cat, err := h.Categories.GetBySlug(ctx, slug)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "category not found")
			return
		}
		if err != nil {
			h.Log.Error("category lookup failed", zap.String("slug", slug), zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not load products")
			return
		}
		filter.CategoryID = &cat.ID
	}

	page, err := h.Products.List(ctx, filter)
	if err != nil {
		h.Log.Error("product list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Products: toProductList(page.Products),
		HasPrev:  page.HasPrev,
		HasNext:  page.HasNext,
		PrevCur:  page.PrevCur,
		NextCur:  page.NextCur,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/products/{id}                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

type detailResponse struct {
	Product productJSON  `json:"product"`
	Reviews []reviewJSON `json:"reviews"`
}

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
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
	if !p.Active {
		// Hidden products 404 on the storefront rather than leaking drafts.
		respond.Error(w, http.StatusNotFound, "product not found")
		return
	}

	reviews, err := h.Reviews.ListApproved(ctx, id)
	if err != nil {
		h.Log.Warn("review load failed", zap.String("product_id", id.Hex()), zap.Error(err))
		reviews = nil
	}

	respond.JSON(w, http.StatusOK, detailResponse{
		Product: toProductJSON(p),
		Reviews: toReviewList(reviews),
	})
}
