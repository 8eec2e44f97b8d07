// internal/app/features/wishlist/handler.go
package wishlist

import (
	"context"
	"errors"
	"net/http"

	productstore "github.com/JayanshJR7/novara-api/internal/app/store/products"
	wishliststore "github.com/JayanshJR7/novara-api/internal/app/store/wishlists"
	"github.com/JayanshJR7/novara-api/internal/app/system/authz"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the wishlist endpoints. Wishlists are account-only; guests
// are asked to sign in.
type Handler struct {
	Wishlists *wishliststore.Store
	Products  *productstore.Store
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Wishlists: wishliststore.New(db),
		Products:  productstore.New(db),
		Log:       logger,
	}
}

type wishlistItemJSON struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url,omitempty"`
	InStock   bool    `json:"in_stock"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/wishlist                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeWishlist(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	wl, err := h.Wishlists.Get(ctx, uid)
	if err != nil {
		h.Log.Error("wishlist load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load wishlist")
		return
	}

	prods, err := h.Products.GetByIDs(ctx, wl.ProductIDs)
	if err != nil {
		h.Log.Error("wishlist product load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load wishlist")
		return
	}

	// Preserve the order products were saved in; drop ones since deleted.
	byID := make(map[primitive.ObjectID]int, len(prods))
	for i, p := range prods {
		byID[p.ID] = i
	}
	items := make([]wishlistItemJSON, 0, len(wl.ProductIDs))
	for _, pid := range wl.ProductIDs {
		i, found := byID[pid]
		if !found {
			continue
		}
		p := prods[i]
		item := wishlistItemJSON{
			ProductID: p.ID.Hex(),
			Name:      p.Name,
			Price:     p.Price,
			InStock:   p.InStock(),
		}
		if len(p.Images) > 0 {
			item.ImageURL = p.Images[0]
		}
		items = append(items, item)
	}

	respond.JSON(w, http.StatusOK, map[string]any{"items": items})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/wishlist/{productID}                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Products.GetByID(ctx, pid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "product not found")
			return
		}
		h.Log.Error("product lookup failed", zap.String("id", pid.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update wishlist")
		return
	}

	if err := h.Wishlists.Add(ctx, uid, pid); err != nil {
		h.Log.Error("wishlist add failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update wishlist")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "added"})
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/wishlist/{productID}                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Wishlists.Remove(ctx, uid, pid); err != nil {
		h.Log.Error("wishlist remove failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update wishlist")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
