// internal/app/features/categories/handler.go
package categories

import (
	"context"
	"errors"
	"net/http"

	categorystore "github.com/JayanshJR7/novara-api/internal/app/store/categories"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the category endpoints: a public list for storefront
// filtering and the admin CRUD.
type Handler struct {
	Categories *categorystore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Categories: categorystore.New(db),
		Log:        logger,
	}
}

type categoryJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Active      bool   `json:"active"`
}

func toCategoryJSON(c models.Category) categoryJSON {
	return categoryJSON{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Active:      c.Active,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Active      bool   `json:"active"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/categories                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, true)
}

func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, false)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cats, err := h.Categories.All(ctx, activeOnly)
	if err != nil {
		h.Log.Error("category list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load categories")
		return
	}

	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryJSON(c))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"categories": out})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/admin/categories                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Categories.Create(ctx, models.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, categorystore.ErrEmptyName):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, categorystore.ErrDuplicateCategory):
			respond.Error(w, http.StatusConflict, err.Error())
		default:
			h.Log.Error("category create failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not create category")
		}
		return
	}

	h.Log.Info("category created",
		zap.String("category_id", created.ID.Hex()),
		zap.String("slug", created.Slug))
	respond.JSON(w, http.StatusCreated, toCategoryJSON(created))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/admin/categories/{id}                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Categories.Update(ctx, id, models.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "category not found")
		return
	}
	if errors.Is(err, categorystore.ErrDuplicateCategory) {
		respond.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("category update failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update category")
		return
	}
	respond.JSON(w, http.StatusOK, toCategoryJSON(updated))
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/admin/categories/{id}                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Categories.Delete(ctx, id)
	if err != nil {
		h.Log.Error("category delete failed", zap.String("id", id.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete category")
		return
	}
	if n == 0 {
		respond.Error(w, http.StatusNotFound, "category not found")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func categoryID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid category id")
		return primitive.NilObjectID, false
	}
	return id, true
}
