// internal/app/features/reviews/reviews.go
package reviews

import (
	"context"
	"errors"
	"net/http"
	"strings"

	reviewstore "github.com/JayanshJR7/novara-api/internal/app/store/reviews"
	"github.com/JayanshJR7/novara-api/internal/app/system/authz"
	"github.com/JayanshJR7/novara-api/internal/app/system/respond"
	"github.com/JayanshJR7/novara-api/internal/app/system/timeouts"
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

type reviewJSON struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	Approved   bool   `json:"approved"`
	CreatedAt  string `json:"created_at"`
}

func toReviewJSON(rv models.Review) reviewJSON {
	return reviewJSON{
		ID:         rv.ID.Hex(),
		ProductID:  rv.ProductID.Hex(),
		AuthorName: rv.AuthorName,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		Approved:   rv.Approved,
		CreatedAt:  rv.CreatedAt.Format(timeFormat),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/products/{id}/reviews      {"rating": 5, "comment": "..."}         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
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
		respond.Error(w, http.StatusInternalServerError, "could not submit review")
		return
	}

	created, err := h.Reviews.Create(ctx, models.Review{
		ProductID:  pid,
		UserID:     uid,
		AuthorName: name,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		switch {
		case errors.Is(err, reviewstore.ErrBadRating):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, reviewstore.ErrAlreadyReviewed):
			respond.Error(w, http.StatusConflict, err.Error())
		default:
			h.Log.Error("review create failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not submit review")
		}
		return
	}

	h.Log.Info("review submitted",
		zap.String("review_id", created.ID.Hex()),
		zap.String("product_id", pid.Hex()))
	respond.JSON(w, http.StatusCreated, toReviewJSON(created))
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/admin/reviews                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeModerationQueue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.Reviews.ListPending(ctx)
	if err != nil {
		h.Log.Error("moderation queue load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load reviews")
		return
	}

	out := make([]reviewJSON, 0, len(pending))
	for _, rv := range pending {
		out = append(out, toReviewJSON(rv))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"reviews": out})
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /api/admin/reviews/{id}/approve                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	rid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	approved, err := h.Reviews.Approve(ctx, rid)
	if errors.Is(err, reviewstore.ErrReviewNotFound) {
		respond.Error(w, http.StatusNotFound, "review not found")
		return
	}
	if err != nil {
		h.Log.Error("review approve failed", zap.String("id", rid.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not approve review")
		return
	}

	h.refreshRating(ctx, approved.ProductID)
	respond.JSON(w, http.StatusOK, toReviewJSON(approved))
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/admin/reviews/{id}                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	rid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid review id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Reviews.Delete(ctx, rid)
	if errors.Is(err, reviewstore.ErrReviewNotFound) {
		respond.Error(w, http.StatusNotFound, "review not found")
		return
	}
	if err != nil {
		h.Log.Error("review delete failed", zap.String("id", rid.Hex()), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete review")
		return
	}

	if deleted.Approved {
		h.refreshRating(ctx, deleted.ProductID)
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
